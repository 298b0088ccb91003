package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

// Claims carries the account identity and role claims. The account id is
// the registered subject.
type Claims struct {
	jwt.RegisteredClaims
	Login string   `json:"login"`
	Roles []string `json:"roles"`
}

// Identity is what a verified token asserts.
type Identity struct {
	AccountID string
	Login     string
	Roles     []string
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secretKey        []byte
	validityDuration time.Duration
}

func NewTokenIssuer(secretKey []byte, validityDuration time.Duration) *TokenIssuer {
	return &TokenIssuer{secretKey: secretKey, validityDuration: validityDuration}
}

// Issue returns a signed token for the account that expires
// validityDuration after issuedAt.
func (i *TokenIssuer) Issue(accountID, login string, roles []string, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.validityDuration)),
		},
		Login: login,
		Roles: roles,
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify parses and validates a token. Bad signatures, malformed input,
// foreign algorithms and expiry all yield common.ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{AccountID: claims.Subject, Login: claims.Login, Roles: claims.Roles}, nil
}
