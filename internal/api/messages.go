package api

// DateLayout is the wire format of birthdays.
const DateLayout = "2006-01-02"

// Account is the public projection of an account.
type Account struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Gender      int     `json:"gender"`
	Birthday    *string `json:"birthday,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type AuthenticateRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthenticateResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

type CreateAccountRequest struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Gender      int    `json:"gender"`
	Birthday    string `json:"birthday,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name,omitempty"`
	Gender      *int    `json:"gender,omitempty"`
	Birthday    *string `json:"birthday,omitempty"`
}

type ChangePasswordRequest struct {
	ID              string `json:"id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ChangeLoginRequest struct {
	ID       string `json:"id"`
	NewLogin string `json:"new_login"`
}

type ListActiveAccountsRequest struct{}

type FindAccountByLoginRequest struct {
	Login string `json:"login"`
}

type ListAccountsOlderThanRequest struct {
	Age int `json:"age"`
}

type DeleteAccountRequest struct {
	Login string `json:"login"`
	Soft  bool   `json:"soft"`
}

type DeleteAccountResponse struct{}

type RecoverAccountRequest struct {
	Login string `json:"login"`
}

type AccountResponse struct {
	Account Account `json:"account"`
}

type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}
