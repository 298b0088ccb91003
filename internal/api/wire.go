package api

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// wireMessage is implemented by every message carried on the wire. The
// encoding follows accountkeeper.proto: proto3 scalars are omitted when they
// hold the zero value, optional fields are written whenever they are set.
type wireMessage interface {
	appendWire(b []byte) []byte
	unmarshalWire(b []byte) error
}

var errWireType = errors.New("unexpected wire type")

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	return appendOptionalString(b, num, &s)
}

func appendOptionalString(b []byte, num protowire.Number, s *string) []byte {
	if s == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *s)
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	if v == 0 {
		return b
	}
	return appendOptionalInt(b, num, &v)
}

// int32 fields are sign extended to 64 bits, as protoc-generated code does.
func appendOptionalInt(b []byte, num protowire.Number, v *int) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(int32(*v))))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendMessage(b []byte, num protowire.Number, m wireMessage) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.appendWire(nil))
}

// decodeFields walks the top-level fields of b. visit consumes the value of
// a field it knows and returns the number of bytes read; returning 0 skips
// the field as unknown.
func decodeFields(b []byte, visit func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := visit(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

func readString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, errWireType
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = v
	return n, nil
}

func readOptionalString(typ protowire.Type, b []byte, dst **string) (int, error) {
	var s string
	n, err := readString(typ, b, &s)
	if err != nil {
		return 0, err
	}
	*dst = &s
	return n, nil
}

func readInt(typ protowire.Type, b []byte, dst *int) (int, error) {
	if typ != protowire.VarintType {
		return 0, errWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = int(int32(v))
	return n, nil
}

func readOptionalInt(typ protowire.Type, b []byte, dst **int) (int, error) {
	var v int
	n, err := readInt(typ, b, &v)
	if err != nil {
		return 0, err
	}
	*dst = &v
	return n, nil
}

func readBool(typ protowire.Type, b []byte, dst *bool) (int, error) {
	if typ != protowire.VarintType {
		return 0, errWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = protowire.DecodeBool(v)
	return n, nil
}

func readMessage(typ protowire.Type, b []byte, m wireMessage) (int, error) {
	if typ != protowire.BytesType {
		return 0, errWireType
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, m.unmarshalWire(v)
}

func (m *Account) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.DisplayName)
	b = appendInt(b, 3, m.Gender)
	b = appendOptionalString(b, 4, m.Birthday)
	return appendBool(b, 5, m.IsActive)
}

func (m *Account) unmarshalWire(b []byte) error {
	*m = Account{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.ID)
		case 2:
			return readString(typ, b, &m.DisplayName)
		case 3:
			return readInt(typ, b, &m.Gender)
		case 4:
			return readOptionalString(typ, b, &m.Birthday)
		case 5:
			return readBool(typ, b, &m.IsActive)
		}
		return 0, nil
	})
}

func skipAll(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil }

func (m *PingRequest) appendWire(b []byte) []byte { return b }

func (m *PingRequest) unmarshalWire(b []byte) error { return decodeFields(b, skipAll) }

func (m *PingResponse) appendWire(b []byte) []byte { return appendString(b, 1, m.Status) }

func (m *PingResponse) unmarshalWire(b []byte) error {
	*m = PingResponse{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Status)
		}
		return 0, nil
	})
}

func (m *AuthenticateRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Login)
	return appendString(b, 2, m.Password)
}

func (m *AuthenticateRequest) unmarshalWire(b []byte) error {
	*m = AuthenticateRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Login)
		case 2:
			return readString(typ, b, &m.Password)
		}
		return 0, nil
	})
}

func (m *AuthenticateResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Token)
	return appendMessage(b, 2, &m.Account)
}

func (m *AuthenticateResponse) unmarshalWire(b []byte) error {
	*m = AuthenticateResponse{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Token)
		case 2:
			return readMessage(typ, b, &m.Account)
		}
		return 0, nil
	})
}

func (m *CreateAccountRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Login)
	b = appendString(b, 2, m.Password)
	b = appendString(b, 3, m.DisplayName)
	b = appendInt(b, 4, m.Gender)
	b = appendString(b, 5, m.Birthday)
	return appendBool(b, 6, m.IsAdmin)
}

func (m *CreateAccountRequest) unmarshalWire(b []byte) error {
	*m = CreateAccountRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Login)
		case 2:
			return readString(typ, b, &m.Password)
		case 3:
			return readString(typ, b, &m.DisplayName)
		case 4:
			return readInt(typ, b, &m.Gender)
		case 5:
			return readString(typ, b, &m.Birthday)
		case 6:
			return readBool(typ, b, &m.IsAdmin)
		}
		return 0, nil
	})
}

func (m *UpdateProfileRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendOptionalString(b, 2, m.DisplayName)
	b = appendOptionalInt(b, 3, m.Gender)
	return appendOptionalString(b, 4, m.Birthday)
}

func (m *UpdateProfileRequest) unmarshalWire(b []byte) error {
	*m = UpdateProfileRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.ID)
		case 2:
			return readOptionalString(typ, b, &m.DisplayName)
		case 3:
			return readOptionalInt(typ, b, &m.Gender)
		case 4:
			return readOptionalString(typ, b, &m.Birthday)
		}
		return 0, nil
	})
}

func (m *ChangePasswordRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.CurrentPassword)
	return appendString(b, 3, m.NewPassword)
}

func (m *ChangePasswordRequest) unmarshalWire(b []byte) error {
	*m = ChangePasswordRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.ID)
		case 2:
			return readString(typ, b, &m.CurrentPassword)
		case 3:
			return readString(typ, b, &m.NewPassword)
		}
		return 0, nil
	})
}

func (m *ChangeLoginRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	return appendString(b, 2, m.NewLogin)
}

func (m *ChangeLoginRequest) unmarshalWire(b []byte) error {
	*m = ChangeLoginRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.ID)
		case 2:
			return readString(typ, b, &m.NewLogin)
		}
		return 0, nil
	})
}

func (m *ListActiveAccountsRequest) appendWire(b []byte) []byte { return b }

func (m *ListActiveAccountsRequest) unmarshalWire(b []byte) error { return decodeFields(b, skipAll) }

func (m *FindAccountByLoginRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.Login) }

func (m *FindAccountByLoginRequest) unmarshalWire(b []byte) error {
	*m = FindAccountByLoginRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Login)
		}
		return 0, nil
	})
}

func (m *ListAccountsOlderThanRequest) appendWire(b []byte) []byte { return appendInt(b, 1, m.Age) }

func (m *ListAccountsOlderThanRequest) unmarshalWire(b []byte) error {
	*m = ListAccountsOlderThanRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readInt(typ, b, &m.Age)
		}
		return 0, nil
	})
}

func (m *DeleteAccountRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Login)
	return appendBool(b, 2, m.Soft)
}

func (m *DeleteAccountRequest) unmarshalWire(b []byte) error {
	*m = DeleteAccountRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Login)
		case 2:
			return readBool(typ, b, &m.Soft)
		}
		return 0, nil
	})
}

func (m *DeleteAccountResponse) appendWire(b []byte) []byte { return b }

func (m *DeleteAccountResponse) unmarshalWire(b []byte) error { return decodeFields(b, skipAll) }

func (m *RecoverAccountRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.Login) }

func (m *RecoverAccountRequest) unmarshalWire(b []byte) error {
	*m = RecoverAccountRequest{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Login)
		}
		return 0, nil
	})
}

func (m *AccountResponse) appendWire(b []byte) []byte { return appendMessage(b, 1, &m.Account) }

func (m *AccountResponse) unmarshalWire(b []byte) error {
	*m = AccountResponse{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readMessage(typ, b, &m.Account)
		}
		return 0, nil
	})
}

func (m *AccountsResponse) appendWire(b []byte) []byte {
	for i := range m.Accounts {
		b = appendMessage(b, 1, &m.Accounts[i])
	}
	return b
}

func (m *AccountsResponse) unmarshalWire(b []byte) error {
	*m = AccountsResponse{}
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		var a Account
		n, err := readMessage(typ, b, &a)
		if err != nil {
			return 0, err
		}
		m.Accounts = append(m.Accounts, a)
		return n, nil
	})
}
