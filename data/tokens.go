package data

import (
	"time"

	"github.com/emzola/kritika/internal/validator"
)

// Token scopes. Confirmation tokens carry the emailed signup code; a code is
// one-shot because every token in the scope is deleted once one is redeemed.
const (
	ScopeConfirmation = "confirmation"
)

// Token holds a confirmation code for a user. Only the sha256 hash is ever
// stored; the plaintext exists just long enough to be mailed out.
type Token struct {
	Plaintext string    `json:"confirmation_code"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

func ValidateCodePlaintext(v *validator.Validator, code string) {
	v.Check(code != "", "confirmation_code", "must be provided")
	v.Check(len(code) == 26, "confirmation_code", "must be 26 bytes long")
}
