package profile

import (
	"time"
)

// Profile is one version of a citizen's stored record. Profiles are
// versioned documents: identity is the fiscal code, and the store always
// serves the highest version for it.
type Profile struct {
	FiscalCode       string    `json:"fiscal_code" db:"fiscal_code"`
	Email            string    `json:"email" db:"email"`
	IsEmailValidated bool      `json:"is_email_validated" db:"is_email_validated"`
	Version          int64     `json:"version" db:"version"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// WithEmailValidated returns a copy of the profile with IsEmailValidated
// forced to true and every other field untouched.
func (p Profile) WithEmailValidated() Profile {
	p.IsEmailValidated = true
	return p
}

// Email is an entry of the validated-emails lookup table consumed by the
// uniqueness check. One row per (email, fiscal code) association.
type Email struct {
	Email      string `json:"email" db:"email"`
	FiscalCode string `json:"fiscal_code" db:"fiscal_code"`
}
