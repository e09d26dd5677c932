package validation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// tokenPattern is the structural shape of a redirect token:
// a 26-character ULID-like identifier, a colon, and a 24-character hex
// validator (12 random bytes hex-encoded by whoever minted the token).
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9]{26}:[A-Fa-f0-9]{24}$`)

// Token is an opaque redirect token of the form <tokenID>:<validator>.
// Structural validation happens at the HTTP edge; the core assumes the
// shape already holds.
type Token string

// ParseToken validates the structural shape of a raw token string.
func ParseToken(raw string) (Token, error) {
	if !tokenPattern.MatchString(raw) {
		return "", fmt.Errorf("malformed validation token")
	}
	return Token(raw), nil
}

// Split separates the token into its identifier and validator parts.
func (t Token) Split() (tokenID, validator string) {
	parts := strings.SplitN(string(t), ":", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// ValidatorHash returns the lowercase hex SHA-256 of the validator part.
// Token records are keyed by this hash rather than the raw validator, so
// the effective secret never exists in the store.
func (t Token) ValidatorHash() string {
	_, validator := t.Split()
	sum := sha256.Sum256([]byte(validator))
	return hex.EncodeToString(sum[:])
}

func (t Token) String() string {
	return string(t)
}

// TokenRecord is a validation token as persisted in the token store.
// Records are minted when a profile e-mail change is requested and are
// read-only to this service.
type TokenRecord struct {
	Email        string    `json:"email"`
	FiscalCode   string    `json:"fiscal_code"`
	InvalidAfter time.Time `json:"invalid_after"`
}

// DecodeTokenRecord decodes and shape-validates a raw stored record.
func DecodeTokenRecord(raw []byte) (*TokenRecord, error) {
	var rec TokenRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode token record: %w", err)
	}
	if rec.Email == "" || rec.FiscalCode == "" || rec.InvalidAfter.IsZero() {
		return nil, fmt.Errorf("token record is missing required fields")
	}
	return &rec, nil
}

// FlowChoice selects between the non-mutating preview step and the
// mutating confirmation step of the validation flow.
type FlowChoice string

const (
	FlowConfirm  FlowChoice = "CONFIRM"
	FlowValidate FlowChoice = "VALIDATE"
)

// ParseFlowChoice validates a raw flow choice query value.
func ParseFlowChoice(raw string) (FlowChoice, error) {
	switch FlowChoice(raw) {
	case FlowConfirm, FlowValidate:
		return FlowChoice(raw), nil
	default:
		return "", fmt.Errorf("unknown flow choice %q", raw)
	}
}
