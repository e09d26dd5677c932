package validation

import (
	"encoding/base64"
	"fmt"
)

// ErrorCode classifies a terminal validation failure. The set is
// exhaustive; every failure of the pipeline maps to exactly one code.
type ErrorCode string

const (
	CodeGenericError      ErrorCode = "GENERIC_ERROR"
	CodeInvalidToken      ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	CodeEmailAlreadyTaken ErrorCode = "EMAIL_ALREADY_TAKEN"
)

// RedirectKind tags the terminal outcome of a validation request.
type RedirectKind string

const (
	RedirectConfirm RedirectKind = "confirm"
	RedirectSuccess RedirectKind = "success"
	RedirectFailure RedirectKind = "failure"
)

// Redirect is the sole output of the validation pipeline: a browser
// redirect URL tagged with its outcome. Immutable once produced.
type Redirect struct {
	Kind RedirectKind
	Code ErrorCode // set only when Kind is RedirectFailure
	URL  string
}

// ConfirmRedirect points the browser at the confirmation page, carrying
// the token and the base64url-encoded pending e-mail.
func ConfirmRedirect(confirmBaseURL string, token Token, email string) Redirect {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(email))
	return Redirect{
		Kind: RedirectConfirm,
		URL:  fmt.Sprintf("%s?token=%s&email=%s", confirmBaseURL, token, encoded),
	}
}

// SuccessRedirect points the browser at the callback page after a
// completed validation.
func SuccessRedirect(callbackBaseURL string) Redirect {
	return Redirect{
		Kind: RedirectSuccess,
		URL:  fmt.Sprintf("%s?result=success", callbackBaseURL),
	}
}

// FailureRedirect points the browser at the callback page carrying the
// failure classification.
func FailureRedirect(callbackBaseURL string, code ErrorCode) Redirect {
	return Redirect{
		Kind: RedirectFailure,
		Code: code,
		URL:  fmt.Sprintf("%s?result=failure&error=%s", callbackBaseURL, code),
	}
}
