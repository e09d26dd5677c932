package ports

import (
	"context"

	"github.com/civicgate/email-validation/internal/core/domain/validation"
)

// EmailValidationService drives the e-mail validation pipeline. The
// single operation always produces a redirect outcome; failures are
// folded into failure redirects, never surfaced as errors.
type EmailValidationService interface {
	HandleValidation(ctx context.Context, token validation.Token, flowChoice validation.FlowChoice) validation.Redirect
}
