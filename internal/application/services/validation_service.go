package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/civicgate/email-validation/internal/core/domain/feature"
	"github.com/civicgate/email-validation/internal/core/domain/validation"
	"github.com/civicgate/email-validation/internal/core/ports"
)

// EmailValidatedEvent is emitted after a profile e-mail has been marked
// as validated.
const EmailValidatedEvent = "citizen-auth.validate_email"

// RedirectURLs holds the base URLs the pipeline redirects to.
type RedirectURLs struct {
	// ConfirmBaseURL is the confirmation page shown on the preview step.
	ConfirmBaseURL string
	// CallbackBaseURL receives the final success or failure result.
	CallbackBaseURL string
}

// EmailValidationService runs the token-verification and validation
// pipeline: token lookup, decode, expiry, profile lookup, e-mail match,
// uniqueness enforcement and the conditional profile mutation. Each step
// gates the next; every failure is terminal and becomes a failure
// redirect.
type EmailValidationService struct {
	tokens      ports.TokenStore
	profiles    ports.ProfileRepository
	emails      ports.ProfileEmailReader
	enforcement feature.Predicate
	events      ports.EventTracker
	urls        RedirectURLs
	now         func() time.Time
	logger      *logrus.Logger
}

func NewEmailValidationService(
	tokens ports.TokenStore,
	profiles ports.ProfileRepository,
	emails ports.ProfileEmailReader,
	enforcement feature.Predicate,
	events ports.EventTracker,
	urls RedirectURLs,
	logger *logrus.Logger,
) ports.EmailValidationService {
	return &EmailValidationService{
		tokens:      tokens,
		profiles:    profiles,
		emails:      emails,
		enforcement: enforcement,
		events:      events,
		urls:        urls,
		now:         time.Now,
		logger:      logger,
	}
}

// HandleValidation runs the full pipeline for one request. The returned
// redirect is the only channel reporting the outcome to the caller.
func (s *EmailValidationService) HandleValidation(ctx context.Context, token validation.Token, flowChoice validation.FlowChoice) validation.Redirect {
	fail := func(code validation.ErrorCode) validation.Redirect {
		return validation.FailureRedirect(s.urls.CallbackBaseURL, code)
	}

	// Step 1: find and verify the validation token.
	rec, code := s.verifyToken(ctx, token)
	if code != "" {
		return fail(code)
	}

	// Step 2: find the latest profile version for the token's owner.
	existing, found, err := s.profiles.FindLatestByFiscalCode(ctx, rec.FiscalCode)
	if err != nil {
		s.log(token).WithError(err).Error("error searching the profile")
		return fail(validation.CodeGenericError)
	}
	if !found {
		// A token referencing a vanished profile is a server-side
		// inconsistency, not a client error.
		s.log(token).Error("profile not found")
		return fail(validation.CodeGenericError)
	}

	// The profile's e-mail of record must still match the token's
	// pending e-mail exactly; further profile changes stale the token.
	if existing.Email != rec.Email {
		s.log(token).Error("email mismatch")
		return fail(validation.CodeInvalidToken)
	}

	if s.enforcement(rec.FiscalCode) {
		taken, err := s.isEmailTaken(ctx, rec.Email, rec.FiscalCode)
		if err != nil {
			s.log(token).WithError(err).Error("check for e-mail uniqueness failed")
			return fail(validation.CodeGenericError)
		}
		if taken {
			return fail(validation.CodeEmailAlreadyTaken)
		}
	}

	// Mutate only on the VALIDATE step; the confirm/preview step is
	// side-effect free and may be repeated any number of times.
	if flowChoice != validation.FlowValidate {
		return validation.ConfirmRedirect(s.urls.ConfirmBaseURL, token, rec.Email)
	}

	updated := existing.WithEmailValidated()
	if _, err := s.profiles.Update(ctx, &updated); err != nil {
		s.log(token).WithError(err).Error("error updating profile")
		return fail(validation.CodeGenericError)
	}

	s.events.Track(EmailValidatedEvent, map[string]string{
		"user": hashFiscalCode(existing.FiscalCode),
	})
	s.log(token).Debug("the profile has been updated")

	return validation.SuccessRedirect(s.urls.CallbackBaseURL)
}

// verifyToken resolves the token against the token store and validates
// the returned record. An empty error code means the record is usable.
func (s *EmailValidationService) verifyToken(ctx context.Context, token validation.Token) (*validation.TokenRecord, validation.ErrorCode) {
	id, _ := token.Split()

	raw, found, err := s.tokens.Get(ctx, id, token.ValidatorHash())
	if err != nil {
		s.log(token).WithError(err).Error("error searching validation token")
		return nil, validation.CodeGenericError
	}
	if !found {
		s.log(token).Error("validation token not found")
		return nil, validation.CodeInvalidToken
	}

	rec, err := validation.DecodeTokenRecord(raw)
	if err != nil {
		s.log(token).WithError(err).Error("validation token can't be decoded")
		return nil, validation.CodeInvalidToken
	}

	if s.now().After(rec.InvalidAfter) {
		s.log(token).WithField("expired_at", rec.InvalidAfter).Error("token expired")
		return nil, validation.CodeTokenExpired
	}

	return rec, ""
}

// isEmailTaken reports whether any other profile already holds the
// e-mail. The scan short-circuits on the first conflicting entry; a
// failure may surface mid-iteration and is returned as-is.
func (s *EmailValidationService) isEmailTaken(ctx context.Context, email, fiscalCode string) (bool, error) {
	it := s.emails.ListProfilesWithEmail(ctx, email)
	defer it.Close()

	for it.Next() {
		if it.Entry().FiscalCode != fiscalCode {
			return true, nil
		}
	}
	if err := it.Err(); err != nil {
		return false, err
	}
	return false, nil
}

func (s *EmailValidationService) log(token validation.Token) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"handler": "ValidateProfileEmail",
		"token":   token.String(),
	})
}

// hashFiscalCode tags tracked events with an irreversible identifier so
// the fiscal code never appears in telemetry in the clear.
func hashFiscalCode(fiscalCode string) string {
	sum := sha256.Sum256([]byte(fiscalCode))
	return hex.EncodeToString(sum[:])
}
