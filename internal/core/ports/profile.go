package ports

import (
	"context"

	"github.com/civicgate/email-validation/internal/core/domain/profile"
)

// ProfileRepository defines the interface for citizen profile operations.
// Profiles are versioned; reads always serve the latest version.
type ProfileRepository interface {
	// FindLatestByFiscalCode returns the most recent profile version.
	// ok=false when no profile exists for the fiscal code.
	FindLatestByFiscalCode(ctx context.Context, fiscalCode string) (*profile.Profile, bool, error)
	// Update submits a new profile version with a last-write version bump.
	// A lost optimistic race surfaces as an error.
	Update(ctx context.Context, p *profile.Profile) (*profile.Profile, error)
}

// ProfileEmailIterator walks a lazily produced set of validated e-mail
// associations. It follows the sql.Rows protocol so a backend failure can
// surface mid-iteration, and consumers may stop early.
type ProfileEmailIterator interface {
	Next() bool
	Entry() profile.Email
	Err() error
	Close() error
}

// ProfileEmailReader is the read contract of the uniqueness oracle: it
// lists every profile association for a given e-mail. Each call returns a
// fresh, finite iterator.
type ProfileEmailReader interface {
	ListProfilesWithEmail(ctx context.Context, email string) ProfileEmailIterator
}
