package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/civicgate/email-validation/internal/core/domain/profile"
	"github.com/civicgate/email-validation/internal/core/ports"
	"github.com/civicgate/email-validation/internal/infrastructure/db"
)

// ProfileRepository implements the profile repository interface on
// Postgres. Profiles are append-only versioned documents: every update
// inserts a new row with a bumped version, and reads serve the highest
// version for a fiscal code.
type ProfileRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(database *db.Database, logger *logrus.Logger) ports.ProfileRepository {
	return &ProfileRepository{
		db:     database,
		logger: logger,
	}
}

// FindLatestByFiscalCode retrieves the most recent profile version
func (r *ProfileRepository) FindLatestByFiscalCode(ctx context.Context, fiscalCode string) (*profile.Profile, bool, error) {
	var p profile.Profile
	query := `
		SELECT fiscal_code, email, is_email_validated, version, created_at, updated_at
		FROM profiles
		WHERE fiscal_code = $1
		ORDER BY version DESC
		LIMIT 1`

	err := r.db.DB.GetContext(ctx, &p, query, fiscalCode)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"fiscal_code": fiscalCode}).Debug("db: profile not found")
			}
			return nil, false, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"fiscal_code": fiscalCode}).WithError(err).Error("db: failed to get latest profile")
		}
		return nil, false, fmt.Errorf("failed to get latest profile: %w", err)
	}

	return &p, true, nil
}

// Update appends the next version of the profile. The primary key on
// (fiscal_code, version) makes a lost concurrent update fail the insert
// instead of silently overwriting.
func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	next := *p
	next.Version = p.Version + 1
	next.UpdatedAt = time.Now()

	query := `
		INSERT INTO profiles (fiscal_code, email, is_email_validated, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query,
		next.FiscalCode, next.Email, next.IsEmailValidated, next.Version, next.CreatedAt, next.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"fiscal_code": p.FiscalCode, "version": next.Version}).WithError(err).Error("db: failed to update profile")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"fiscal_code": p.FiscalCode, "version": next.Version}).Info("db: profile version written")
	}

	return &next, nil
}
