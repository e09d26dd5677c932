package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/civicgate/email-validation/internal/core/domain/profile"
	"github.com/civicgate/email-validation/internal/core/ports"
	"github.com/civicgate/email-validation/internal/infrastructure/db"
)

// ProfileEmailRepository is the uniqueness oracle's read side: it lists
// which profiles already hold a validated e-mail address.
type ProfileEmailRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProfileEmailRepository creates a new profile e-mail reader
func NewProfileEmailRepository(database *db.Database, logger *logrus.Logger) ports.ProfileEmailReader {
	return &ProfileEmailRepository{
		db:     database,
		logger: logger,
	}
}

// ListProfilesWithEmail returns a lazy iterator over the associations
// for the e-mail. Consumers may stop at the first entry; the underlying
// rows are released on Close.
func (r *ProfileEmailRepository) ListProfilesWithEmail(ctx context.Context, email string) ports.ProfileEmailIterator {
	query := `
		SELECT email, fiscal_code
		FROM profile_emails
		WHERE email = $1`

	rows, err := r.db.DB.QueryxContext(ctx, query, email)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list profiles with email")
		}
		return &profileEmailRows{err: err}
	}
	return &profileEmailRows{rows: rows}
}

// profileEmailRows adapts sqlx.Rows to the iterator port. A query that
// failed up front produces an iterator that yields nothing and reports
// the failure from Err, so callers keep a single consumption path.
type profileEmailRows struct {
	rows    *sqlx.Rows
	current profile.Email
	err     error
}

func (it *profileEmailRows) Next() bool {
	if it.err != nil || it.rows == nil {
		return false
	}
	if !it.rows.Next() {
		return false
	}
	if err := it.rows.StructScan(&it.current); err != nil {
		it.err = err
		return false
	}
	return true
}

func (it *profileEmailRows) Entry() profile.Email {
	return it.current
}

func (it *profileEmailRows) Err() error {
	if it.err != nil {
		return it.err
	}
	if it.rows != nil {
		return it.rows.Err()
	}
	return nil
}

func (it *profileEmailRows) Close() error {
	if it.rows == nil {
		return nil
	}
	return it.rows.Close()
}
