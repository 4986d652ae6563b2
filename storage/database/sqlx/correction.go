package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/correction"
)

// uniqueViolation is the psql error code raised on a unique constraint conflict.
const uniqueViolation = "23505"

type correctionRepository struct {
	db *sqlx.DB
}

var _ correction.Repository = (*correctionRepository)(nil) // interface compliance check

func NewCorrectionRepository(db *sqlx.DB) *correctionRepository {
	return &correctionRepository{db: db}
}

func (repo *correctionRepository) CreateCorrection(ctx context.Context, corr correction.Correction) error {
	const q = `
		INSERT INTO correction (unit_id, exercise, created_by, digest, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repo.db.ExecContext(ctx, q, corr.UnitID, corr.Exercise, corr.CreatedBy, corr.Digest, corr.CreatedAt)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return correction.ErrAlreadyExists
		}
		return errors.Wrap(err, "inserting correction")
	}
	return nil
}

func (repo *correctionRepository) DeleteCorrection(ctx context.Context, unitID, exercise int, digest string) error {
	const q = `DELETE FROM correction WHERE unit_id = $1 AND exercise = $2 AND digest = $3`

	// an absent row deletes zero rows and that is fine
	if _, err := repo.db.ExecContext(ctx, q, unitID, exercise, digest); err != nil {
		return errors.Wrap(err, "deleting correction")
	}
	return nil
}
