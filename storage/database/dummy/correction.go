package dummydb

import (
	"context"

	"github.com/trezcool/zoezi/core/correction"
)

type correctionRepository struct {
	db *DB
}

var _ correction.Repository = (*correctionRepository)(nil) // interface compliance check

func NewCorrectionRepository(db *DB) *correctionRepository {
	return &correctionRepository{db: db}
}

func (repo *correctionRepository) CreateCorrection(ctx context.Context, corr correction.Correction) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	k := corrKey{corr.UnitID, corr.Exercise, corr.Digest}
	if _, ok := repo.db.corrections[k]; ok {
		return correction.ErrAlreadyExists
	}
	repo.db.corrections[k] = corr
	repo.db.corrOrder = append(repo.db.corrOrder, k)
	return nil
}

func (repo *correctionRepository) DeleteCorrection(ctx context.Context, unitID, exercise int, digest string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	delete(repo.db.corrections, corrKey{unitID, exercise, digest})
	return nil
}
