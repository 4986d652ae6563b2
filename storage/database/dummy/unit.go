package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/zoezi/core/unit"
)

type unitRepository struct {
	db *DB
}

var _ unit.Repository = (*unitRepository)(nil) // interface compliance check

func NewUnitRepository(db *DB) *unitRepository {
	return &unitRepository{db: db}
}

func (repo *unitRepository) QueryAllUnits(ctx context.Context) ([]unit.Unit, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	units := make([]unit.Unit, 0, len(repo.db.units))
	for _, u := range repo.db.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units, nil
}

func (repo *unitRepository) GetExerciseCount(ctx context.Context, unitID int) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if u, ok := repo.db.units[unitID]; ok {
		return u.ExerciseCount, nil
	}
	return 0, unit.ErrUnitNotFound
}

func (repo *unitRepository) QueryStudentStates(ctx context.Context, unitID int) ([]unit.StudentStateEntry, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	entries := make([]unit.StudentStateEntry, 0)
	for k, state := range repo.db.states {
		if k.unitID != unitID {
			continue
		}
		entry := unit.StudentStateEntry{Exercise: k.exercise, State: state}
		entry.Student = repo.db.students[k.studentID]
		entries = append(entries, entry)
	}
	return entries, nil
}

func (repo *unitRepository) QueryExerciseFlags(ctx context.Context, unitID int) ([]unit.ExerciseFlags, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	flags := make([]unit.ExerciseFlags, 0)
	for k, f := range repo.db.flags {
		if k.unitID == unitID {
			flags = append(flags, f)
		}
	}
	return flags, nil
}

func (repo *unitRepository) QueryCorrectionDigests(ctx context.Context, unitID int) ([]unit.DigestRef, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	refs := make([]unit.DigestRef, 0)
	for _, k := range repo.db.corrOrder {
		if _, ok := repo.db.corrections[k]; !ok {
			continue // deleted
		}
		if k.unitID == unitID {
			refs = append(refs, unit.DigestRef{Exercise: k.exercise, Digest: k.digest})
		}
	}
	return refs, nil
}

func (repo *unitRepository) SetStudentState(ctx context.Context, studentID, unitID, exercise, state int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.states[stateKey{studentID, unitID, exercise}] = state
	return nil
}

func (repo *unitRepository) ClearStudentState(ctx context.Context, studentID, unitID, exercise int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	delete(repo.db.states, stateKey{studentID, unitID, exercise})
	return nil
}

func (repo *unitRepository) SetExerciseBlocked(ctx context.Context, unitID, exercise int, blocked bool) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	k := flagsKey{unitID, exercise}
	f := repo.db.flags[k]
	f.Index = exercise
	f.Blocked = blocked
	repo.db.flags[k] = f
	return nil
}

func (repo *unitRepository) SetExerciseCorrected(ctx context.Context, unitID, exercise int, groupEven, corrected bool) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	k := flagsKey{unitID, exercise}
	f := repo.db.flags[k]
	f.Index = exercise
	if groupEven {
		f.CorrectedGroupEven = corrected
	} else {
		f.CorrectedGroupOdd = corrected
	}
	repo.db.flags[k] = f
	return nil
}
