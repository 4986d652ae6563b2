package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/unit"
)

type unitRepository struct {
	db *sqlx.DB
}

var _ unit.Repository = (*unitRepository)(nil) // interface compliance check

func NewUnitRepository(db *sqlx.DB) *unitRepository {
	return &unitRepository{db: db}
}

func (repo *unitRepository) QueryAllUnits(ctx context.Context) ([]unit.Unit, error) {
	const q = `
		SELECT id, name, exercise_count, deadline_group_even, deadline_group_odd
		FROM unit
		ORDER BY id`

	units := make([]unit.Unit, 0)
	if err := repo.db.SelectContext(ctx, &units, q); err != nil {
		return nil, errors.Wrap(err, "querying units")
	}
	return units, nil
}

func (repo *unitRepository) GetExerciseCount(ctx context.Context, unitID int) (int, error) {
	const q = `SELECT exercise_count FROM unit WHERE id = $1`

	var count int
	if err := repo.db.GetContext(ctx, &count, q, unitID); err != nil {
		if err == sql.ErrNoRows {
			return 0, unit.ErrUnitNotFound
		}
		return 0, errors.Wrap(err, "getting exercise count")
	}
	return count, nil
}

func (repo *unitRepository) QueryStudentStates(ctx context.Context, unitID int) ([]unit.StudentStateEntry, error) {
	const q = `
		SELECT ess.exercise, ess.state, s.id, s.username, s.full_name, s.in_group_even
		FROM exercise_student_state ess
		JOIN student s ON s.id = ess.student_id
		WHERE ess.unit_id = $1`

	entries := make([]unit.StudentStateEntry, 0)
	if err := repo.db.SelectContext(ctx, &entries, q, unitID); err != nil {
		return nil, errors.Wrap(err, "querying student states")
	}
	return entries, nil
}

func (repo *unitRepository) QueryExerciseFlags(ctx context.Context, unitID int) ([]unit.ExerciseFlags, error) {
	const q = `
		SELECT index_, blocked, corrected_group_even, corrected_group_odd
		FROM exercise
		WHERE unit_id = $1`

	flags := make([]unit.ExerciseFlags, 0)
	if err := repo.db.SelectContext(ctx, &flags, q, unitID); err != nil {
		return nil, errors.Wrap(err, "querying exercise flags")
	}
	return flags, nil
}

func (repo *unitRepository) QueryCorrectionDigests(ctx context.Context, unitID int) ([]unit.DigestRef, error) {
	const q = `SELECT exercise, digest FROM correction WHERE unit_id = $1 ORDER BY created_at`

	refs := make([]unit.DigestRef, 0)
	if err := repo.db.SelectContext(ctx, &refs, q, unitID); err != nil {
		return nil, errors.Wrap(err, "querying correction digests")
	}
	return refs, nil
}

func (repo *unitRepository) SetStudentState(ctx context.Context, studentID, unitID, exercise, state int) error {
	const q = `
		INSERT INTO exercise_student_state (student_id, unit_id, exercise, state)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, unit_id, exercise) DO UPDATE SET state = EXCLUDED.state`

	if _, err := repo.db.ExecContext(ctx, q, studentID, unitID, exercise, state); err != nil {
		return errors.Wrap(err, "setting student state")
	}
	return nil
}

func (repo *unitRepository) ClearStudentState(ctx context.Context, studentID, unitID, exercise int) error {
	const q = `DELETE FROM exercise_student_state WHERE student_id = $1 AND unit_id = $2 AND exercise = $3`

	if _, err := repo.db.ExecContext(ctx, q, studentID, unitID, exercise); err != nil {
		return errors.Wrap(err, "clearing student state")
	}
	return nil
}

func (repo *unitRepository) SetExerciseBlocked(ctx context.Context, unitID, exercise int, blocked bool) error {
	const q = `
		INSERT INTO exercise (unit_id, index_, blocked)
		VALUES ($1, $2, $3)
		ON CONFLICT (unit_id, index_) DO UPDATE SET blocked = EXCLUDED.blocked`

	if _, err := repo.db.ExecContext(ctx, q, unitID, exercise, blocked); err != nil {
		return errors.Wrap(err, "setting exercise blocked")
	}
	return nil
}

func (repo *unitRepository) SetExerciseCorrected(ctx context.Context, unitID, exercise int, groupEven, corrected bool) error {
	col := "corrected_group_odd"
	if groupEven {
		col = "corrected_group_even"
	}
	// col comes from a fixed set, never from user input
	q := fmt.Sprintf(`
		INSERT INTO exercise (unit_id, index_, %[1]s)
		VALUES ($1, $2, $3)
		ON CONFLICT (unit_id, index_) DO UPDATE SET %[1]s = EXCLUDED.%[1]s`, col)

	if _, err := repo.db.ExecContext(ctx, q, unitID, exercise, corrected); err != nil {
		return errors.Wrap(err, "setting exercise corrected")
	}
	return nil
}
