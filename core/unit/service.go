package unit

import (
	"context"
	"errors"

	"github.com/trezcool/zoezi/core/student"
)

var (
	// errors
	ErrUnitNotFound     = errors.New("unit not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidState     = errors.New("invalid exercise state")
)

type (
	Repository interface {
		QueryAllUnits(ctx context.Context) ([]Unit, error)
		// GetExerciseCount returns ErrUnitNotFound for an unknown unit.
		GetExerciseCount(ctx context.Context, unitID int) (int, error)
		QueryStudentStates(ctx context.Context, unitID int) ([]StudentStateEntry, error)
		QueryExerciseFlags(ctx context.Context, unitID int) ([]ExerciseFlags, error)
		QueryCorrectionDigests(ctx context.Context, unitID int) ([]DigestRef, error)
		SetStudentState(ctx context.Context, studentID, unitID, exercise, state int) error
		ClearStudentState(ctx context.Context, studentID, unitID, exercise int) error
		SetExerciseBlocked(ctx context.Context, unitID, exercise int, blocked bool) error
		SetExerciseCorrected(ctx context.Context, unitID, exercise int, groupEven, corrected bool) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Unit, error) {
	return svc.repo.QueryAllUnits(ctx)
}

// CheckExercise validates an (unit, exercise) coordinate against the unit's
// exercise count. It must be called before any expensive work so that an
// unknown coordinate is a cheap 404.
func (svc *Service) CheckExercise(ctx context.Context, unitID, exercise int) error {
	count, err := svc.repo.GetExerciseCount(ctx, unitID)
	if err != nil {
		return err
	}
	if exercise < 0 || exercise >= count {
		return ErrExerciseNotFound
	}
	return nil
}

// ExercisesByUnit assembles the aggregate exercise view of a unit: who
// reserved/presented each exercise, the teacher flags and the correction
// image digests.
func (svc *Service) ExercisesByUnit(ctx context.Context, unitID int) ([]Exercise, error) {
	count, err := svc.repo.GetExerciseCount(ctx, unitID)
	if err != nil {
		return nil, err
	}

	exercises := make([]Exercise, count)
	for i := range exercises {
		exercises[i].ReservedBy = []student.Student{}
		exercises[i].PresentedBy = []student.Student{}
		exercises[i].CorrectionImages = []string{}
	}

	states, err := svc.repo.QueryStudentStates(ctx, unitID)
	if err != nil {
		return nil, err
	}
	for _, entry := range states {
		if entry.Exercise < 0 || entry.Exercise >= count {
			continue // stale row past a shrunken exercise count
		}
		ex := &exercises[entry.Exercise]
		switch entry.State {
		case StateReserved:
			ex.ReservedBy = append(ex.ReservedBy, entry.Student)
		case StatePresented:
			ex.PresentedBy = append(ex.PresentedBy, entry.Student)
		}
	}

	flags, err := svc.repo.QueryExerciseFlags(ctx, unitID)
	if err != nil {
		return nil, err
	}
	for _, f := range flags {
		if f.Index < 0 || f.Index >= count {
			continue
		}
		ex := &exercises[f.Index]
		ex.Blocked = f.Blocked
		ex.TeacherCorrectedForGroupEven = f.CorrectedGroupEven
		ex.TeacherCorrectedForGroupOdd = f.CorrectedGroupOdd
	}

	digests, err := svc.repo.QueryCorrectionDigests(ctx, unitID)
	if err != nil {
		return nil, err
	}
	for _, d := range digests {
		if d.Exercise < 0 || d.Exercise >= count {
			continue
		}
		exercises[d.Exercise].CorrectionImages = append(exercises[d.Exercise].CorrectionImages, d.Digest)
	}

	return exercises, nil
}

// SetStudentState records that a student reserved or presented an exercise,
// or clears the record ("none"). Clearing skips the coordinate check: deleting
// a row that cannot exist is a no-op either way.
func (svc *Service) SetStudentState(ctx context.Context, studentID, unitID, exercise int, state string) error {
	var st int
	switch state {
	case "none":
		return svc.repo.ClearStudentState(ctx, studentID, unitID, exercise)
	case "reserved":
		st = StateReserved
	case "presented":
		st = StatePresented
	default:
		return ErrInvalidState
	}

	if err := svc.CheckExercise(ctx, unitID, exercise); err != nil {
		return err
	}
	return svc.repo.SetStudentState(ctx, studentID, unitID, exercise, st)
}

func (svc *Service) SetBlocked(ctx context.Context, unitID, exercise int, blocked bool) error {
	if err := svc.CheckExercise(ctx, unitID, exercise); err != nil {
		return err
	}
	return svc.repo.SetExerciseBlocked(ctx, unitID, exercise, blocked)
}

// SetCorrected flags an exercise as corrected by the teacher for one class
// half (the caller's group).
func (svc *Service) SetCorrected(ctx context.Context, unitID, exercise int, groupEven, corrected bool) error {
	if err := svc.CheckExercise(ctx, unitID, exercise); err != nil {
		return err
	}
	return svc.repo.SetExerciseCorrected(ctx, unitID, exercise, groupEven, corrected)
}
