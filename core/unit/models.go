package unit

import (
	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/student"
)

// Student exercise states.
const (
	StateReserved  = 0
	StatePresented = 1
)

type (
	Unit struct {
		ID            int    `json:"id" db:"id"`
		Name          string `json:"name" db:"name"`
		ExerciseCount int    `json:"exerciseCount" db:"exercise_count"`

		// Deadlines are per class half; opaque display strings, the API does
		// not interpret them.
		DeadlineGroupEven string `json:"deadlineGroupEven" db:"deadline_group_even"`
		DeadlineGroupOdd  string `json:"deadlineGroupOdd" db:"deadline_group_odd"`
	}

	// Exercise is the aggregate view of one exercise in a unit, as served to
	// the frontend. Exercises exist implicitly: a unit has ExerciseCount of
	// them, and the tables only hold rows for the ones somebody touched.
	Exercise struct {
		ReservedBy  []student.Student `json:"reservedBy"`
		PresentedBy []student.Student `json:"presentedBy"`

		// Blocked is set when the teacher said students should not do this
		// exercise.
		Blocked bool `json:"blocked"`

		TeacherCorrectedForGroupEven bool `json:"teacherCorrectedForGroupEven"`
		TeacherCorrectedForGroupOdd  bool `json:"teacherCorrectedForGroupOdd"`

		// CorrectionImages lists the digests of submitted correction pictures.
		CorrectionImages []string `json:"correctionImages"`
	}

	// StudentStateEntry is one student's state on one exercise, joined with
	// the student row.
	StudentStateEntry struct {
		Exercise int `db:"exercise"`
		State    int `db:"state"`
		student.Student
	}

	// ExerciseFlags is the sparse per-exercise teacher flags row.
	ExerciseFlags struct {
		Index              int  `db:"index_"`
		Blocked            bool `db:"blocked"`
		CorrectedGroupEven bool `db:"corrected_group_even"`
		CorrectedGroupOdd  bool `db:"corrected_group_odd"`
	}

	// DigestRef points an exercise to one stored correction image.
	DigestRef struct {
		Exercise int    `db:"exercise"`
		Digest   string `db:"digest"`
	}
)

// StateChange is the payload of a state-change request.
type StateChange struct {
	State string `json:"state" validate:"required,oneof=none reserved presented"`
}

func (sc *StateChange) Validate() error {
	sc.State = core.CleanString(sc.State, true /* lower */)
	return core.Validate.Struct(sc)
}
