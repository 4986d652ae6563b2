package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo *studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	const q = `SELECT id, username, full_name, in_group_even FROM student WHERE id = $1`

	var s student.Student
	if err := repo.db.GetContext(ctx, &s, q, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student by ID")
	}
	return s, nil
}

func (repo *studentRepository) GetStudentByUsername(ctx context.Context, username string) (student.Student, error) {
	const q = `SELECT id, username, full_name, in_group_even FROM student WHERE username = $1`

	var s student.Student
	if err := repo.db.GetContext(ctx, &s, q, username); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student by username")
	}
	return s, nil
}
