package student

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/zoezi/core"
)

var (
	// errors
	ErrNotFound             = errors.New("student not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

type (
	Repository interface {
		GetStudentByID(ctx context.Context, id int) (Student, error)
		GetStudentByUsername(ctx context.Context, username string) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate checks the shared class password for a known username and
// returns the student along with a fresh bearer token.
func (svc *Service) Authenticate(ctx context.Context, username, password string) (Student, string, error) {
	usr, err := svc.repo.GetStudentByUsername(ctx, core.CleanString(username, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return Student{}, "", ErrAuthenticationFailed
		}
		return Student{}, "", err
	}
	if !checkPassword(password) {
		return Student{}, "", ErrAuthenticationFailed
	}
	return usr, MakeToken(usr.ID), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// checkPassword never uses a plain string compare; either bcrypt or a
// constant-time byte compare, depending on how the password is configured.
func checkPassword(password string) bool {
	if len(core.Conf.PasswordHash) > 0 {
		return bcrypt.CompareHashAndPassword(core.Conf.PasswordHash, []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(core.Conf.Password)) == 1
}
