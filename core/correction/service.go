package correction

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/zoezi/core"
)

var (
	// ErrAlreadyExists means this exact (unit, exercise, digest) correction is
	// already recorded; the picture content itself is never the conflict.
	ErrAlreadyExists = errors.New("correction already exists")
)

type (
	Repository interface {
		// CreateCorrection returns ErrAlreadyExists on a duplicate
		// (unit, exercise, digest) tuple.
		CreateCorrection(ctx context.Context, corr Correction) error
		// DeleteCorrection is idempotent; deleting an absent row is not an error.
		DeleteCorrection(ctx context.Context, unitID, exercise int, digest string) error
	}

	// BlobStore persists deduplicated picture bytes under their digest.
	BlobStore interface {
		// Put writes the blob unless a blob with this digest already exists;
		// created reports whether a new file was written.
		Put(digest string, b []byte) (created bool, err error)
	}

	// CoordinateChecker validates an (unit, exercise) coordinate; satisfied by
	// unit.Service.
	CoordinateChecker interface {
		CheckExercise(ctx context.Context, unitID, exercise int) error
	}

	Service struct {
		repo    Repository
		blobs   BlobStore
		units   CoordinateChecker
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, blobs BlobStore, units CoordinateChecker, mailSvc core.EmailService) *Service {
	return &Service{
		repo:    repo,
		blobs:   blobs,
		units:   units,
		mailSvc: mailSvc,
	}
}

// Submit runs the whole submission pipeline: coordinate check, normalization
// to PNG, content-addressed store. The relational insert goes first and the
// database enforces a single winner per (unit, exercise, digest); the blob
// write then relies on the filesystem's exclusive create, and losing that
// race is success since equal digests mean equal bytes.
func (svc *Service) Submit(ctx context.Context, unitID, exercise, studentID int, picture []byte, contentType string) (Correction, error) {
	if err := svc.units.CheckExercise(ctx, unitID, exercise); err != nil {
		return Correction{}, err
	}

	png, err := normalize(picture, contentType)
	if err != nil {
		return Correction{}, err
	}

	sum := sha256.Sum256(png)
	corr := Correction{
		UnitID:    unitID,
		Exercise:  exercise,
		CreatedBy: studentID,
		Digest:    base64.RawURLEncoding.EncodeToString(sum[:]),
		CreatedAt: time.Now().UTC(),
	}
	if err = svc.repo.CreateCorrection(ctx, corr); err != nil {
		return Correction{}, err
	}
	if _, err = svc.blobs.Put(corr.Digest, png); err != nil {
		return Correction{}, pkgerrors.Wrap(err, "writing correction blob")
	}

	svc.notifyTeacher(corr)
	return corr, nil
}

func (svc *Service) Delete(ctx context.Context, unitID, exercise int, digest string) error {
	return svc.repo.DeleteCorrection(ctx, unitID, exercise, digest)
}

func (svc *Service) notifyTeacher(corr Correction) {
	if svc.mailSvc == nil || core.Conf.TeacherEmail == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: core.Conf.TeacherEmail}},
		Subject: fmt.Sprintf("New correction for unit %d, exercise %d", corr.UnitID, corr.Exercise+1),
		BodyStr: fmt.Sprintf("A student uploaded a new correction picture (%s.png).", corr.Digest),
	})
}
