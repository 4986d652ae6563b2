package blob

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileStore is a content-addressed blob store over a single directory: a blob
// named by digest lives at <root>/<digest>.png. The directory is owned
// exclusively by the store. Files are created at most once per digest and
// never mutated; the O_EXCL create is the only synchronization between
// concurrent writers, which is sound because two writers with the same digest
// hold the same bytes.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating blob store root")
	}
	return &FileStore{root: root}, nil
}

// Put writes the blob unless a blob with this digest already exists; created
// reports whether a new file was written. Losing the create race to a
// concurrent writer is not an error.
func (s *FileStore) Put(digest string, b []byte) (created bool, err error) {
	f, err := os.OpenFile(s.Path(digest), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "creating blob file")
	}
	if _, err = f.Write(b); err != nil {
		_ = f.Close()
		return false, errors.Wrap(err, "writing blob file")
	}
	if err = f.Close(); err != nil {
		return false, errors.Wrap(err, "closing blob file")
	}
	return true, nil
}

// Path returns the file path a digest maps to.
func (s *FileStore) Path(digest string) string {
	return filepath.Join(s.root, digest+".png")
}
