// Package storage keeps uploaded image files on local disk, under a single
// directory that is served read-only at URLPrefix.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// URLPrefix is the path under which stored files are served over HTTP. Every
// image path handed out by Save starts with it.
const URLPrefix = "/uploads"

// Extensions outside this pattern would need escaping in the image path, so
// they are dropped
var safeExtension = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

type Storage interface {
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)
	Remove(ctx context.Context, image string) error
	List(ctx context.Context) ([]File, error)
}

// File is a stored file as seen by the orphan sweeper
type File struct {
	Image   string
	ModTime time.Time
}

type DiskStorage struct {
	Dir string
}

// NewDiskStorage ensures dir exists and returns a storage rooted at it
func NewDiskStorage(dir string) (DiskStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return DiskStorage{}, errors.Wrap(err, "failed to create upload directory")
	}
	return DiskStorage{Dir: dir}, nil
}

// Save streams r into a newly named file and returns its public image path,
// e.g. "/uploads/1704067200000-8f14e45f-ceea-467f-a0e6-7b8e2f0a1c3d.jpg".
// Only the extension of originalName is kept, and only if it is alphanumeric.
func (s DiskStorage) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	ext := filepath.Ext(filepath.Base(originalName))
	if !safeExtension.MatchString(ext) {
		ext = ""
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
	path := filepath.Join(s.Dir, name)

	// O_EXCL: a name collision must fail rather than clobber another upload
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", errors.Wrap(err, "failed to create upload file")
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return "", errors.Wrap(err, "failed to write upload file")
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", errors.Wrap(err, "failed to close upload file")
	}

	return URLPrefix + "/" + name, nil
}

// Remove deletes the file behind an image path. A file that is already gone
// is not an error.
func (s DiskStorage) Remove(ctx context.Context, image string) error {
	path, err := s.Path(image)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove upload file")
	}
	return nil
}

func (s DiskStorage) List(ctx context.Context) ([]File, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload directory")
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, err := entry.Info()
		if os.IsNotExist(err) {
			// removed between ReadDir and Info
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to stat upload file")
		}

		files = append(files, File{
			Image:   URLPrefix + "/" + entry.Name(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Path resolves an image path to its location on disk. Paths that do not name
// a file directly inside the storage directory are rejected.
func (s DiskStorage) Path(image string) (string, error) {
	name := strings.TrimPrefix(image, URLPrefix+"/")
	if name == image || name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.Errorf("invalid image path: %q", image)
	}
	return filepath.Join(s.Dir, name), nil
}
