package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Store persists uploaded image bytes and returns the public path the
// stored file will be served from.
type Store interface {
	Save(data []byte, originalName string) (string, error)
}

// DiskStore writes uploads to a directory that is served back under
// /uploads. Stored files are never cleaned up when a product's image is
// replaced or the product is deleted; orphans accumulate.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) *DiskStore { return &DiskStore{Dir: dir} }

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Save writes data under a collision-resistant name derived from the
// original filename and returns "/uploads/<name>".
func (s *DiskStore) Save(data []byte, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	base := unsafeChars.ReplaceAllString(originalName[:len(originalName)-len(ext)], "_")
	if base == "" || base == "_" {
		base = uuid.New().String()
	}
	name := fmt.Sprintf("%s-%d%s", base, time.Now().UnixMilli(), ext)

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}
	return "/uploads/" + name, nil
}
