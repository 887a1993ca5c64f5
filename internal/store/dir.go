package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no cached file exists for a year.
	ErrNotFound = errors.New("no cached weather data for year")
)

// DirStore is a read-only cache of yearly record files laid out as
// <dir>/<year><ext>. It never writes, so concurrent readers need no locking.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Path returns the file path a year would be stored at for the given format.
func (s *DirStore) Path(year int, f weather.Format) string {
	return filepath.Join(s.dir, strconv.Itoa(year)+f.Ext)
}

// Load returns the first cached file for year, trying formats in order.
func (s *DirStore) Load(year int, formats []weather.Format) ([]byte, weather.Format, error) {
	for _, f := range formats {
		data, err := os.ReadFile(s.Path(year, f))
		if err == nil {
			return data, f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, weather.Format{}, fmt.Errorf("read cached %d%s: %w", year, f.Ext, err)
		}
	}
	return nil, weather.Format{}, fmt.Errorf("%w: %d in %s", ErrNotFound, year, s.dir)
}
