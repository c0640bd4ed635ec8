package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/onnwee/quickcache/internal/cacheerr"
)

// SnapshotBackend persists one logical document as a whole, never as a
// write-ahead log. FileManager (loose files) and BoltBackend (embedded
// database) both satisfy this so Store code is unaware which is active.
type SnapshotBackend interface {
	Write(payload []byte) error
	Read() ([]byte, error)
}

// FileManager resolves snapshot paths and persists whole-cache or
// whole-metrics documents as a single file, written atomically via a
// temp-file-then-rename so a partial write can never replace a good
// snapshot.
type FileManager struct {
	dir          string
	filename     string
	extension    string
	useTimestamp bool
	explicitPath string

	mu            sync.Mutex
	lastWritePath string // most recent path Write resolved to, when useTimestamp is set
}

// NewFileManager constructs a loose-file SnapshotBackend. If explicitPath is
// non-empty it is used as-is for every Write/Read, bypassing dir/filename
// composition entirely.
func NewFileManager(dir, filename, extension string, useTimestamp bool, explicitPath string) *FileManager {
	return &FileManager{
		dir:          dir,
		filename:     filename,
		extension:    extension,
		useTimestamp: useTimestamp,
		explicitPath: explicitPath,
	}
}

// resolvePath composes storage_dir / filename[.timestamp].extension, or
// returns the explicit path if one was configured.
func (f *FileManager) resolvePath(now time.Time) string {
	if f.explicitPath != "" {
		return f.explicitPath
	}
	base := f.filename
	if f.useTimestamp {
		// Filesystem-safe, colon-free, seconds-resolution UTC timestamp.
		base = fmt.Sprintf("%s.%s", base, now.UTC().Format("20060102T150405Z"))
	}
	name := fmt.Sprintf("%s.%s", base, f.extension)
	return filepath.Join(f.dir, name)
}

// Write atomically replaces the target file's contents with payload. When
// useTimestamp is set, the resolved path is remembered so a subsequent Read
// on this FileManager finds the file it just wrote rather than resolving a
// fresh (different) timestamp.
func (f *FileManager) Write(payload []byte) error {
	path := f.resolvePath(time.Now())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cacheerr.Persistence("mkdir", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return cacheerr.Persistence("create_temp", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return cacheerr.Persistence("write_temp", err)
	}
	if err := tmp.Close(); err != nil {
		return cacheerr.Persistence("close_temp", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return cacheerr.Persistence("rename", err)
	}

	f.mu.Lock()
	f.lastWritePath = path
	f.mu.Unlock()
	return nil
}

// Read returns the contents of the most recently written snapshot. When
// useTimestamp is set, it prefers the exact path this FileManager last wrote
// (so Save followed by Load round-trips within one process) and otherwise
// falls back to the most recent timestamped file on disk matching this
// FileManager's filename/extension (so a fresh process can still restore
// after a prior run's save). Without useTimestamp there is only ever one
// candidate path, as before.
func (f *FileManager) Read() ([]byte, error) {
	path := f.readPath()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, cacheerr.Persistence("read", err)
	}
	return b, nil
}

func (f *FileManager) readPath() string {
	if f.explicitPath != "" || !f.useTimestamp {
		return f.resolvePath(time.Now())
	}

	f.mu.Lock()
	last := f.lastWritePath
	f.mu.Unlock()
	if last != "" {
		return last
	}

	if latest := f.mostRecentTimestampedFile(); latest != "" {
		return latest
	}
	return f.resolvePath(time.Now())
}

// mostRecentTimestampedFile globs for files matching this FileManager's
// filename/extension under dir and returns the lexicographically greatest
// match. The timestamp suffix format sorts lexically by time, so this is
// the most recently written snapshot.
func (f *FileManager) mostRecentTimestampedFile() string {
	pattern := filepath.Join(f.dir, fmt.Sprintf("%s.*.%s", f.filename, f.extension))
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}

// decodeInto bounces a generically-deserialized value (as produced by a
// textual Serializer's Deserialize, typically a map[string]any) back into a
// concrete struct via JSON. If v is already the concrete type — the case
// for a binary Serializer like gob, which preserves the original type
// through its envelope — the round trip is skipped.
func decodeInto[T any](v any, target *T) error {
	if t, ok := v.(T); ok {
		*target = t
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}
