package store

import (
	"os"
	"strings"
	"sync"

	"github.com/trendlens/trendlens/internal/types"
)

// FilePrefs persists the selected time range to a single file.
type FilePrefs struct {
	path string
}

// NewFilePrefs creates a file-backed preference store at path.
func NewFilePrefs(path string) *FilePrefs {
	return &FilePrefs{path: path}
}

// TimeFrame implements Prefs. A missing or unreadable file means no
// preference has been saved yet.
func (p *FilePrefs) TimeFrame() (types.TimeFrame, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", false
	}

	tf := types.TimeFrame(strings.TrimSpace(string(data)))
	if !tf.Valid() {
		return "", false
	}

	return tf, true
}

// SetTimeFrame implements Prefs.
func (p *FilePrefs) SetTimeFrame(tf types.TimeFrame) error {
	return os.WriteFile(p.path, []byte(tf), 0o644)
}

// MemoryPrefs is an in-memory Prefs implementation.
type MemoryPrefs struct {
	mu  sync.Mutex
	tf  types.TimeFrame
	set bool
}

// TimeFrame implements Prefs.
func (p *MemoryPrefs) TimeFrame() (types.TimeFrame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.tf, p.set
}

// SetTimeFrame implements Prefs.
func (p *MemoryPrefs) SetTimeFrame(tf types.TimeFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tf = tf
	p.set = true

	return nil
}
