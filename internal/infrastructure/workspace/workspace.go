package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	repository "docgate/internal/domain/repository/workspace"
)

var ErrInvalidName = errors.New("invalid input file name")

type Manager struct {
	root string
}

func NewManager(cfg Config) *Manager {
	return &Manager{root: cfg.Root}
}

// Create allocates a uniquely named directory readable only by this process.
func (m *Manager) Create() (repository.Workspace, error) {
	if m.root != "" {
		if err := os.MkdirAll(m.root, 0o700); err != nil {
			return nil, fmt.Errorf("prepare workspace root: %w", err)
		}
	}

	dir, err := os.MkdirTemp(m.root, fmt.Sprintf("docgate-%s-", uuid.NewString()))
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &Workspace{dir: dir}, nil
}

type Workspace struct {
	dir  string
	once sync.Once
	err  error
}

func (w *Workspace) Dir() string {
	return w.dir
}

// WriteInput stores data under name, which must be a bare file name.
func (w *Workspace) WriteInput(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write input: %w", err)
	}

	return path, nil
}

// FindByExtension lists regular files directly under the workspace whose
// extension matches ext, ignoring case. The result is sorted.
func (w *Workspace) FindByExtension(ext string) ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("scan workspace: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			matches = append(matches, filepath.Join(w.dir, entry.Name()))
		}
	}
	sort.Strings(matches)

	return matches, nil
}

// Destroy removes the workspace and everything beneath it. Repeated calls
// return the first result.
func (w *Workspace) Destroy() error {
	w.once.Do(func() {
		if err := os.RemoveAll(w.dir); err != nil {
			w.err = fmt.Errorf("remove workspace %s: %w", w.dir, err)
		}
	})

	return w.err
}
