// Package workspace hands out ephemeral, exclusively owned working
// directories, one per evaluation.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

const dirPrefix = "eval-"

// Error reports that a workspace could not be created.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to create workspace %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Manager struct {
	root   string
	active *xsync.MapOf[string, *Workspace]
	logger *slog.Logger
}

// NewManager returns a manager creating workspaces under root.
func NewManager(root string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace root %s: %w", abs, err)
	}
	return &Manager{
		root:   abs,
		active: xsync.NewMapOf[string, *Workspace](),
		logger: logger.With("component", "workspace"),
	}, nil
}

func (m *Manager) Root() string {
	return m.root
}

// Acquire creates a fresh, uniquely named directory. Nothing is left on disk
// when it fails.
func (m *Manager) Acquire(ctx context.Context) (*Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	path := filepath.Join(m.root, dirPrefix+id)

	// Mkdir, not MkdirAll: an existing directory must never be shared.
	if err := os.Mkdir(path, 0o755); err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	ws := &Workspace{id: id, path: path, manager: m}
	m.active.Store(id, ws)
	m.logger.Debug("workspace acquired", "workspace", id, "path", path)
	return ws, nil
}

// Release recursively deletes the workspace. It is safe to call more than
// once. Failures are logged and returned; callers treat them as non-fatal.
// A workspace that could not be deleted stays registered, so ReleaseAll can
// retry it.
func (m *Manager) Release(ws *Workspace) error {
	if ws == nil {
		return nil
	}
	if _, ok := m.active.Load(ws.id); !ok {
		return nil
	}
	if err := removeTree(ws.path); err != nil {
		m.logger.Warn("failed to remove workspace", "workspace", ws.id, "path", ws.path, "error", err)
		return fmt.Errorf("failed to remove workspace %s: %w", ws.path, err)
	}
	m.active.Delete(ws.id)
	m.logger.Debug("workspace released", "workspace", ws.id)
	return nil
}

// removeTree deletes path. Programs may strip permissions from directories
// they created; when the first attempt fails, owner rwx is restored on every
// reachable directory and the removal is retried.
func removeTree(path string) error {
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if d == nil || !d.IsDir() {
			return nil
		}
		// chmod first so an unreadable directory can still be descended.
		_ = os.Chmod(p, 0o700)
		return nil
	})
	return os.RemoveAll(path)
}

// Active returns the number of workspaces acquired and not yet released.
func (m *Manager) Active() int {
	return m.active.Size()
}

// ReleaseAll removes every workspace still held, used on shutdown.
func (m *Manager) ReleaseAll() error {
	var errs []error
	m.active.Range(func(_ string, ws *Workspace) bool {
		if err := m.Release(ws); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return errors.Join(errs...)
}

// Workspace is a directory owned by exactly one evaluation.
type Workspace struct {
	id      string
	path    string
	manager *Manager
}

func (ws *Workspace) ID() string {
	return ws.id
}

func (ws *Workspace) Path() string {
	return ws.path
}

// FilePath returns the absolute path of name inside the workspace.
func (ws *Workspace) FilePath(name string) string {
	return filepath.Join(ws.path, name)
}

func (ws *Workspace) AddFile(name string, content []byte, perm os.FileMode) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.WriteFile(ws.FilePath(name), content, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (ws *Workspace) HasFile(name string) bool {
	if checkName(name) != nil {
		return false
	}
	info, err := os.Stat(ws.FilePath(name))
	return err == nil && info.Mode().IsRegular()
}

func (ws *Workspace) GetFile(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return os.ReadFile(ws.FilePath(name))
}

// Close releases the workspace through its manager.
func (ws *Workspace) Close() error {
	return ws.manager.Release(ws)
}

func checkName(name string) error {
	if name == "" || filepath.IsAbs(name) || name != filepath.Clean(name) ||
		name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid workspace file name %q", name)
	}
	return nil
}
