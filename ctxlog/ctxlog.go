// Package ctxlog provides the per-invocation Context threaded explicitly
// through the pipeline in place of a global logger or a default data
// directory.
//
// Construction follows a validated functional-option style:
// New(opts...) applies each Option over a struct of sane defaults.
package ctxlog

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Context is the per-invocation environment passed to every pipeline entry
// point that needs to log, resolve data files, or scope scratch storage.
// It owns no goroutines and is safe to share read-only across a single
// synchronous pipeline run.
type Context struct {
	log         *slog.Logger
	dataDirs    []string
	scratchRoot string
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithLogger installs a custom *slog.Logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDataDirs sets the ordered list of data-file search roots, mirroring
// a CLI boundary's environment-supplied data-directory list; the core only
// ever consumes the already-split slice.
func WithDataDirs(dirs []string) Option {
	return func(c *Context) { c.dataDirs = append([]string(nil), dirs...) }
}

// WithScratchRoot sets the directory under which per-input-hash scratch
// subdirectories are created.
func WithScratchRoot(root string) Option {
	return func(c *Context) { c.scratchRoot = root }
}

// New builds a Context with sane defaults: an slog.Logger writing text to
// io.Discard, no data directories, and a scratch root of os.TempDir().
func New(opts ...Option) *Context {
	c := &Context{
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		scratchRoot: os.TempDir(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Log returns the Context's logger. Never nil.
func (c *Context) Log() *slog.Logger { return c.log }

// DataDirs returns the configured data-file search roots, in order.
func (c *Context) DataDirs() []string { return append([]string(nil), c.dataDirs...) }

// ScratchDirFor returns the scratch directory path reserved for the given
// stable input hash (see residue.StrucsContext.Hash), without creating it.
// Concurrent invocations on identical inputs may reuse an existing
// directory's already-computed files; callers needing a fresh
// directory must remove it first.
func (c *Context) ScratchDirFor(hash string) string {
	return filepath.Join(c.scratchRoot, "strucore-"+hash)
}

// EnsureScratchDirFor creates (if absent) and returns the scratch directory
// for the given hash.
func (c *Context) EnsureScratchDirFor(hash string) (string, error) {
	dir := c.ScratchDirFor(hash)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ctxlog: create scratch dir %q: %w", dir, err)
	}
	return dir, nil
}

// HashNames computes the stable per-input hash used to name scratch
// directories from a slice of structure names and their region-mask
// descriptions. It is exposed here (rather than only on
// residue.StrucsContext) so callers who have not yet built a StrucsContext
// can still precompute a scratch path.
func HashNames(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		io.WriteString(h, p)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
