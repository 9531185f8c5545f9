// ABOUTME: Read-only access to a folder of notes on disk
// ABOUTME: Lists documents under a scope, filtered by extension, and loads them for indexing
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harper/vault-assistant/internal/models"
)

// DefaultExtensions are the note file types indexed when none are configured
var DefaultExtensions = []string{".md", ".txt"}

// DocumentRef identifies one note without reading it
type DocumentRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Size  int64  `json:"size"`
}

// Vault is a note folder rooted at a directory
type Vault struct {
	root       string
	fsys       fs.FS
	extensions map[string]bool
}

// Open returns a vault rooted at dir. The directory must exist.
func Open(dir string, extensions []string) (*Vault, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: vault root: %w", models.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: vault root %s is not a directory", models.ErrConfiguration, dir)
	}
	return New(os.DirFS(dir), dir, extensions), nil
}

// New returns a vault over fsys. root is only used in messages.
func New(fsys fs.FS, root string, extensions []string) *Vault {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &Vault{root: root, fsys: fsys, extensions: exts}
}

// Root returns the vault directory
func (v *Vault) Root() string {
	return v.root
}

// ListDocuments returns the notes under scope sorted by ID.
// Scope is a slash path relative to the root; empty or "." means the whole vault.
// Hidden files and directories are skipped.
func (v *Vault) ListDocuments(scope string) ([]DocumentRef, error) {
	dir, err := cleanScope(scope)
	if err != nil {
		return nil, err
	}

	var refs []DocumentRef
	err = fs.WalkDir(v.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !v.extensions[strings.ToLower(path.Ext(p))] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		refs = append(refs, DocumentRef{
			ID:    p,
			Label: Label(p),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: scope %q not found in vault %s", models.ErrConfiguration, scope, v.root)
		}
		return nil, fmt.Errorf("%w: list %s: %w", models.ErrIO, scope, err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

// ReadDocument returns the text of the note with the given ID
func (v *Vault) ReadDocument(id string) (string, error) {
	p, err := cleanScope(id)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(v.fsys, p)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", models.ErrIO, id, err)
	}
	return string(data), nil
}

// LoadScope lists and reads every note under scope
func (v *Vault) LoadScope(scope string) ([]models.Document, error) {
	refs, err := v.ListDocuments(scope)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(refs))
	for _, ref := range refs {
		text, err := v.ReadDocument(ref.ID)
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.Document{
			ID:    ref.ID,
			Label: ref.Label,
			Text:  text,
		})
	}
	return docs, nil
}

// Label returns the display name for a note path: the file name without extension
func Label(id string) string {
	base := path.Base(id)
	return strings.TrimSuffix(base, path.Ext(base))
}

// cleanScope turns a user supplied scope into an fs.FS path that stays inside the vault
func cleanScope(scope string) (string, error) {
	s := filepath.ToSlash(strings.TrimSpace(scope))
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return ".", nil
	}
	s = path.Clean(s)
	if !fs.ValidPath(s) {
		return "", fmt.Errorf("%w: scope %q escapes the vault", models.ErrConfiguration, scope)
	}
	return s, nil
}
