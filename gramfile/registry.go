package gramfile

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/derive/grammar"
)

// Entry is a grammar loaded into a registry, together with its file name.
type Entry struct {
	File    string
	Grammar *grammar.Grammar
}

// Registry is an ordered collection of grammars loaded from files. Every
// file is loaded at most once. A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	opts    []Option
}

// NewRegistry creates an empty registry. opts are used for every file
// loaded into it.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{opts: opts}
}

// Load loads a grammar file into the registry, unless a file of the same
// name has been loaded before. In that case it returns the grammar loaded
// earlier.
func (reg *Registry) Load(file string) (*grammar.Grammar, error) {
	if g, ok := reg.Lookup(file); ok {
		T().Debugf("gramfile: %s is already loaded", file)
		return g, nil
	}
	g, err := LoadFile(file, reg.opts...)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, e := range reg.entries { // another goroutine may have been faster
		if sameFile(e.File, file) {
			return e.Grammar, nil
		}
	}
	reg.entries = append(reg.entries, Entry{File: file, Grammar: g})
	return g, nil
}

// LoadDir loads every regular file in directory dir, in lexical order.
// Sub-directories are not visited. It returns the number of grammars
// loaded. Files which fail to load are skipped; their errors are joined
// into the returned error.
func (reg *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, newError(dir, 0, FileNotFound, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	var errs []error
	n := 0
	for _, name := range names {
		file := filepath.Join(dir, name)
		if _, ok := reg.Lookup(file); ok {
			continue
		}
		if _, err := reg.Load(file); err != nil {
			T().Errorf("gramfile: %v", err)
			errs = append(errs, err)
			continue
		}
		n++
	}
	T().Infof("gramfile: loaded %d of %d files in %s", n, len(names), dir)
	return n, errors.Join(errs...)
}

// List returns the entries of the registry in load order.
func (reg *Registry) List() []Entry {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return append([]Entry(nil), reg.entries...)
}

// Len returns the number of grammars in the registry.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.entries)
}

// Lookup finds the grammar loaded from file.
func (reg *Registry) Lookup(file string) (*grammar.Grammar, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, e := range reg.entries {
		if sameFile(e.File, file) {
			return e.Grammar, true
		}
	}
	return nil, false
}

// sameFile compares file names, treating '/' and '\' alike.
func sameFile(a, b string) bool {
	return canonical(a) == canonical(b)
}

func canonical(file string) string {
	file = strings.ReplaceAll(file, `\`, "/")
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(file)))
}
