// Package fs provides a ScriptSource backed by a directory of YAML script
// definitions, one file per script, the script ID being the filename
// without its extension.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aretw0/riposte/pkg/domain"
)

// DefaultPollInterval is how often Watch scans the directory for changes.
const DefaultPollInterval = 2 * time.Second

// Source reads script definitions from a directory. Files must carry a
// .yaml or .yml extension; anything else is ignored.
type Source struct {
	dir  string
	poll time.Duration
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithPollInterval overrides how often Watch rescans the directory.
func WithPollInterval(d time.Duration) SourceOption {
	return func(s *Source) {
		if d > 0 {
			s.poll = d
		}
	}
}

// New creates a Source over dir. The directory does not need to exist yet;
// a missing directory simply lists no scripts.
func New(dir string, opts ...SourceOption) *Source {
	s := &Source{dir: dir, poll: DefaultPollInterval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the raw bytes of the script with the given ID.
func (s *Source) Get(id string) ([]byte, error) {
	path, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("script %q: %w", id, domain.ErrScriptNotFound)
		}
		return nil, fmt.Errorf("failed to read script %q: %w", id, err)
	}
	return data, nil
}

// resolve maps an ID to its file, preferring .yaml over .yml, and rejects
// IDs that would escape the directory.
func (s *Source) resolve(id string) (string, error) {
	if id == "" || id != filepath.Base(id) {
		return "", fmt.Errorf("invalid script id %q", id)
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("script %q: %w", id, domain.ErrScriptNotFound)
}

// List returns the IDs of every script file in the directory, sorted.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		ids = append(ids, entry.Name()[:len(entry.Name())-len(ext)])
	}
	sort.Strings(ids)
	return ids, nil
}

// Watch polls the directory and signals whenever any script file's
// modification time or the set of files changes. The channel closes when
// ctx is cancelled.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.poll)
		defer ticker.Stop()

		last := s.fingerprint()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				next := s.fingerprint()
				if next == last {
					continue
				}
				last = next
				select {
				case ch <- struct{}{}:
				default: // a pending signal already covers this change
				}
			}
		}
	}()

	return ch, nil
}

// fingerprint summarizes the directory as name:mtime pairs. Any difference
// in the string means something changed.
func (s *Source) fingerprint() string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return ""
	}
	var sum string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sum += fmt.Sprintf("%s:%d;", entry.Name(), info.ModTime().UnixNano())
	}
	return sum
}
