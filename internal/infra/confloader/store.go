package confloader

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/oklog/ulid/v2"

	"github.com/tabbi89/ConfigServiceProvider/internal/telemetry/logger"
)

// Store owns the merged configuration tree.
//
// Files are merged in the order they are added: nested mappings merge,
// anything else is replaced by the later file. The tree only grows; there
// is no Set or Delete.
//
// A Store is not safe for concurrent use. Callers that Add from several
// goroutines must synchronise externally.
type Store struct {
	chain    *Chain
	tree     Tree
	sources  []Source
	log      logger.Logger
	recorder Recorder

	// view is a koanf copy of tree for typed access, rebuilt after Add.
	view *koanf.Koanf
}

// Option configures a Store.
type Option func(*Store)

// WithDrivers replaces the default driver chain.
func WithDrivers(drivers ...Driver) Option {
	return func(s *Store) {
		s.chain = NewChain(drivers...)
	}
}

// WithChain sets the driver chain.
func WithChain(c *Chain) Option {
	return func(s *Store) {
		s.chain = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithRecorder sets the load event recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// New creates an empty store using DefaultDrivers unless configured otherwise.
func New(opts ...Option) *Store {
	s := &Store{
		chain:    NewChain(DefaultDrivers()...),
		tree:     Tree{},
		log:      logger.Default(),
		recorder: nopRecorder{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Chain returns the driver chain used by Add.
func (s *Store) Chain() *Chain {
	return s.chain
}

// Add parses path and merges the result into the tree.
// A *ParseError from the owning driver is returned unchanged and leaves the
// tree untouched. Files no driver claims, and empty or missing files, merge
// nothing.
func (s *Store) Add(path string) error {
	start := time.Now()

	res, err := s.chain.Resolve(path)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			s.recorder.ParseFailed(perr.Format)
		}
		s.log.Warn("config file rejected", "path", path, "error", err)
		return err
	}

	src := Source{
		ID:       ulid.Make().String(),
		Path:     path,
		Driver:   res.Driver,
		Checksum: res.Checksum,
		Keys:     countLeaves(res.Tree),
		LoadedAt: time.Now(),
	}
	if len(res.Tree) > 0 {
		Merge(s.tree, res.Tree)
		s.view = nil
	}
	s.sources = append(s.sources, src)

	driver := src.Driver
	if driver == "" {
		driver = "none"
	}
	s.recorder.FileLoaded(driver, src.Keys, time.Since(start))
	s.log.Debug("config file loaded",
		"path", path,
		"driver", driver,
		"keys", src.Keys,
		"source_id", src.ID,
	)
	return nil
}

// AddDirectory autoloads every supported file directly inside dir.
// See LoadDirectory.
func (s *Store) AddDirectory(dir string) error {
	return LoadDirectory(dir, s)
}

// Get returns the value at a dotted key, or nil when the key does not
// resolve. Mappings are returned as copies.
func (s *Store) Get(key string) any {
	return s.GetOr(key, nil)
}

// GetOr returns the value at a dotted key, or def when the key does not
// resolve.
func (s *Store) GetOr(key string, def any) any {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// Lookup returns the value at a dotted key and whether it resolved.
func (s *Store) Lookup(key string) (any, bool) {
	v, ok := Lookup(s.tree, key)
	if !ok {
		return nil, false
	}
	return clone(v), true
}

// All returns a copy of the merged tree.
func (s *Store) All() Tree {
	return s.tree.Clone()
}

// Keys returns every leaf key in dotted form, sorted.
func (s *Store) Keys() []string {
	return SortedKeys(s.tree)
}

// KeysWithPrefix returns the sorted leaf keys equal to prefix or below it.
func (s *Store) KeysWithPrefix(prefix string) []string {
	keys := s.Keys()
	if prefix == "" {
		return keys
	}
	return slices.DeleteFunc(keys, func(k string) bool {
		return k != prefix && !strings.HasPrefix(k, prefix+Delimiter)
	})
}

// Sources returns the files added so far, in load order.
func (s *Store) Sources() []Source {
	return slices.Clone(s.sources)
}

// Stats summarises the store.
func (s *Store) Stats() Stats {
	return Stats{
		Keys:    countLeaves(s.tree),
		Sources: len(s.sources),
	}
}

// String returns the string value at key, or "" if absent.
func (s *Store) String(key string) string {
	return s.koanf().String(key)
}

// Int returns the int value at key, or 0 if absent.
func (s *Store) Int(key string) int {
	return s.koanf().Int(key)
}

// Bool returns the bool value at key, or false if absent.
func (s *Store) Bool(key string) bool {
	return s.koanf().Bool(key)
}

// Strings returns the []string value at key, or nil if absent.
func (s *Store) Strings(key string) []string {
	return s.koanf().Strings(key)
}

// Unmarshal decodes the subtree at key into target using koanf struct
// tags. An empty key decodes the whole tree.
func (s *Store) Unmarshal(key string, target any) error {
	return s.koanf().Unmarshal(key, target)
}

func (s *Store) koanf() *koanf.Koanf {
	if s.view == nil {
		k := koanf.New(Delimiter)
		// Reading a tree provider cannot fail.
		_ = k.Load(treeProvider(s.tree), nil)
		s.view = k
	}
	return s.view
}
