package filedemand

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"

	"github.com/filedemand/filedemand/internal/merge"
	"github.com/filedemand/filedemand/internal/store"
)

// Registry is a catalog of objects rooted at a directory, backed by an
// in-memory content store.
type Registry struct {
	root  string
	fs    afero.Fs
	enc   encoding.Encoding
	store *store.Store
	opts  *Options
	log   logrus.FieldLogger

	mu      sync.RWMutex
	objects map[string]Object
	order   []string
}

// Open creates a registry rooted at root, which must be an existing directory.
func Open(root string, opts ...Option) (*Registry, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	ok, err := afero.DirExists(options.Fs, abs)
	if err != nil || !ok {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, abs)
	}

	enc, err := lookupEncoding(options.Encoding)
	if err != nil {
		return nil, err
	}

	log := options.Logger.WithField("root", abs)

	st := store.New(
		store.WithExpire(options.CacheExpire),
		store.WithLength(options.CacheLength),
		store.WithClock(options.Clock),
		store.WithLogger(log),
	)

	log.WithFields(logrus.Fields{
		"action":       "open",
		"cache_expire": st.Expire(),
		"cache_length": st.Length(),
		"encoding":     options.Encoding,
	}).Debug("registry opened")

	return &Registry{
		root:    abs,
		fs:      options.Fs,
		enc:     enc,
		store:   st,
		opts:    options,
		log:     log,
		objects: make(map[string]Object),
	}, nil
}

// Root returns the absolute root directory.
func (r *Registry) Root() string { return r.root }

// Add registers objects in order. It stops at the first invalid or duplicate
// object; objects before it stay registered.
func (r *Registry) Add(objs ...Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, obj := range objs {
		if _, exists := r.objects[obj.Key]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, obj.Key)
		}
		if err := obj.validate(); err != nil {
			return err
		}
		r.objects[obj.Key] = obj
		r.order = append(r.order, obj.Key)
	}
	return nil
}

// Object returns the object registered under key.
func (r *Registry) Object(key string) (Object, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, ok := r.objects[key]
	if !ok {
		return Object{}, fmt.Errorf("%w: key %q", ErrNotFound, key)
	}
	return obj, nil
}

// Objects returns every registered object in registration order.
func (r *Registry) Objects() []Object {
	r.mu.RLock()
	defer r.mu.RUnlock()

	objs := make([]Object, 0, len(r.order))
	for _, key := range r.order {
		objs = append(objs, r.objects[key])
	}
	return objs
}

// Resolve returns the absolute path of key. For folders, sub is joined
// beneath the folder; for files it is ignored.
func (r *Registry) Resolve(key string, sub ...string) (string, error) {
	obj, err := r.Object(key)
	if err != nil {
		return "", err
	}
	return r.resolve(obj, sub...), nil
}

func (r *Registry) resolve(obj Object, sub ...string) string {
	if obj.Kind == File || len(sub) == 0 {
		return filepath.Join(r.root, obj.Name)
	}
	return filepath.Join(append([]string{r.root, obj.Name}, sub...)...)
}

// Init creates the directories of every object and writes the defaults of
// files that do not exist yet. With extend, existing JSON files get their
// defaults deep-merged in; defaults win on conflicting values.
func (r *Registry) Init(extend bool) error {
	objs := r.Objects()

	for _, obj := range objs {
		dir := r.resolve(obj)
		if obj.Kind == File {
			dir = filepath.Dir(dir)
		}
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	for _, obj := range objs {
		if obj.Kind != File {
			continue
		}
		if err := r.materialize(obj, extend); err != nil {
			return fmt.Errorf("init %s: %w", obj.Key, err)
		}
	}

	r.log.WithFields(logrus.Fields{
		"action":  "init",
		"objects": len(objs),
		"extend":  extend,
	}).Debug("objects initialized")
	return nil
}

func (r *Registry) materialize(obj Object, extend bool) error {
	path := r.resolve(obj)

	exists, err := r.exists(path)
	if err != nil {
		return err
	}

	if !exists {
		data, err := r.encode(obj.Defaults, obj.JSON)
		if err != nil {
			return err
		}
		if err := r.writeFile(path, data); err != nil {
			return err
		}
		r.log.WithFields(logrus.Fields{"key": obj.Key, "path": path}).Debug("defaults written")
		return nil
	}

	if !obj.JSON || !extend {
		return nil
	}

	current, err := r.readFile(path, true)
	if err != nil {
		return err
	}
	defaults, err := normalizeJSON(obj.Defaults)
	if err != nil {
		return err
	}

	data, err := r.encode(merge.Extend(current, defaults), true)
	if err != nil {
		return err
	}
	if err := r.writeFile(path, data); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{"key": obj.Key, "path": path}).Debug("defaults merged")
	return nil
}

// Cached reports whether the content of key is resident in memory.
func (r *Registry) Cached(key string, sub ...string) (bool, error) {
	path, err := r.Resolve(key, sub...)
	if err != nil {
		return false, err
	}
	return r.store.Exists(path), nil
}
