package filedemand

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/filedemand/filedemand/internal/store"
)

// Access selects how Read returns content.
type Access string

const (
	// AccessContent returns the decoded content, through the cache.
	AccessContent Access = "content"
	// AccessStream returns an io.ReadCloser opened on disk, bypassing the cache.
	AccessStream Access = "stream"
)

// ReadRequest addresses content under an object. Path is only meaningful for
// folders. An empty Access means AccessContent.
type ReadRequest struct {
	Path   string
	Access Access
}

// Read returns the content of key according to req.Access.
func (r *Registry) Read(key string, req ReadRequest) (any, error) {
	obj, err := r.Object(key)
	if err != nil {
		return nil, err
	}

	path := r.resolve(obj, req.Path)

	switch req.Access {
	case "", AccessContent:
		return r.readContent(obj, path)
	case AccessStream:
		rc, err := r.openStream(path)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAccess, req.Access)
	}
}

// Get returns the content of key. JSON objects yield the decoded value, other
// objects a string.
func (r *Registry) Get(key string, sub ...string) (any, error) {
	return r.Read(key, ReadRequest{Path: filepath.Join(sub...)})
}

// Stream opens the file behind key for reading. The caller closes it.
func (r *Registry) Stream(key string, sub ...string) (io.ReadCloser, error) {
	v, err := r.Read(key, ReadRequest{Path: filepath.Join(sub...), Access: AccessStream})
	if err != nil {
		return nil, err
	}
	return v.(io.ReadCloser), nil
}

func (r *Registry) readContent(obj Object, path string) (any, error) {
	if !obj.Mode.Cached() {
		return r.readFile(path, obj.JSON)
	}

	if e, err := r.store.Get(path); err == nil {
		return e.Content, nil
	}

	content, err := r.readFile(path, obj.JSON)
	if err != nil {
		return nil, err
	}

	r.store.Set(path, content, store.SetOptions{Mode: obj.Mode, JSON: obj.JSON})
	r.log.WithFields(logrus.Fields{
		"key":  obj.Key,
		"path": path,
		"mode": obj.Mode.String(),
	}).Debug("content cached")

	return content, nil
}

// WriteRequest is either a FileWrite or a FolderWrite.
type WriteRequest interface {
	target() writeTarget
}

type writeTarget struct {
	key     string
	path    string
	content any
	json    bool
	folder  bool
}

// FileWrite replaces the content of a File object.
type FileWrite struct {
	Key     string
	Content any
	// JSON forces JSON encoding even if the object is not declared JSON.
	JSON bool
}

func (w FileWrite) target() writeTarget {
	return writeTarget{key: w.Key, content: w.Content, json: w.JSON}
}

// FolderWrite replaces the content of a file under a Folder object.
type FolderWrite struct {
	Key     string
	Path    string
	Content any
	JSON    bool
}

func (w FolderWrite) target() writeTarget {
	return writeTarget{key: w.Key, path: w.Path, content: w.Content, json: w.JSON, folder: true}
}

// Write stores content for a file or folder entry.
//
// Dynamic and Cache objects are written to disk only when the file does not
// exist yet; the content is always kept in memory until Sync. Temp objects are
// always written straight to disk. Static objects are read-only.
func (r *Registry) Write(req WriteRequest) error {
	t := req.target()

	obj, err := r.Object(t.key)
	if err != nil {
		return err
	}

	if obj.Mode == Static {
		return fmt.Errorf("%w: %s", ErrReadOnly, obj.Key)
	}

	var path string
	switch {
	case t.folder && obj.Kind == File:
		return fmt.Errorf("%w: %s is a file", ErrArityMismatch, obj.Key)
	case !t.folder && obj.Kind == Folder:
		return fmt.Errorf("%w: %s is a folder, a path is required", ErrArityMismatch, obj.Key)
	case t.folder:
		path = r.resolve(obj, t.path)
	default:
		path = r.resolve(obj)
	}

	asJSON := obj.JSON || t.json
	data, err := r.encode(t.content, asJSON)
	if err != nil {
		return err
	}

	log := r.log.WithFields(logrus.Fields{
		"key":  obj.Key,
		"path": path,
		"mode": obj.Mode.String(),
	})

	if !obj.Mode.Cached() {
		if err := r.writeFile(path, data); err != nil {
			return err
		}
		log.Debug("content written")
		return nil
	}

	exists, err := r.exists(path)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.writeFile(path, data); err != nil {
			return err
		}
		log.Debug("content seeded")
	}

	r.store.Set(path, t.content, store.SetOptions{Mode: obj.Mode, JSON: asJSON})
	return nil
}

// Set writes content to a File object.
func (r *Registry) Set(key string, content any) error {
	return r.Write(FileWrite{Key: key, Content: content})
}

// SetAt writes content to path under a Folder object.
func (r *Registry) SetAt(key, path string, content any) error {
	return r.Write(FolderWrite{Key: key, Path: path, Content: content})
}
