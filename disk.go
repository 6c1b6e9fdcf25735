package filedemand

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// readFile loads path, decodes it from the registry encoding and, for JSON
// objects, parses it.
func (r *Registry) readFile(path string, asJSON bool) (any, error) {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text, err := r.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if !asJSON {
		return string(text), nil
	}

	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

// encode renders content the way it is stored on disk.
func (r *Registry) encode(content any, asJSON bool) ([]byte, error) {
	var text []byte
	if asJSON {
		b, err := json.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		text = b
	} else {
		switch c := content.(type) {
		case nil:
		case string:
			text = []byte(c)
		case []byte:
			text = c
		default:
			return nil, fmt.Errorf("%w: got %T", ErrInvalidContent, content)
		}
	}

	out, err := r.enc.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	return out, nil
}

func (r *Registry) writeFile(path string, data []byte) error {
	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := afero.WriteFile(r.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *Registry) exists(path string) (bool, error) {
	ok, err := afero.Exists(r.fs, path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return ok, nil
}

// stream decodes a file lazily; closing it closes the file.
type stream struct {
	io.Reader
	file afero.File
}

func (s *stream) Close() error { return s.file.Close() }

func (r *Registry) openStream(path string) (io.ReadCloser, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &stream{
		Reader: transform.NewReader(f, r.enc.NewDecoder()),
		file:   f,
	}, nil
}

// normalizeJSON converts an arbitrary Go value into the shape produced by
// json.Unmarshal into an interface value.
func normalizeJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}
	return out, nil
}
