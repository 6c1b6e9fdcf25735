package filedemand

import (
	"fmt"
	"strings"
)

// Kind tells whether an object is a single file or a folder of files.
type Kind int

const (
	File Kind = iota + 1
	Folder
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Folder:
		return "folder"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps "file" or "folder" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return File, nil
	case "folder":
		return Folder, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Object describes a named file or folder under the registry root.
type Object struct {
	Key  string
	Kind Kind
	// Name is the path of the object relative to the root.
	Name string
	Mode Mode
	// JSON objects are decoded in memory and encoded on disk.
	JSON bool
	// Defaults seeds a File object the first time it is materialized.
	Defaults any
}

func (o Object) validate() error {
	if o.Kind != File && o.Kind != Folder {
		return fmt.Errorf("%w: %s for key %q", ErrInvalidKind, o.Kind, o.Key)
	}
	if !o.Mode.Valid() {
		return fmt.Errorf("%w: %s for key %q", ErrInvalidMode, o.Mode, o.Key)
	}
	return nil
}
