package filedemand

import (
	"errors"

	"github.com/filedemand/filedemand/internal/store"
)

var (
	ErrRootNotFound        = errors.New("filedemand: root not found")
	ErrDuplicateKey        = errors.New("filedemand: key already exists")
	ErrInvalidKind         = errors.New("filedemand: invalid object kind")
	ErrInvalidMode         = errors.New("filedemand: invalid object mode")
	ErrReadOnly            = errors.New("filedemand: object is read-only")
	ErrUnsupportedAccess   = errors.New("filedemand: unsupported access type")
	ErrArityMismatch       = errors.New("filedemand: write shape does not match object kind")
	ErrUnsupportedEncoding = errors.New("filedemand: unsupported encoding")
	ErrInvalidContent      = errors.New("filedemand: raw content must be a string or []byte")
)

// ErrNotFound is returned for unknown keys. It also matches store.ErrNotFound.
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "filedemand: not found" }

func (notFoundError) Is(target error) bool { return target == store.ErrNotFound }
