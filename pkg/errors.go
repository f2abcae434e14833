package welearn

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide whether to abort a
// run or skip a single item.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfig
	KindAuth
	KindNetwork
	KindRemote
	KindFilesystem
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindRemote:
		return "remote"
	case KindFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// Error is returned by every external call of the package.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
