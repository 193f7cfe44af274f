package post

import (
	"errors"
	"fmt"
)

// ErrorKind classifies repository failures.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindInvalid
	KindConnectionFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindConnectionFailed:
		return "connection_failed"
	default:
		return "unknown"
	}
}

// RepoError is the only error type returned by post repositories.
// Message is safe to show to clients for KindInvalid; Err carries the
// underlying store error and must not leave the process.
type RepoError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Sentinels for errors.Is; a RepoError matches the sentinel of its kind.
var (
	ErrNotFound         = &RepoError{Kind: KindNotFound, Message: "post not found"}
	ErrInvalid          = &RepoError{Kind: KindInvalid, Message: "invalid post"}
	ErrConnectionFailed = &RepoError{Kind: KindConnectionFailed, Message: "store unavailable"}
)

func (e *RepoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RepoError) Unwrap() error { return e.Err }

func (e *RepoError) Is(target error) bool {
	t, ok := target.(*RepoError)
	return ok && t.Kind == e.Kind
}

func NotFound(id int64) *RepoError {
	return &RepoError{Kind: KindNotFound, Message: fmt.Sprintf("post %d not found", id)}
}

func Invalid(msg string, err error) *RepoError {
	return &RepoError{Kind: KindInvalid, Message: msg, Err: err}
}

func ConnectionFailed(err error) *RepoError {
	return &RepoError{Kind: KindConnectionFailed, Message: "store unavailable", Err: err}
}

// KindOf reports the kind of the first RepoError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var re *RepoError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}
