package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyField      = errors.New("username and content are required")
	ErrKeyNotFound     = errors.New("storage key not found")
	ErrCorruptStore    = errors.New("stored posts are corrupt")
	ErrFetchFailed     = errors.New("fetch trends failed")
	ErrStaleResponse   = errors.New("stale trends response discarded")
	ErrNoChart         = errors.New("no chart rendered")
	ErrUnsupportedData = errors.New("unsupported stored data version")
)

// ServerError carries the verbatim error string reported by the trends endpoint.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("trends endpoint error: %s", e.Message)
}
