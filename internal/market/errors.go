package market

import (
	"errors"
	"fmt"
)

// ErrFetch is the sentinel every FetchError matches with errors.Is.
var ErrFetch = errors.New("fetch assets failed")

// Schema errors reported inside a FetchKindDecode FetchError.
var (
	ErrMissingID   = errors.New("asset record has no id")
	ErrMissingName = errors.New("asset record has no name")
)

// FetchKind classifies why a fetch failed.
type FetchKind int

const (
	// FetchKindNetwork indicates the request never produced a response.
	FetchKindNetwork FetchKind = iota
	// FetchKindStatus indicates a non-2xx HTTP response.
	FetchKindStatus
	// FetchKindDecode indicates the payload was malformed or did not match the Asset schema.
	FetchKindDecode
)

// String returns the lowercase name used in log fields.
func (k FetchKind) String() string {
	switch k {
	case FetchKindNetwork:
		return "network"
	case FetchKindStatus:
		return "status"
	case FetchKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError is returned by Client.FetchAssets for every failure.
type FetchError struct {
	Kind       FetchKind
	StatusCode int // only set for FetchKindStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchKindStatus:
		return fmt.Sprintf("%v: unexpected status code %d", ErrFetch, e.StatusCode)
	case FetchKindNetwork, FetchKindDecode:
		return fmt.Sprintf("%v: %s: %v", ErrFetch, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%v: %v", ErrFetch, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
