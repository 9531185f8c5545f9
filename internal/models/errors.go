// ABOUTME: Error kinds surfaced by the retrieval engine
// ABOUTME: Sentinel errors wrapped with %w so callers can tell failure classes apart
package models

import "errors"

var (
	// ErrConfiguration means provider credentials or engine settings are missing or invalid
	ErrConfiguration = errors.New("configuration error")
	// ErrProvider means an embedding or completion call failed
	ErrProvider = errors.New("provider error")
	// ErrCorruptIndex means the persisted index could not be parsed
	ErrCorruptIndex = errors.New("corrupt index")
	// ErrIO means reading or writing persisted state failed
	ErrIO = errors.New("io error")
	// ErrDimensionMismatch means two vectors of different length were compared or mixed in one index
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrEmptyIndex means a query ran against an index with zero records
	ErrEmptyIndex = errors.New("empty index")
)

var errorKinds = []struct {
	err  error
	name string
}{
	{ErrConfiguration, "ConfigurationError"},
	{ErrProvider, "ProviderError"},
	{ErrCorruptIndex, "CorruptIndexError"},
	{ErrIO, "IOError"},
	{ErrDimensionMismatch, "DimensionMismatchError"},
	{ErrEmptyIndex, "EmptyIndexError"},
}

// ErrorKind names the kind of err for user-facing messages.
// Returns "Error" when err wraps none of the known kinds.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Error"
}
