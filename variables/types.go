// Package variables defines Pool, the ordered name→value collection that
// serves as a point (or a box corner) in the parameter space of a design
// space, and the access modes that guard it.
//
// Index positions are significant: matrix columns of the S-system and the
// design space follow the order in which names were added to a Pool.
//
// Errors:
//
//	ErrVariableNotFound   - requested name does not exist.
//	ErrDuplicateVariable  - Add of a name already present.
//	ErrReadOnly           - mutation attempted in a mode that forbids it.
//	ErrInvalidName        - name is not an identifier.
//	ErrIndexOutOfRange    - At(i) with i outside [0, Len).
//	ErrLengthMismatch     - SetValues with len(names) != len(values).
package variables

import (
	"errors"
	"regexp"
	"sync"
)

// Sentinel errors for pool operations.
var (
	// ErrVariableNotFound indicates an operation referenced a name that is not in the pool.
	ErrVariableNotFound = errors.New("variables: variable not found")

	// ErrDuplicateVariable indicates Add was called with a name already present.
	ErrDuplicateVariable = errors.New("variables: duplicate variable")

	// ErrReadOnly indicates the pool's mode forbids the attempted mutation.
	ErrReadOnly = errors.New("variables: pool is not writable in this mode")

	// ErrInvalidName indicates a name that is not a valid identifier.
	ErrInvalidName = errors.New("variables: invalid variable name")

	// ErrIndexOutOfRange indicates At was called with an index outside the pool.
	ErrIndexOutOfRange = errors.New("variables: index out of range")

	// ErrLengthMismatch indicates names and values slices of different lengths.
	ErrLengthMismatch = errors.New("variables: names and values differ in length")

	// ErrMalformed indicates a textual pool ("a=1, b=2") that cannot be parsed.
	ErrMalformed = errors.New("variables: malformed assignment list")
)

// Mode controls which mutations a Pool accepts.
type Mode uint8

const (
	// ReadWriteAdd permits Add and Set. It is the mode of a fresh pool.
	ReadWriteAdd Mode = iota
	// ReadWrite permits Set on existing names only.
	ReadWrite
	// ReadOnly rejects every mutation.
	ReadOnly
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ReadWriteAdd:
		return "read-write-add"
	case ReadWrite:
		return "read-write"
	case ReadOnly:
		return "read-only"
	default:
		return "unknown"
	}
}

// namePattern matches the identifiers accepted by the expression parser.
var namePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Variable is one named entry of a Pool.
type Variable struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Pool is an ordered, thread-safe collection of named float64 values.
//
// mu guards names, index, values and mode. The zero value is not usable;
// construct pools with NewPool.
type Pool struct {
	mu sync.RWMutex

	names  []string       // insertion order
	values []float64      // values[i] belongs to names[i]
	index  map[string]int // name → position
	mode   Mode
}
