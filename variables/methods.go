package variables

import (
	"fmt"
	"strconv"
	"strings"
)

// poolErrorf wraps err with the operation and the offending name.
func poolErrorf(op, name string, err error) error {
	return fmt.Errorf("%s(%q): %w", op, name, err)
}

// NewPool creates a ReadWriteAdd pool holding names (all values 0), in order.
//
// Errors: ErrInvalidName, ErrDuplicateVariable.
func NewPool(names ...string) (*Pool, error) {
	p := &Pool{
		names:  make([]string, 0, len(names)),
		values: make([]float64, 0, len(names)),
		index:  make(map[string]int, len(names)),
		mode:   ReadWriteAdd,
	}
	for _, n := range names {
		if err := p.Add(n, 0); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// FromVariables creates a ReadWriteAdd pool from name/value pairs.
func FromVariables(vars ...Variable) (*Pool, error) {
	p, _ := NewPool()
	for _, v := range vars {
		if err := p.Add(v.Name, v.Value); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Add appends name with value v. The pool must be in ReadWriteAdd mode.
//
// Errors: ErrReadOnly, ErrInvalidName, ErrDuplicateVariable.
// Complexity: amortized O(1).
func (p *Pool) Add(name string, v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ReadWriteAdd {
		return poolErrorf("Add", name, ErrReadOnly)
	}
	if !namePattern.MatchString(name) {
		return poolErrorf("Add", name, ErrInvalidName)
	}
	if _, ok := p.index[name]; ok {
		return poolErrorf("Add", name, ErrDuplicateVariable)
	}
	p.index[name] = len(p.names)
	p.names = append(p.names, name)
	p.values = append(p.values, v)

	return nil
}

// Set overwrites the value of an existing name.
//
// Errors: ErrReadOnly, ErrVariableNotFound.
func (p *Pool) Set(name string, v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == ReadOnly {
		return poolErrorf("Set", name, ErrReadOnly)
	}
	i, ok := p.index[name]
	if !ok {
		return poolErrorf("Set", name, ErrVariableNotFound)
	}
	p.values[i] = v

	return nil
}

// SetValues sets several names at once; the update is all-or-nothing.
func (p *Pool) SetValues(names []string, values []float64) error {
	if len(names) != len(values) {
		return fmt.Errorf("SetValues: %w", ErrLengthMismatch)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == ReadOnly {
		return fmt.Errorf("SetValues: %w", ErrReadOnly)
	}
	pos := make([]int, len(names))
	for k, n := range names {
		i, ok := p.index[n]
		if !ok {
			return poolErrorf("SetValues", n, ErrVariableNotFound)
		}
		pos[k] = i
	}
	for k, i := range pos {
		p.values[i] = values[k]
	}

	return nil
}

// Value returns the value stored under name.
func (p *Pool) Value(name string) (float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	i, ok := p.index[name]
	if !ok {
		return 0, poolErrorf("Value", name, ErrVariableNotFound)
	}

	return p.values[i], nil
}

// Lookup is Value in comma-ok form; it satisfies expression.Lookup.
func (p *Pool) Lookup(name string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	i, ok := p.index[name]
	if !ok {
		return 0, false
	}

	return p.values[i], true
}

// Has reports whether name is present.
func (p *Pool) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.index[name]

	return ok
}

// IndexOf returns the position of name, or -1 when absent.
func (p *Pool) IndexOf(name string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i, ok := p.index[name]; ok {
		return i
	}

	return -1
}

// At returns the i-th variable in insertion order.
func (p *Pool) At(i int) (Variable, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.names) {
		return Variable{}, fmt.Errorf("At(%d): %w", i, ErrIndexOutOfRange)
	}

	return Variable{Name: p.names[i], Value: p.values[i]}, nil
}

// Len returns the number of variables.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.names)
}

// Names returns a copy of the names in insertion order.
func (p *Pool) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]string(nil), p.names...)
}

// Values returns a copy of the values in insertion order.
func (p *Pool) Values() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]float64(nil), p.values...)
}

// Variables returns a copy of the entries in insertion order.
func (p *Pool) Variables() []Variable {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Variable, len(p.names))
	for i := range p.names {
		out[i] = Variable{Name: p.names[i], Value: p.values[i]}
	}

	return out
}

// Map returns an unordered name→value snapshot.
func (p *Pool) Map() map[string]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]float64, len(p.names))
	for i, n := range p.names {
		out[n] = p.values[i]
	}

	return out
}

// Copy returns an independent pool with the same entries and mode.
func (p *Pool) Copy() *Pool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cp := &Pool{
		names:  append([]string(nil), p.names...),
		values: append([]float64(nil), p.values...),
		index:  make(map[string]int, len(p.names)),
		mode:   p.mode,
	}
	for k, v := range p.index {
		cp.index[k] = v
	}

	return cp
}

// SetMode changes the access mode.
func (p *Pool) SetMode(m Mode) {
	p.mu.Lock()
	p.mode = m
	p.mu.Unlock()
}

// Mode returns the current access mode.
func (p *Pool) Mode() Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.mode
}

// String formats the pool as "name=value, ..." in insertion order.
// The output is accepted by Parse.
func (p *Pool) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var b strings.Builder
	for i, n := range p.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(p.values[i], 'g', -1, 64))
	}

	return b.String()
}

// Parse reads "a=1, b=2e-3" (commas or semicolons between assignments) into
// a new ReadWriteAdd pool. An empty string yields an empty pool.
//
// Errors: ErrMalformed, ErrInvalidName, ErrDuplicateVariable.
func Parse(s string) (*Pool, error) {
	p, _ := NewPool()
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		name, raw, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("Parse(%q): %w", f, ErrMalformed)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("Parse(%q): %w: %v", f, ErrMalformed, err)
		}
		if err = p.Add(strings.TrimSpace(name), v); err != nil {
			return nil, err
		}
	}

	return p, nil
}
