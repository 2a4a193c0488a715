package variables

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the pool as an ordered array of {"name","value"}
// objects; a JSON object would lose the insertion order.
func (p *Pool) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Variables())
}

// UnmarshalJSON accepts the array form written by MarshalJSON. The decoded
// pool is in ReadWriteAdd mode.
func (p *Pool) UnmarshalJSON(data []byte) error {
	var vars []Variable
	if err := json.Unmarshal(data, &vars); err != nil {
		return fmt.Errorf("variables: decode: %w", err)
	}
	fresh, err := FromVariables(vars...)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.names, p.values, p.index, p.mode = fresh.names, fresh.values, fresh.index, fresh.mode

	return nil
}
