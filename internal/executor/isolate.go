package executor

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// panicError carries a recovered panic value out of a task body
type panicError struct {
	recovered any
}

// Error implements the error interface
func (e *panicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.recovered)
}

// crossBoundary round-trips a value through gob encoding so the copy on
// the far side shares no memory with the original. This is the contract
// isolated workers expose to callers: inputs and results must be
// serializable, and custom types must be registered with gob.Register
// before submission. Nil crosses unchanged.
func crossBoundary(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&v); err != nil {
		return nil, err
	}

	var out any
	if err := gob.NewDecoder(&buf).Decode(&out); err != nil {
		return nil, err
	}

	return out, nil
}
