package core

import "fmt"

// UnsupportedValueError is returned when a value kind has no faithful
// representation in a backend's binding API. It is raised while binding
// arguments, never while rendering SQL text.
type UnsupportedValueError struct {
	Kind    Kind
	Null    bool
	Backend string
}

func (e *UnsupportedValueError) Error() string {
	if e.Null {
		return fmt.Sprintf("unsupported value for %s: null %s cannot be bound", e.Backend, e.Kind)
	}
	return fmt.Sprintf("unsupported value for %s: %s cannot be bound", e.Backend, e.Kind)
}
