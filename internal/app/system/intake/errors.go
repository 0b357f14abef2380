package intake

// Errors accumulates per-field validation errors. Adding the same message
// to the same field twice is a no-op, so client-side and server-side
// checks of the same rule never double up in the output.
type Errors struct {
	fields map[string][]string
	order  []string
}

// NewErrors returns an empty error collection.
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add records msg against field unless that exact message is already present.
func (e *Errors) Add(field, msg string) {
	for _, existing := range e.fields[field] {
		if existing == msg {
			return
		}
	}
	if _, seen := e.fields[field]; !seen {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// HasErrors reports whether any error was recorded.
func (e *Errors) HasErrors() bool {
	return len(e.fields) > 0
}

// Field returns the messages recorded for a field.
func (e *Errors) Field(name string) []string {
	return e.fields[name]
}

// All returns every message in field-insertion order.
func (e *Errors) All() []string {
	var out []string
	for _, f := range e.order {
		out = append(out, e.fields[f]...)
	}
	return out
}

// First returns the first message, or "" when empty.
func (e *Errors) First() string {
	all := e.All()
	if len(all) == 0 {
		return ""
	}
	return all[0]
}
