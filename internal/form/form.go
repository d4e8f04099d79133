package form

// Form is the editable text state of one resource form. Values are kept as
// typed by the user and only parsed at submission.
type Form struct {
	schema Schema
	values map[string]string
}

func New(schema Schema) *Form {
	return &Form{schema: schema, values: make(map[string]string, len(schema.Fields))}
}

func (f *Form) Schema() Schema {
	return f.schema
}

func (f *Form) Get(id string) string {
	return f.values[id]
}

// Set ignores ids that are not part of the schema.
func (f *Form) Set(id, value string) {
	if !f.schema.Has(id) {
		return
	}
	f.values[id] = value
}

// Clear resets every field to the empty baseline.
func (f *Form) Clear() {
	for k := range f.values {
		delete(f.values, k)
	}
}

// Snapshot copies the current values, one entry per schema field.
func (f *Form) Snapshot() map[string]string {
	out := make(map[string]string, len(f.schema.Fields))
	for _, field := range f.schema.Fields {
		out[field.ID] = f.values[field.ID]
	}
	return out
}

// Restore replaces the values with a snapshot taken earlier.
func (f *Form) Restore(values map[string]string) {
	f.Clear()
	for id, v := range values {
		f.Set(id, v)
	}
}
