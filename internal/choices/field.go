package choices

// Field binds a choice set to a named record field.
// Assignments are not checked; Clean is run before the record is written.
type Field[V comparable] struct {
	Name     string
	Set      *Set[V]
	Nullable bool
	Default  *V
}

// Clean checks a field value. A nil value is accepted only when the field is
// nullable; any other value must be a member of the set.
func (f Field[V]) Clean(v *V) error {
	if v == nil {
		if f.Nullable {
			return nil
		}
		return &ValidationError{Field: f.Name, Err: ErrNullValue}
	}
	if err := f.Set.Validate(*v); err != nil {
		return &ValidationError{Field: f.Name, Value: *v, Err: err}
	}
	return nil
}

// DisplayOf renders the stored value. Nil renders as the set's empty label,
// or "" when the set has none.
func (f Field[V]) DisplayOf(v *V) string {
	if v == nil {
		label, _ := f.Set.EmptyLabel()
		return label
	}
	return f.Set.DisplayValue(*v)
}

// DefaultValue returns the field default, if any.
func (f Field[V]) DefaultValue() (V, bool) {
	if f.Default == nil {
		var zero V
		return zero, false
	}
	return *f.Default, true
}
