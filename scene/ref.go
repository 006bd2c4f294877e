package scene

// Ref is a plain, non-observable handle to an object that may be attached
// after the handle is created.
type Ref struct {
	obj Object
}

// NewRef returns a ref holding obj, which may be nil.
func NewRef(obj Object) *Ref {
	return &Ref{obj: obj}
}

// Resolve returns the attached object or nil.
func (r *Ref) Resolve() Object {
	if r == nil {
		return nil
	}
	return r.obj
}

func (r *Ref) Set(obj Object) {
	if r != nil {
		r.obj = obj
	}
}

func (r *Ref) Clear() {
	r.Set(nil)
}
