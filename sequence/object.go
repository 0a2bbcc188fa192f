package sequence

// An Object is an opaque handle to something the sequencer can show or hide.
type Object interface {
	Name() string
	Hidden() bool
	SetHidden(hidden bool)
}

// Property is an animatable property of an Object.
type Property int

const (
	// Visible is true when the object is shown.
	Visible Property = iota
)

func (p Property) String() string {
	switch p {
	case Visible:
		return "visible"
	}
	return "unknown"
}

// Set writes a value for the property onto the object.
func (p Property) Set(o Object, value bool) {
	switch p {
	case Visible:
		o.SetHidden(!value)
	}
}

// Get reads the current value of the property from the object.
func (p Property) Get(o Object) bool {
	switch p {
	case Visible:
		return !o.Hidden()
	}
	return false
}
