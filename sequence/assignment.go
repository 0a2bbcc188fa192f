package sequence

// Assignment maps frame indices to objects. It is fixed once created.
type Assignment struct {
	objects []Object
}

// NewAssignment creates an Assignment in the order the objects are given.
func NewAssignment(objects []Object) (*Assignment, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyInputSet
	}

	a := new(Assignment)
	a.objects = make([]Object, len(objects))
	copy(a.objects, objects)
	return a, nil
}

// Len is the number of objects in the assignment.
func (a *Assignment) Len() int {
	if a == nil {
		return 0
	}
	return len(a.objects)
}

// At returns the object assigned to index i.
func (a *Assignment) At(i int) Object {
	return a.objects[i]
}

// Index returns the index of o, or -1 if it is not part of the assignment.
func (a *Assignment) Index(o Object) int {
	for i, obj := range a.objects {
		if obj == o {
			return i
		}
	}
	return -1
}

// Visible returns the indices of all objects that are currently shown.
func (a *Assignment) Visible() []int {
	var visible []int
	for i, o := range a.objects {
		if !o.Hidden() {
			visible = append(visible, i)
		}
	}
	return visible
}

// VisibleIndex returns the index of the first shown object, or -1 if all are hidden.
func (a *Assignment) VisibleIndex() int {
	for i, o := range a.objects {
		if !o.Hidden() {
			return i
		}
	}
	return -1
}
