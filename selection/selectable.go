package selection

// Selectable is anything that carries a selected flag. Scene objects own
// their selectables; selectors only keep references for the duration of a test.
type Selectable interface {
	IsSelected() bool
	SetSelected(selected bool)
}

// BasicSelectable is a plain flag. Manipulators keep one per sub-handle.
type BasicSelectable struct {
	selected bool
}

func (b *BasicSelectable) IsSelected() bool          { return b.selected }
func (b *BasicSelectable) SetSelected(selected bool) { b.selected = selected }

// Deselect clears every flag in handles.
func Deselect(handles []BasicSelectable) {
	for i := range handles {
		handles[i].selected = false
	}
}

// AnySelected reports whether any flag in handles is set.
func AnySelected(handles []BasicSelectable) bool {
	for i := range handles {
		if handles[i].selected {
			return true
		}
	}
	return false
}
