package homepage

import "slices"

// Reduce applies a finished drag gesture to l. It reports false, and returns
// l untouched, when the gesture has no valid drop target.
func Reduce(l Layout, s DragSession) (Layout, bool) {
	if !s.Active() {
		return l, false
	}
	src := l.ColumnOf(s.DraggingID)
	if src == None {
		return l, false
	}

	source := slices.DeleteFunc(slices.Clone(l.Column(src)), func(id SectionID) bool {
		return id == s.DraggingID
	})

	// Move to the other column: before the hovered section, or at the end.
	if s.DragOverColumn != None && s.DragOverColumn != src {
		target := slices.Clone(l.Column(s.DragOverColumn))
		if i := slices.Index(target, s.DragOverID); s.DragOverID != "" && i >= 0 {
			target = slices.Insert(target, i, s.DraggingID)
		} else {
			target = append(target, s.DraggingID)
		}
		return l.with(src, source).with(s.DragOverColumn, target), true
	}

	// Reorder within the source column.
	if s.DragOverID != "" && s.DragOverID != s.DraggingID && s.DragOverColumn == src {
		to := slices.Index(l.Column(src), s.DragOverID)
		if to < 0 {
			return l, false
		}
		// Inserting at the target's original index lands before it when
		// moving up and after it when moving down.
		return l.with(src, slices.Insert(source, to, s.DraggingID)), true
	}

	return l, false
}
