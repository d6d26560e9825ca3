package album

import "github.com/polaroidwall/polaroidwall/pkg/models"

// DragItem tracks the polaroid being dragged and its current list index. The
// index follows the polaroid as hovering moves it.
type DragItem struct {
	ID    string
	Index int
}

// BeginDrag starts dragging the polaroid at index
func BeginDrag(polaroids []models.Polaroid, index int) (DragItem, bool) {
	if index < 0 || index >= len(polaroids) {
		return DragItem{}, false
	}
	return DragItem{ID: polaroids[index].ID, Index: index}, true
}

// Hover works out the move that brings the dragged polaroid over target and
// the drag item after it. It reports false when nothing should move: the
// dragged polaroid is no longer in the list, target is out of range, or the
// polaroid is already there.
func Hover(polaroids []models.Polaroid, item DragItem, target int) (Moved, DragItem, bool) {
	from, ok := locate(polaroids, item)
	if !ok || target < 0 || target >= len(polaroids) {
		return Moved{}, item, false
	}
	item.Index = from

	if from == target {
		return Moved{}, item, false
	}

	item.Index = target
	return Moved{From: from, To: target}, item, true
}

// locate finds the dragged polaroid's index, trusting the tracked index when
// it still points at the same polaroid
func locate(polaroids []models.Polaroid, item DragItem) (int, bool) {
	if item.Index >= 0 && item.Index < len(polaroids) && polaroids[item.Index].ID == item.ID {
		return item.Index, true
	}
	for i, p := range polaroids {
		if p.ID == item.ID {
			return i, true
		}
	}
	return 0, false
}
