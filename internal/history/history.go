// Package history provides snapshot-based undo/redo for any state value.
package history

// DefaultMaxDepth is the number of undo steps kept when no depth is configured.
const DefaultMaxDepth = 100

// CloneFunc returns a deep copy of a state value. The copy must not share
// any mutable memory (slices, maps, pointers) with the original.
type CloneFunc[T any] func(T) T

// Identity is a CloneFunc for state types that are plain values
// (no slices, maps or pointers), where assignment already copies.
func Identity[T any](v T) T { return v }

// memento holds one stored snapshot. Its state is only ever set from and
// handed out as a fresh clone, so the live state never aliases it.
type memento[T any] struct {
	state T
}

// History keeps undo and redo stacks of snapshots for one piece of state.
// It has no knowledge of what the state represents. A History is owned by a
// single editing session and is not safe for concurrent use.
type History[T any] struct {
	clone     CloneFunc[T]
	undoStack []memento[T]
	redoStack []memento[T]
	maxDepth  int
}

// New creates a History that copies states with clone and keeps at most
// maxDepth undo steps. A maxDepth of zero or less selects DefaultMaxDepth.
func New[T any](clone func(T) T, maxDepth int) *History[T] {
	if clone == nil {
		clone = Identity[T]
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &History[T]{
		clone:    clone,
		maxDepth: maxDepth,
	}
}

// Save records a copy of state on the undo stack and clears the redo stack.
// Callers save the state as it is before they apply a modification.
func (h *History[T]) Save(state T) {
	h.undoStack = append(h.undoStack, memento[T]{state: h.clone(state)})
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot and pushes a copy of current onto the
// redo stack. It returns the restored state and true, or current unchanged
// and false when there is nothing to undo.
func (h *History[T]) Undo(current T) (T, bool) {
	if len(h.undoStack) == 0 {
		return current, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack[len(h.undoStack)-1] = memento[T]{}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, memento[T]{state: h.clone(current)})
	return h.clone(last.state), true
}

// Redo pops the most recent undone snapshot and pushes a copy of current
// onto the undo stack. It returns the restored state and true, or current
// unchanged and false when there is nothing to redo.
func (h *History[T]) Redo(current T) (T, bool) {
	if len(h.redoStack) == 0 {
		return current, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack[len(h.redoStack)-1] = memento[T]{}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, memento[T]{state: h.clone(current)})
	return h.clone(last.state), true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History[T]) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History[T]) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Len returns the sizes of the undo and redo stacks.
func (h *History[T]) Len() (undo, redo int) {
	return len(h.undoStack), len(h.redoStack)
}

// Clear removes all undo and redo history.
func (h *History[T]) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
