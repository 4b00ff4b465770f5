package grid

// Result describes what a single [Paint] call did to a cell.
type Result int

const (
	// Added means the cell was empty and now carries the current tag.
	Added Result = iota
	// Removed means the cell carried the current tag and was cleared.
	Removed
	// Retagged means the cell carried another tag and was overwritten.
	Retagged
)

// String returns the lowercase name of the result.
func (r Result) String() string {
	switch r {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Retagged:
		return "retagged"
	}
	return "unknown"
}

// Matcher decides whether an existing tag matches the tool's current tag.
type Matcher[T any] func(existing, current T) bool

// SameTag matches tags with equal index and equal color.
func SameTag(existing, current Tag) bool {
	return existing == current
}

// SameIndex matches tags with equal index, ignoring color.
func SameIndex(existing, current Tag) bool {
	return existing.Index == current.Index
}

// Paint applies the click cycle to cell c of layer l:
//
//   - no tag at c: set current, return [Added]
//   - a tag matching current: clear c, return [Removed]
//   - any other tag: overwrite with current, return [Retagged]
//
// Painting the same tag twice therefore restores the cell's original state,
// and re-tagging never leaves more than one entry for a cell.
func Paint[T any](l *Layer[T], c Cell, current T, match Matcher[T]) Result {
	existing, ok := l.Get(c)
	switch {
	case !ok:
		l.Set(c, current)
		return Added
	case match(existing, current):
		l.Remove(c)
		return Removed
	default:
		l.Set(c, current)
		return Retagged
	}
}
