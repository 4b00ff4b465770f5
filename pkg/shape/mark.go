package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mark is one position of a [Matrix]: empty, painted, or painted with a color.
type Mark struct {
	On    bool
	Color string
}

var (
	// Empty is the zero mark.
	Empty = Mark{}
	// Filled is a painted position without color.
	Filled = Mark{On: true}
)

// Colored returns a painted mark with color c. An empty color yields [Filled].
func Colored(c string) Mark {
	return Mark{On: true, Color: c}
}

// MarshalJSON encodes the mark as 0, 1 or a color string.
func (m Mark) MarshalJSON() ([]byte, error) {
	switch {
	case !m.On:
		return []byte("0"), nil
	case m.Color == "":
		return []byte("1"), nil
	default:
		return json.Marshal(m.Color)
	}
}

// UnmarshalJSON decodes 0, 1 or a color string.
func (m *Mark) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("0")):
		*m = Empty
	case bytes.Equal(data, []byte("1")):
		*m = Filled
	case len(data) > 0 && data[0] == '"':
		var c string
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*m = Colored(c)
	default:
		return fmt.Errorf("invalid mark %s", data)
	}
	return nil
}

// Matrix is a dense row-major shape; Matrix[y][x].
type Matrix [][]Mark

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Count returns the number of painted positions.
func (m Matrix) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v.On {
				n++
			}
		}
	}
	return n
}
