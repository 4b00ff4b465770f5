// Package shape turns painted layers into the compact matrices consumed by
// game and layout engines.
//
// # Partitions
//
// [Extract] partitions the board layer and the group layer by group index.
// The board layer forms a single partition; every distinct group index in the
// group layer forms its own. Cells of one group may carry different colors:
// they still belong to the same partition and each keeps its own color.
//
// # Normalization
//
// For every partition the bounding box (minX, minY, maxX, maxY) is computed
// and each cell is translated by (-minX, -minY). The result is a dense,
// row-major [Matrix] with maxY-minY+1 rows and maxX-minX+1 columns. Row 0 is
// the smallest y and column 0 the smallest x. Painted positions hold a
// [Mark]; everything else is zero. A partition may span at most [MaxSpan]
// rows and columns; [Extract] rejects larger ones instead of allocating them.
//
// The board partition additionally reports its pre-translation (minX, minY)
// as [Position]. Group partitions carry no position.
//
// # JSON Format
//
// [Output] marshals to the shape file format:
//
//	{
//	  "board": {"position": {"xIndex": 2, "yIndex": 3}, "form": [[1, 1]]},
//	  "tileGroups": [{"form": [["#ff0000", 0], [0, "#ff0000"]]}]
//	}
//
// Marks encode as 0 (empty), 1 (painted, no color) or the color string.
//
// Extraction never mutates its input; calling [Extract] twice on the same
// layers yields identical output.
package shape
