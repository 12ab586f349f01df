package game

const (
	Rows  = 3
	Cols  = 3
	Cells = Rows * Cols
)

// Line is a row, column or diagonal.
type Line [3]int

var (
	mainDiagonal = Line{0, 4, 8}
	antiDiagonal = Line{2, 4, 6}
)

// linesThrough[cell] holds every line that passes through cell, so a move
// only needs those lines checked. Read-only after init.
var linesThrough = buildLines()

func buildLines() [Cells][]Line {
	var table [Cells][]Line
	for cell := range Cells {
		row, col := IndexToRowCol(cell)

		lines := []Line{
			{RowColToIndex(row, 0), RowColToIndex(row, 1), RowColToIndex(row, 2)},
			{RowColToIndex(0, col), RowColToIndex(1, col), RowColToIndex(2, col)},
		}
		if row == col {
			lines = append(lines, mainDiagonal)
		}
		if row+col == Rows-1 {
			lines = append(lines, antiDiagonal)
		}
		table[cell] = lines
	}
	return table
}

// LinesThrough returns the lines passing through cell. The result is shared
// and must not be modified.
func LinesThrough(cell int) []Line {
	return linesThrough[cell]
}

func IndexToRowCol(index int) (row, col int) {
	return index / Cols, index % Cols
}

func RowColToIndex(row, col int) int {
	return row*Cols + col
}
