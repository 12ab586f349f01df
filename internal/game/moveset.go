package game

import "math/bits"

// MoveSet is a bitset of board cells; bit i set means cell i is in the set.
type MoveSet uint16

// AllCells contains every cell of the board.
const AllCells MoveSet = 1<<Cells - 1

func (m MoveSet) Contains(cell int) bool {
	return cell >= 0 && cell < Cells && m&(1<<cell) != 0
}

func (m MoveSet) Add(cell int) MoveSet {
	return m | 1<<cell
}

func (m MoveSet) Remove(cell int) MoveSet {
	return m &^ (1 << cell)
}

func (m MoveSet) Len() int {
	return bits.OnesCount16(uint16(m))
}

// Pop returns the lowest cell in the set and the set without it.
// The set must not be empty.
func (m MoveSet) Pop() (int, MoveSet) {
	return bits.TrailingZeros16(uint16(m)), m & (m - 1)
}

// Slice lists the cells in ascending order.
func (m MoveSet) Slice() []int {
	cells := make([]int, 0, m.Len())
	for m != 0 {
		var cell int
		cell, m = m.Pop()
		cells = append(cells, cell)
	}
	return cells
}
