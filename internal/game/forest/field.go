package forest

// State is the occupancy of one field cell.
type State uint8

// Cell states.
const (
	StateEmpty State = iota
	StateBlocked
	StateTree
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBlocked:
		return "blocked"
	case StateTree:
		return "tree"
	}
	return "unknown"
}

// Cell is one square of the life field. A placeholder is held exactly when
// the state is StateTree.
type Cell struct {
	State  State
	Height float32

	placeholder Placeholder
}

// field is a row-major grid of cells, z major.
type field []Cell

// liveNeighbours counts trees in the Moore neighbourhood of interior cell
// (x, z).
func (f field) liveNeighbours(x, z, width int) int {
	n := 0
	for dz := -1; dz <= 1; dz++ {
		row := (z + dz) * width
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if f[row+x+dx].State == StateTree {
				n++
			}
		}
	}
	return n
}

// survives reports whether a tree with n live neighbours stays alive.
func survives(n int) bool { return n == 3 || n == 4 }

// born reports whether an empty cell with n live neighbours grows a tree.
func born(n int) bool { return n == 3 || n == 4 }
