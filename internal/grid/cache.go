package grid

// FieldSet holds the distance fields valid for one tick: the four border
// fields, built eagerly, and ad-hoc single-target fields memoized per target.
// It must be discarded once the occupancy it was built from changes.
type FieldSet struct {
	grid    *Grid
	borders [borderCount]*Field
	adhoc   map[Cell]*Field
	builds  int
}

// NewFieldSet builds the border fields for g. g must not be modified while the
// set is in use.
func NewFieldSet(g *Grid) *FieldSet {
	fs := &FieldSet{grid: g, adhoc: map[Cell]*Field{}}
	for _, b := range Borders {
		fs.borders[b] = BuildBorderField(g, b)
		fs.builds++
	}
	return fs
}

func (fs *FieldSet) Grid() *Grid { return fs.grid }

// Border returns the field for edge b, nil for NoBorder.
func (fs *FieldSet) Border(b Border) *Field {
	if !b.valid() {
		return nil
	}
	return fs.borders[b]
}

// Toward returns the field toward target, building it on first use.
func (fs *FieldSet) Toward(target Cell) (*Field, error) {
	if f, ok := fs.adhoc[target]; ok {
		return f, nil
	}
	f, err := BuildCellField(fs.grid, target)
	if err != nil {
		return nil, err
	}
	fs.adhoc[target] = f
	fs.builds++
	return f, nil
}

// Builds counts breadth-first expansions performed by this set.
func (fs *FieldSet) Builds() int { return fs.builds }
