package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lanesim/internal/config"
	"lanesim/internal/grid"
	"lanesim/internal/logging"
)

// catalogWithSpeed returns the default catalog with every mobile speed replaced.
func catalogWithSpeed(t *testing.T, speed int) *Catalog {
	t.Helper()
	uc, err := config.DefaultCatalog()
	require.NoError(t, err)
	for i := range uc.Units {
		if uc.Units[i].ID <= config.MaxMobileID {
			uc.Units[i].Speed = speed
		}
	}
	c, err := NewCatalog(uc)
	require.NoError(t, err)
	return c
}

func newTestEngine(cat *Catalog, opts ...Option) *Engine {
	base := []Option{WithLogger(logging.Discard()), withMetrics(noopMetrics())}
	return NewEngine(cat, append(base, opts...)...)
}

func mustAdd(t *testing.T, e *Engine, team Team, kind string, x, y int) *Unit {
	t.Helper()
	u, err := e.AddUnit(team, kind, grid.Cell{X: x, Y: y})
	require.NoError(t, err)
	return u
}

func find(units []UnitRecord, id int) (UnitRecord, bool) {
	for _, r := range units {
		if r.ID == id {
			return r, true
		}
	}
	return UnitRecord{}, false
}
