package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanesim/internal/grid"
)

func unitAt(team Team, kind Kind, x, y, stability int) *Unit {
	return &Unit{Team: team, Kind: kind, Pos: grid.Cell{X: x, Y: y}, Stability: stability}
}

func pick(a *Unit, foes ...*Unit) *Unit {
	return selectTarget(a, foes, func(j int) int { return a.Pos.L1(foes[j].Pos) })
}

func TestSelectTarget_Tiers(t *testing.T) {
	turret := func(team Team, x, y int) *Unit {
		u := unitAt(team, Turret, x, y, 75)
		u.Range, u.Damage = 6, 4
		return u
	}

	tests := []struct {
		name     string
		attacker *Unit
		foes     []*Unit
		want     int // index into foes, -1 for none
	}{
		{
			name:     "mobile beats structure even when farther",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Wall, 14, 11, 60), unitAt(Enemy, Scout, 14, 13, 15)},
			want:     1,
		},
		{
			name:     "structure never displaces mobile",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 14, 13, 15), unitAt(Enemy, Wall, 14, 11, 60)},
			want:     0,
		},
		{
			name:     "nearer wins",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 14, 13, 1), unitAt(Enemy, Scout, 14, 12, 15)},
			want:     1,
		},
		{
			name:     "lower stability wins",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 14, 12, 15), unitAt(Enemy, Scout, 15, 11, 5)},
			want:     1,
		},
		{
			name:     "friendly attacker prefers the target nearer its own side",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 14, 12, 15), unitAt(Enemy, Scout, 12, 10, 15)},
			want:     1,
		},
		{
			name:     "enemy attacker prefers the target nearer its own side",
			attacker: turret(Enemy, 14, 10),
			foes:     []*Unit{unitAt(Friendly, Scout, 12, 10, 15), unitAt(Friendly, Scout, 14, 12, 15)},
			want:     1,
		},
		{
			name:     "closer to a lateral edge wins",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 16, 10, 15), unitAt(Enemy, Scout, 12, 10, 15)},
			want:     1,
		},
		{
			name:     "full tie keeps the first found",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 14, 12, 15), unitAt(Enemy, Scout, 14, 12, 15)},
			want:     0,
		},
		{
			name:     "range is exclusive",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 14, 16, 15)},
			want:     -1,
		},
		{
			name:     "dead candidates are skipped",
			attacker: turret(Friendly, 14, 10),
			foes:     []*Unit{unitAt(Enemy, Scout, 14, 11, 0), unitAt(Enemy, Wall, 14, 13, 60)},
			want:     1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pick(tc.attacker, tc.foes...)
			if tc.want < 0 {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, tc.foes[tc.want], got)
		})
	}
}

func TestSelectTarget_InterceptorIgnoresStructures(t *testing.T) {
	a := unitAt(Friendly, Interceptor, 14, 10, 40)
	a.Range, a.Damage = 4, 10

	assert.Nil(t, pick(a, unitAt(Enemy, Turret, 14, 11, 75)))

	scout := unitAt(Enemy, Scout, 14, 13, 15)
	assert.Same(t, scout, pick(a, unitAt(Enemy, Wall, 14, 11, 60), scout))
}

func TestSelectTarget_ZeroDamageNeverFires(t *testing.T) {
	support := unitAt(Friendly, Support, 14, 10, 30)
	support.Range = 3
	assert.Nil(t, pick(support, unitAt(Enemy, Scout, 14, 11, 15)))
}

func TestResolveCombat_DamageSums(t *testing.T) {
	s := newState(30, 5, 6)
	t1 := unitAt(Friendly, Turret, 13, 10, 75)
	t2 := unitAt(Friendly, Turret, 15, 10, 75)
	for _, u := range []*Unit{t1, t2} {
		u.Range, u.Damage = 3, 4
	}
	scout := unitAt(Enemy, Scout, 14, 10, 15)
	scout.Range, scout.Damage = 3, 1
	s.Units[Friendly] = []*Unit{t1, t2}
	s.Units[Enemy] = []*Unit{scout}

	hits := resolveCombat(s)
	require.Len(t, hits, 3)
	assert.Equal(t, 15-4-4, scout.Stability)
	assert.Equal(t, 74, t1.Stability) // lateral key 12 vs 13
	assert.Equal(t, 75, t2.Stability)
}

func TestResolveCombat_SelectsBeforeDamage(t *testing.T) {
	s := newState(30, 5, 6)
	t1 := unitAt(Friendly, Turret, 14, 9, 75)
	t2 := unitAt(Friendly, Turret, 14, 8, 75)
	for _, u := range []*Unit{t1, t2} {
		u.Range, u.Damage = 4, 4
	}
	weak := unitAt(Enemy, Scout, 14, 10, 3)
	weak.Range, weak.Damage = 3, 1
	other := unitAt(Enemy, Scout, 14, 11, 15)
	s.Units[Friendly] = []*Unit{t1, t2}
	s.Units[Enemy] = []*Unit{weak, other}

	hits := resolveCombat(s)
	require.Len(t, hits, 3)

	// t1 already drives the weak scout below zero, but t2 picked before any
	// damage landed and hits it too.
	assert.Same(t, weak, hits[0].target)
	assert.Same(t, weak, hits[1].target)
	assert.Equal(t, 3-8, weak.Stability)
	assert.Equal(t, 15, other.Stability)
	// The finished scout still fires.
	assert.Same(t, t1, hits[2].target)
	assert.Equal(t, 74, t1.Stability)
}

func TestResolveCombat_OverkillOnWeakestTarget(t *testing.T) {
	s := newState(30, 5, 6)
	a := unitAt(Friendly, Interceptor, 14, 10, 40)
	b := unitAt(Friendly, Interceptor, 14, 9, 40)
	for _, u := range []*Unit{a, b} {
		u.Range, u.Damage = 4, 10
	}
	// Each attacker sees both targets at the same distance: 2 for a, 3 for b.
	emp := unitAt(Enemy, Demolisher, 13, 11, 5)
	ping := unitAt(Enemy, Scout, 15, 11, 15)
	s.Units[Friendly] = []*Unit{a, b}
	s.Units[Enemy] = []*Unit{emp, ping}

	resolveCombat(s)

	assert.Equal(t, 5-20, emp.Stability)
	assert.Equal(t, 15, ping.Stability)
}
