package combat

import "lanesim/internal/grid"

type verdict int8

const (
	reject verdict = iota - 1
	indifferent
	prefer
)

// candidate is a potential target seen from one attacker.
type candidate struct {
	unit *Unit
	dist int
}

// A discriminator compares a challenger against the current best target.
type discriminator func(attacker *Unit, challenger, best candidate) verdict

// targetRules are applied in order; the first non-indifferent verdict wins.
var targetRules = []discriminator{
	byClass,
	byDistance,
	byStability,
	byDepth,
	byLateral,
}

func byClass(_ *Unit, c, b candidate) verdict {
	switch {
	case c.unit.Kind.Mobile() && b.unit.Kind.Structure():
		return prefer
	case c.unit.Kind.Structure() && b.unit.Kind.Mobile():
		return reject
	}
	return indifferent
}

func byDistance(_ *Unit, c, b candidate) verdict {
	return lower(c.dist, b.dist)
}

func byStability(_ *Unit, c, b candidate) verdict {
	return lower(c.unit.Stability, b.unit.Stability)
}

// byDepth prefers the target deeper in the attacker's own half.
func byDepth(a *Unit, c, b candidate) verdict {
	if a.Team == Enemy {
		return lower(b.unit.Pos.Y, c.unit.Pos.Y)
	}
	return lower(c.unit.Pos.Y, b.unit.Pos.Y)
}

func byLateral(_ *Unit, c, b candidate) verdict {
	return lower(grid.LateralDistance(c.unit.Pos), grid.LateralDistance(b.unit.Pos))
}

func lower(c, b int) verdict {
	switch {
	case c < b:
		return prefer
	case c > b:
		return reject
	}
	return indifferent
}

// eligible is the hard filter applied before any ranking.
func eligible(a, t *Unit) bool {
	if !t.Alive() {
		return false
	}
	return !(a.Kind == Interceptor && t.Kind.Structure())
}

// beats reports whether challenger should replace best as a's target.
func beats(a *Unit, challenger, best candidate) bool {
	for _, rule := range targetRules {
		if v := rule(a, challenger, best); v != indifferent {
			return v == prefer
		}
	}
	return false
}

// selectTarget scans foes in order and returns the preferred one within range.
// dist(j) is the precomputed distance from a to foes[j].
func selectTarget(a *Unit, foes []*Unit, dist func(j int) int) *Unit {
	if a.Damage <= 0 {
		return nil
	}
	var best candidate
	for j, t := range foes {
		d := dist(j)
		if d >= a.Range || !eligible(a, t) {
			continue
		}
		c := candidate{unit: t, dist: d}
		if best.unit == nil || beats(a, c, best) {
			best = c
		}
	}
	return best.unit
}

// distanceMatrix holds L1 distances, friendly index major.
type distanceMatrix struct {
	cols int
	d    []int
}

func newDistanceMatrix(friendly, enemy []*Unit) distanceMatrix {
	m := distanceMatrix{cols: len(enemy), d: make([]int, len(friendly)*len(enemy))}
	for i, f := range friendly {
		for j, e := range enemy {
			m.d[i*m.cols+j] = f.Pos.L1(e.Pos)
		}
	}
	return m
}

func (m distanceMatrix) at(i, j int) int { return m.d[i*m.cols+j] }

// hit is one resolved attack.
type hit struct {
	attacker, target *Unit
	damage           int
}

// resolveCombat lets every unit pick at most one target, then applies the
// damage. Every selection sees the stabilities left by the move phase, so
// several attackers may pile onto the same target and a unit finished off
// this tick still fires.
func resolveCombat(s *State) []hit {
	friendly, enemy := s.Units[Friendly], s.Units[Enemy]
	m := newDistanceMatrix(friendly, enemy)
	var hits []hit
	for i, a := range friendly {
		if t := selectTarget(a, enemy, func(j int) int { return m.at(i, j) }); t != nil {
			hits = append(hits, hit{attacker: a, target: t, damage: a.Damage})
		}
	}
	for j, a := range enemy {
		if t := selectTarget(a, friendly, func(i int) int { return m.at(i, j) }); t != nil {
			hits = append(hits, hit{attacker: a, target: t, damage: a.Damage})
		}
	}
	for _, h := range hits {
		h.target.Stability -= h.damage
	}
	return hits
}
