package combat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"lanesim/internal/config"
	"lanesim/internal/grid"
)

// Engine owns a simulation state and advances it one tick at a time. It is
// not safe for concurrent use. After Tick returns an error the state is
// undefined and the engine must be discarded.
type Engine struct {
	state   *State
	catalog *Catalog

	logger    *slog.Logger
	emit      func(Event)
	metrics   *engineMetrics
	testMode  bool
	scoreOnSD bool
	order     [2]Team

	health int
	cores  int
	bits   int

	nextID       int
	now          int
	lastFieldSet *grid.FieldSet
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEmitter receives every event. nil disables events.
func WithEmitter(fn func(Event)) Option {
	return func(e *Engine) { e.emit = fn }
}

// WithTestMode skips the placement rules in AddUnit. Units must still sit
// inside the diamond.
func WithTestMode(on bool) Option {
	return func(e *Engine) { e.testMode = on }
}

// WithSelfDestruct selects whether reaching a self-destruct point costs the
// opponent one health like reaching the edge does.
func WithSelfDestruct(scores bool) Option {
	return func(e *Engine) { e.scoreOnSD = scores }
}

// WithMovementOrder sets which team moves first within a tick.
func WithMovementOrder(first Team) Option {
	return func(e *Engine) { e.order = [2]Team{first, first.Opponent()} }
}

func WithResources(health, cores, bits int) Option {
	return func(e *Engine) {
		e.health, e.cores, e.bits = health, cores, bits
	}
}

func withMetrics(em *engineMetrics) Option {
	return func(e *Engine) { e.metrics = em }
}

// SettingsOptions translates loaded settings into engine options.
func SettingsOptions(s *config.Settings) []Option {
	first := Friendly
	if s.MovementOrder == config.EnemyFirst {
		first = Enemy
	}
	return []Option{
		WithResources(s.InitialHealth, s.InitialCores, s.InitialBits),
		WithSelfDestruct(s.SelfDestruct == config.SelfDestructScore),
		WithMovementOrder(first),
	}
}

func NewEngine(cat *Catalog, opts ...Option) *Engine {
	if cat == nil {
		cat = DefaultCatalog()
	}
	e := &Engine{
		catalog: cat,
		logger:  slog.Default(),
		order:   Teams,
		health:  30,
		cores:   5,
		bits:    6,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		em, err := defaultMetrics()
		if err != nil {
			e.logger.Warn("metrics disabled", "error", err)
			em = noopMetrics()
		}
		e.metrics = em
	}
	e.state = newState(e.health, e.cores, e.bits)
	return e
}

func (e *Engine) State() *State { return e.state }

func (e *Engine) Snapshot() Snapshot { return e.state.Snapshot() }

// FieldSet returns the fields built by the last tick, nil before the first.
func (e *Engine) FieldSet() *grid.FieldSet { return e.lastFieldSet }

func (e *Engine) event(typ string, payload map[string]any) {
	if e.emit == nil {
		return
	}
	e.emit(Event{Tick: e.now, Type: typ, Payload: payload})
}

// AddUnit creates a unit from the catalog and appends it to its team.
func (e *Engine) AddUnit(team Team, kind string, pos grid.Cell) (*Unit, error) {
	tmpl, err := e.catalog.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if !grid.Playable(pos) {
		return nil, fmt.Errorf("%s %s at (%d,%d): %w", team, tmpl.Name, pos.X, pos.Y, ErrOutOfBounds)
	}
	if !e.testMode {
		if err := e.checkPlacement(team, tmpl, pos); err != nil {
			e.logger.Debug("placement rejected", "team", team, "unit", tmpl.Name, "x", pos.X, "y", pos.Y, "error", err)
			return nil, err
		}
	}

	e.nextID++
	u := &Unit{
		ID:        e.nextID,
		Name:      tmpl.Name,
		Kind:      tmpl.Kind,
		Team:      team,
		Pos:       pos,
		Stability: tmpl.Stability,
		Range:     tmpl.Range,
		Damage:    tmpl.Damage,
		Speed:     tmpl.Speed,
		Target:    grid.NoBorder,
	}
	if u.Kind.Mobile() {
		u.Target = grid.TargetFor(team.Side(), pos)
	}
	e.state.Units[team] = append(e.state.Units[team], u)

	p := unitPayload(u)
	p["target"] = u.Target.String()
	e.event(EventSpawn, p)
	return u, nil
}

func (e *Engine) checkPlacement(team Team, tmpl Template, pos grid.Cell) error {
	where := func(reason string) error {
		return fmt.Errorf("%s %s at (%d,%d) %s: %w", team, tmpl.Name, pos.X, pos.Y, reason, ErrPlacement)
	}
	if e.state.structureAt(pos) {
		return where("is held by a structure")
	}
	if tmpl.Kind.Mobile() {
		if !grid.OnEdge(team.Side(), pos) {
			return where("is not on an own edge")
		}
		return nil
	}
	if grid.SideOf(pos) != team.Side() {
		return where("is on the opponent's half")
	}
	return nil
}

// Tick advances the simulation by one step: move both teams against fields
// built from the pre-tick occupancy, resolve attacks on the new positions,
// then drop everything at or below zero stability.
func (e *Engine) Tick() (Snapshot, error) {
	ctx := context.Background()
	e.now = e.state.Tick + 1
	fs := grid.NewFieldSet(e.state.Grid())
	e.lastFieldSet = fs

	for _, team := range e.order {
		if err := e.moveTeam(ctx, team, fs); err != nil {
			return Snapshot{}, fmt.Errorf("tick %d: %w", e.state.Tick+1, err)
		}
	}

	for _, h := range resolveCombat(e.state) {
		e.metrics.recordHit(ctx, h.attacker.Team, h.damage)
		p := unitPayload(h.attacker)
		p["target"] = h.target.ID
		p["damage"] = h.damage
		p["remaining"] = h.target.Stability
		e.event(EventHit, p)
	}

	for _, u := range e.state.prune() {
		e.metrics.recordDestroyed(ctx, u.Team)
		e.event(EventDestroyed, unitPayload(u))
	}

	e.state.Tick++
	e.metrics.recordTick(ctx)
	return e.state.Snapshot(), nil
}

func (e *Engine) moveTeam(ctx context.Context, team Team, fs *grid.FieldSet) error {
	opp := team.Opponent()
	for _, u := range e.state.Units[team] {
		from := u.Pos
		res, err := advance(u, fs)
		if err != nil {
			return err
		}
		switch res {
		case moved:
			p := unitPayload(u)
			p["from_x"], p["from_y"] = from.X, from.Y
			p["dir"] = u.PrevMove.String()
			e.event(EventMove, p)
		case scored:
			e.state.Health[opp]--
			e.metrics.recordScore(ctx, team)
			e.logger.Debug("unit scored", "unit", u.String(), "edge", u.Target, "opponent_health", e.state.Health[opp])
			e.event(EventScore, unitPayload(u))
		case selfDestructed:
			if e.scoreOnSD {
				e.state.Health[opp]--
			}
			e.metrics.recordSelfDestruct(ctx, team)
			e.logger.Debug("unit self-destructed", "unit", u.String(), "scored", e.scoreOnSD)
			p := unitPayload(u)
			p["scored"] = e.scoreOnSD
			e.event(EventSelfDestruct, p)
		}
	}
	return nil
}

// Run advances n ticks and returns one snapshot per completed tick. It stops
// at the first error.
func (e *Engine) Run(n int) ([]Snapshot, error) {
	return e.RunUntil(context.Background(), n, nil)
}

// RunUntil is Run with cancellation, checked between ticks, and an optional
// stop predicate evaluated on each snapshot.
func (e *Engine) RunUntil(ctx context.Context, n int, stop func(Snapshot) (bool, error)) ([]Snapshot, error) {
	out := make([]Snapshot, 0, max(n, 0))
	for range n {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		snap, err := e.Tick()
		if err != nil {
			return out, err
		}
		out = append(out, snap)
		if stop == nil {
			continue
		}
		done, err := stop(snap)
		if err != nil {
			return out, err
		}
		if done {
			break
		}
	}
	return out, nil
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
