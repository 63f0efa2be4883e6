package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"lanesim/internal/combat"
	"lanesim/internal/config"
	"lanesim/internal/grid"
)

// Scenario is an initial layout plus what should be observed while it runs.
//
// Positions are zero-based board coordinates in [0, 27]. With MirrorEnemy,
// enemy positions are given as seen from the enemy's seat and are rotated
// onto the board. Expectation positions are never mirrored.
type Scenario struct {
	Name        string        `yaml:"name"`
	Ticks       int           `yaml:"ticks"`
	TestMode    bool          `yaml:"test_mode"`
	MirrorEnemy bool          `yaml:"mirror_enemy"`
	Units       []Placement   `yaml:"units"`
	StopWhen    string        `yaml:"stop_when"`
	Expect      []Expectation `yaml:"expect"`
}

type Placement struct {
	Team string `yaml:"team"`
	Kind string `yaml:"kind"`
	Pos  [2]int `yaml:"pos"`
}

// Expectation is checked against the snapshot taken after Tick. Either Check
// is an expression, or Team/Kind/Pos describe units that must (or, with
// Absent, must not) be on that cell.
type Expectation struct {
	Tick   int     `yaml:"tick"`
	Team   string  `yaml:"team"`
	Kind   string  `yaml:"kind"`
	Pos    *[2]int `yaml:"pos"`
	Count  int     `yaml:"count"`
	Absent bool    `yaml:"absent"`
	Check  string  `yaml:"check"`
}

// Report is the outcome of one scenario run.
type Report struct {
	Scenario  string            `json:"scenario"`
	Ticks     int               `json:"ticks"`
	Snapshots []combat.Snapshot `json:"snapshots"`
	Events    []combat.Event    `json:"events,omitempty"`
	Failures  []string          `json:"failures,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func (r *Report) Passed() bool { return len(r.Failures) == 0 && r.Error == "" }

func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

func Parse(b []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	var errs []error
	if sc.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must be >= 0, got %d", sc.Ticks))
	}
	for i, p := range sc.Units {
		if _, err := combat.ParseTeam(p.Team); err != nil {
			errs = append(errs, fmt.Errorf("units[%d]: %w", i, err))
		}
	}
	for i, x := range sc.Expect {
		if x.Tick < 1 {
			errs = append(errs, fmt.Errorf("expect[%d]: tick must be >= 1", i))
		}
		if x.Check == "" && (x.Kind == "" || x.Pos == nil) {
			errs = append(errs, fmt.Errorf("expect[%d]: needs check or kind and pos", i))
		}
		if x.Check == "" {
			if _, err := combat.ParseTeam(x.Team); err != nil {
				errs = append(errs, fmt.Errorf("expect[%d]: %w", i, err))
			}
		}
	}
	return errors.Join(errs...)
}

// boardCell converts a scenario coordinate to a board cell.
func boardCell(pos [2]int, team combat.Team, mirror bool) grid.Cell {
	if team == combat.Enemy && mirror {
		return grid.Cell{X: grid.MaxCoord - pos[0], Y: grid.MaxCoord - pos[1]}
	}
	return grid.Cell{X: pos[0] + 1, Y: pos[1] + 1}
}

// horizon is the number of ticks to run: explicit, else the last expectation,
// else the settings default.
func (sc *Scenario) horizon(s *config.Settings) int {
	if sc.Ticks > 0 {
		return sc.Ticks
	}
	last := 0
	for _, x := range sc.Expect {
		last = max(last, x.Tick)
	}
	if last > 0 {
		return last
	}
	return s.Ticks
}

// Run builds an engine for sc, plays it and checks its expectations. An engine
// error ends the run; the report then carries the snapshots taken before it.
func Run(ctx context.Context, sc *Scenario, cat *combat.Catalog, s *config.Settings, record bool, opts ...combat.Option) (*Report, error) {
	if s == nil {
		s = config.DefaultSettings()
	}
	checks, err := compileChecks(sc)
	if err != nil {
		return nil, err
	}
	var stop *Probe
	if strings.TrimSpace(sc.StopWhen) != "" {
		if stop, err = CompileProbe(sc.StopWhen); err != nil {
			return nil, fmt.Errorf("stop_when: %w", err)
		}
	}

	rep := &Report{Scenario: sc.Name}
	engineOpts := append(combat.SettingsOptions(s), combat.WithTestMode(sc.TestMode))
	if record {
		engineOpts = append(engineOpts, combat.WithEmitter(func(ev combat.Event) {
			rep.Events = append(rep.Events, ev)
		}))
	}
	eng := combat.NewEngine(cat, append(engineOpts, opts...)...)

	for i, p := range sc.Units {
		team, _ := combat.ParseTeam(p.Team)
		if _, err := eng.AddUnit(team, p.Kind, boardCell(p.Pos, team, sc.MirrorEnemy)); err != nil {
			return nil, fmt.Errorf("units[%d]: %w", i, err)
		}
	}

	var until func(combat.Snapshot) (bool, error)
	if stop != nil {
		until = stop.Eval
	}
	snaps, runErr := eng.RunUntil(ctx, sc.horizon(s), until)
	rep.Snapshots = snaps
	rep.Ticks = len(snaps)
	if runErr != nil {
		rep.Error = runErr.Error()
	}
	rep.Failures = checkAll(sc, checks, snaps)
	return rep, runErr
}

func compileChecks(sc *Scenario) (map[int]*Probe, error) {
	out := map[int]*Probe{}
	for i, x := range sc.Expect {
		if x.Check == "" {
			continue
		}
		p, err := CompileProbe(x.Check)
		if err != nil {
			return nil, fmt.Errorf("expect[%d]: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func checkAll(sc *Scenario, checks map[int]*Probe, snaps []combat.Snapshot) []string {
	var failures []string
	for i, x := range sc.Expect {
		if x.Tick > len(snaps) {
			failures = append(failures, fmt.Sprintf("expect[%d]: tick %d not reached (ran %d)", i, x.Tick, len(snaps)))
			continue
		}
		if msg := check(x, checks[i], snaps[x.Tick-1]); msg != "" {
			failures = append(failures, fmt.Sprintf("expect[%d] tick %d: %s", i, x.Tick, msg))
		}
	}
	return failures
}

func check(x Expectation, p *Probe, snap combat.Snapshot) string {
	if p != nil {
		ok, err := p.Eval(snap)
		switch {
		case err != nil:
			return err.Error()
		case !ok:
			return fmt.Sprintf("%s is false", p)
		}
		return ""
	}

	cell := grid.Cell{X: x.Pos[0] + 1, Y: x.Pos[1] + 1}
	found := snap.CountAt(x.Team, x.Kind, cell.X, cell.Y)
	want := max(x.Count, 1)
	switch {
	case x.Absent && found > 0:
		return fmt.Sprintf("found %d %s %s at (%d,%d), want none", found, x.Team, x.Kind, x.Pos[0], x.Pos[1])
	case !x.Absent && found < want:
		return fmt.Sprintf("found %d %s %s at (%d,%d), want %d; on board: %s",
			found, x.Team, x.Kind, x.Pos[0], x.Pos[1], want, describe(snap))
	}
	return ""
}

// describe lists the units of a snapshot in scenario coordinates.
func describe(snap combat.Snapshot) string {
	var parts []string
	for _, team := range []string{"friendly", "enemy"} {
		for _, r := range snap.Units(team) {
			parts = append(parts, fmt.Sprintf("%s %s (%d,%d)", team, r.Name, r.Pos.X-1, r.Pos.Y-1))
		}
	}
	slices.Sort(parts)
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}
