package scenario

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"lanesim/internal/combat"
)

// Probe is a boolean expression over a snapshot, e.g.
//
//	EnemyHealth < 30 || Count("friendly", "ping") == 0
type Probe struct {
	src     string
	program *vm.Program
}

func CompileProbe(src string) (*Probe, error) {
	prog, err := expr.Compile(src, expr.Env(combat.Snapshot{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Probe{src: src, program: prog}, nil
}

func (p *Probe) String() string { return p.src }

func (p *Probe) Eval(s combat.Snapshot) (bool, error) {
	out, err := vm.Run(p.program, s)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.src, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
