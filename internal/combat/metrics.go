package combat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "lanesim/internal/combat"

// engineMetrics are recorded against the global meter provider, a no-op
// unless the process installs one.
type engineMetrics struct {
	ticks         metric.Int64Counter
	scores        metric.Int64Counter
	selfDestructs metric.Int64Counter
	damage        metric.Int64Counter
	unitsLost     metric.Int64Counter
}

func newMetrics(m metric.Meter) (*engineMetrics, error) {
	em := &engineMetrics{}
	var err error
	if em.ticks, err = m.Int64Counter("lanesim.ticks",
		metric.WithDescription("Simulation ticks completed")); err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}
	if em.scores, err = m.Int64Counter("lanesim.scores",
		metric.WithDescription("Mobile units that reached their target edge")); err != nil {
		return nil, fmt.Errorf("creating scores counter: %w", err)
	}
	if em.selfDestructs, err = m.Int64Counter("lanesim.self_destructs",
		metric.WithDescription("Mobile units removed at a self-destruct point")); err != nil {
		return nil, fmt.Errorf("creating self-destruct counter: %w", err)
	}
	if em.damage, err = m.Int64Counter("lanesim.damage",
		metric.WithDescription("Stability removed by attacks"),
		metric.WithUnit("{stability}")); err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}
	if em.unitsLost, err = m.Int64Counter("lanesim.units.destroyed",
		metric.WithDescription("Units pruned after a tick")); err != nil {
		return nil, fmt.Errorf("creating destroyed counter: %w", err)
	}
	return em, nil
}

func defaultMetrics() (*engineMetrics, error) {
	return newMetrics(otel.Meter(instrumentationName))
}

func noopMetrics() *engineMetrics {
	em, _ := newMetrics(noop.Meter{})
	return em
}

func teamAttr(t Team) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("team", t.String()))
}

func (em *engineMetrics) recordTick(ctx context.Context) {
	em.ticks.Add(ctx, 1)
}

func (em *engineMetrics) recordScore(ctx context.Context, t Team) {
	em.scores.Add(ctx, 1, teamAttr(t))
}

func (em *engineMetrics) recordSelfDestruct(ctx context.Context, t Team) {
	em.selfDestructs.Add(ctx, 1, teamAttr(t))
}

func (em *engineMetrics) recordHit(ctx context.Context, t Team, dmg int) {
	em.damage.Add(ctx, int64(dmg), teamAttr(t))
}

func (em *engineMetrics) recordDestroyed(ctx context.Context, t Team) {
	em.unitsLost.Add(ctx, 1, teamAttr(t))
}
