package combat

const (
	EventSpawn        = "Spawn"
	EventMove         = "Move"
	EventScore        = "Score"
	EventSelfDestruct = "SelfDestruct"
	EventHit          = "Hit"
	EventDestroyed    = "Destroyed"
)

type Event struct {
	Tick    int            `json:"tick"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

func unitPayload(u *Unit) map[string]any {
	return map[string]any{
		"id":   u.ID,
		"unit": u.Name,
		"team": u.Team.String(),
		"x":    u.Pos.X,
		"y":    u.Pos.Y,
	}
}
