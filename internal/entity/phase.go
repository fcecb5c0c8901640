package entity

import (
	"encoding/json"
	"fmt"
)

type Phase int

const (
	PhasePlacing Phase = iota
	PhaseSliding
	PhaseFlying
)

func (that Phase) String() string {
	switch that {
	case PhasePlacing:
		return "placing"
	case PhaseSliding:
		return "sliding"
	case PhaseFlying:
		return "flying"
	default:
		return fmt.Sprintf("phase(%d)", int(that))
	}
}

func (that Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Phase) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("failed to unmarshal phase: %w", err)
	}

	switch name {
	case "placing":
		*that = PhasePlacing
	case "sliding":
		*that = PhaseSliding
	case "flying":
		*that = PhaseFlying
	default:
		return fmt.Errorf("unknown phase %q", name)
	}

	return nil
}
