package lighting

import (
	"fmt"

	"github.com/seu-repo/aloy-nlp/internal/domain"
)

// DefaultValidatedIntensity fills a set_intensity envelope that arrives
// without a figure.
const DefaultValidatedIntensity = "100"

var validActions = []string{
	domain.ActionTurnOn,
	domain.ActionTurnOff,
	domain.ActionSetColor,
	domain.ActionSetIntensity,
}

// Validate checks a model-produced envelope against the lighting-control
// contract and returns a normalized copy. It fails when the type, data
// block or action is missing or invalid; normalization itself never
// fails: absent room/color/intensity/message fields get their defaults.
func Validate(env *domain.CommandEnvelope) (*domain.CommandEnvelope, error) {
	if env == nil || env.Type != string(domain.CommandLightingControl) {
		return nil, fmt.Errorf("lighting-control: invalid or missing command type")
	}
	if env.Data == nil {
		return nil, fmt.Errorf("lighting-control: missing data block")
	}

	action, ok := env.Data["action"]
	if !ok || action == "" {
		return nil, fmt.Errorf("lighting-control: required field 'action' missing")
	}
	if !isValidAction(action) {
		return nil, fmt.Errorf("lighting-control: action %q invalid, must be one of %v", action, validActions)
	}

	out := &domain.CommandEnvelope{
		Type:    env.Type,
		Message: env.Message,
		Data:    make(map[string]string, len(env.Data)),
	}
	for k, v := range env.Data {
		out.Data[k] = v
	}

	if out.Data["room"] == "" {
		out.Data["room"] = DefaultRoom
	}
	if action == domain.ActionSetColor && out.Data["color"] == "" {
		out.Data["color"] = DefaultColor
	}
	if action == domain.ActionSetIntensity && out.Data["intensity"] == "" {
		out.Data["intensity"] = DefaultValidatedIntensity
	}
	if out.Message == "" {
		out.Message = fmt.Sprintf("Light control set to %s in the %s", action, out.Data["room"])
	}

	return out, nil
}

func isValidAction(action string) bool {
	for _, a := range validActions {
		if action == a {
			return true
		}
	}
	return false
}
