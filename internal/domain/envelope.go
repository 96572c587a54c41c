package domain

// CommandType identifies the command family of an utterance classified
// as a command.
type CommandType string

const (
	CommandLightingControl CommandType = "lighting-control"
	CommandAlarmSetting    CommandType = "alarm-setting"
	CommandUnknown         CommandType = "unknown"
)

// Lighting actions accepted by the lighting-control family.
const (
	ActionTurnOn       = "turn_on"
	ActionTurnOff      = "turn_off"
	ActionSetColor     = "set_color"
	ActionSetIntensity = "set_intensity"
)

// CommandEnvelope is the canonical response shape returned to the caller:
// type is always non-empty, data is always present (possibly empty) and
// message always carries a human-readable confirmation.
type CommandEnvelope struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

// NewEnvelope builds an envelope with an allocated data map.
func NewEnvelope(envType, message string) *CommandEnvelope {
	return &CommandEnvelope{
		Type:    envType,
		Message: message,
		Data:    map[string]string{},
	}
}

// ModelResult is the envelope-or-text union returned by the remote model
// client: structured calls fill Envelope, unstructured calls fill Text.
type ModelResult struct {
	Envelope *CommandEnvelope
	Text     string
}
