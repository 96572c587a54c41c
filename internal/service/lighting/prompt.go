package lighting

import "fmt"

// Prompt builds the dedicated extraction prompt for the lighting family.
// The remote model is instructed to answer with the canonical envelope
// shape and the same defaults the validator enforces.
func Prompt(userText string) string {
	return fmt.Sprintf(`
From the text below, identify the `+"`lighting-control`"+` command.
Return a JSON object with the following fields:

{
  "type": "lighting-control",
  "message": "friendly confirmation message for the user",
  "data": {
    "action": "turn_on|turn_off|set_color|set_intensity",
    "room": "quarto|sala|cozinha|banheiro|escritório|...",
    "color": "branco|azul|vermelho|verde|amarelo|roxo|...",
    "intensity": "0-100"
  }
}

For the "action" field:
- "turn_on" → when the user wants to turn the light on
- "turn_off" → when the user wants to turn the light off
- "set_color" → when the user wants to change the light color
- "set_intensity" → when the user wants to change the light intensity/brightness

If no room is mentioned, use "sala" as the default.
If the action is "set_color" but no color is given, use "branco" as the default.
If the action is "set_intensity" but no intensity is given, use "100" as the default.

Text: "%s"
Answer:
`, userText)
}
