package lighting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/seu-repo/aloy-nlp/internal/domain"
)

// Keyword tables for the direct (model-free) extractor. All tables are
// ordered: the first entry with a substring hit wins, and that order is
// observable behavior.

var lampKeywords = []string{
	"luz", "lâmpada", "ilumina", "acend", "acenda", "apaga", "apague",
	"brilho", "lumin", "light", "lamp",
}

// actionTable is checked in fixed priority order. The original "lig"
// fragment was narrowed to liga/ligar: it is a substring of "light" and
// would shadow every other action in English utterances.
var actionTable = []struct {
	action   string
	keywords []string
}{
	{domain.ActionTurnOn, []string{"acend", "acenda", "liga", "ligar", "turn on", "switch on"}},
	{domain.ActionTurnOff, []string{"apaga", "apague", "desliga", "desligar", "desl", "turn off", "switch off"}},
	{domain.ActionSetColor, []string{"cor", "tonalidade", "colorir", "mude", "trocar", "color", "colour"}},
	{domain.ActionSetIntensity, []string{"intensidade", "brilho", "força", "luminosidade", "claro", "escuro", "intensity", "brightness", "dim", "bright"}},
}

var roomTable = []struct {
	room     string
	keywords []string
}{
	{"sala", []string{"sala", "living", "estar"}},
	{"quarto", []string{"quarto", "dormitório", "suite", "bedroom"}},
	{"cozinha", []string{"cozinha", "copa", "kitchen"}},
	{"banheiro", []string{"banheiro", "lavabo", "toalete", "bathroom"}},
	{"escritório", []string{"escritório", "estudo", "home office", "office"}},
	{"corredor", []string{"corredor", "hall", "entrada", "passagem"}},
	{"varanda", []string{"varanda", "sacada", "terraço", "balcony"}},
}

var colorTable = []struct {
	color    string
	keywords []string
}{
	{"branco", []string{"branco", "branca", "clara", "claro", "white"}},
	{"azul", []string{"azul", "azulado", "blue"}},
	{"vermelho", []string{"vermelho", "vermelha", "vermelhado", "red"}},
	{"verde", []string{"verde", "esverdeado", "green"}},
	{"amarelo", []string{"amarelo", "amarelado", "âmbar", "yellow"}},
	{"roxo", []string{"roxo", "violeta", "lilás", "purple"}},
	{"rosa", []string{"rosa", "rosado", "pink"}},
	{"laranja", []string{"laranja", "alaranjado", "orange"}},
}

var intensityWords = []struct {
	value    string
	keywords []string
}{
	{"25", []string{"baixo", "baixa", "pouco", "fraco", "tênue", "mínimo", "mínima", "low", "dim"}},
	{"50", []string{"médio", "média", "moderado", "moderada", "normal", "medium"}},
	{"100", []string{"alto", "alta", "forte", "intenso", "intensa", "máximo", "máxima", "high", "max"}},
}

const (
	// DefaultRoom is assumed when the utterance names no room.
	DefaultRoom = "sala"
	// DefaultColor is assumed for set_color with no color mentioned.
	DefaultColor = "branco"
	// defaultIntensity is assumed for set_intensity with no signal at all.
	defaultIntensity = "75"
)

var percentRe = regexp.MustCompile(`(-?\d+)\s*%?`)

// ExtractDirect resolves a lighting command without consulting the remote
// model. It returns nil when the text carries no lighting keyword; it
// never fails otherwise.
func ExtractDirect(text string) *domain.CommandEnvelope {
	lower := strings.ToLower(text)
	if !containsAny(lower, lampKeywords) {
		return nil
	}

	action := inferAction(lower)
	room := inferRoom(lower)

	env := domain.NewEnvelope(string(domain.CommandLightingControl), "")
	env.Data["action"] = action
	env.Data["room"] = room

	switch action {
	case domain.ActionTurnOn:
		env.Message = fmt.Sprintf("Light in the %s turned on", room)
	case domain.ActionTurnOff:
		env.Message = fmt.Sprintf("Light in the %s turned off", room)
	case domain.ActionSetColor:
		color := inferColor(lower)
		env.Data["color"] = color
		env.Message = fmt.Sprintf("Color of the light in the %s changed to %s", room, color)
	case domain.ActionSetIntensity:
		intensity := inferIntensity(lower)
		env.Data["intensity"] = intensity
		env.Message = fmt.Sprintf("Light intensity in the %s adjusted to %s%%", room, intensity)
	}

	return env
}

// inferAction checks the four keyword classes in fixed priority order.
// With no keyword hit, a bare numeric-percent figure still signals an
// intensity command; anything else defaults to turn_on.
func inferAction(lower string) string {
	for _, entry := range actionTable {
		if containsAny(lower, entry.keywords) {
			return entry.action
		}
	}
	if percentRe.MatchString(lower) {
		return domain.ActionSetIntensity
	}
	return domain.ActionTurnOn
}

func inferRoom(lower string) string {
	for _, entry := range roomTable {
		if containsAny(lower, entry.keywords) {
			return entry.room
		}
	}
	return DefaultRoom
}

func inferColor(lower string) string {
	for _, entry := range colorTable {
		if containsAny(lower, entry.keywords) {
			return entry.color
		}
	}
	return DefaultColor
}

// inferIntensity parses an explicit figure first, clamped to [0,100],
// then falls back to the descriptive-word table, then to the default.
func inferIntensity(lower string) string {
	if m := percentRe.FindStringSubmatch(lower); m != nil {
		value, err := strconv.Atoi(m[1])
		if err == nil {
			if value > 100 {
				value = 100
			}
			if value < 0 {
				value = 0
			}
			return strconv.Itoa(value)
		}
	}

	for _, entry := range intensityWords {
		if containsAny(lower, entry.keywords) {
			return entry.value
		}
	}
	return defaultIntensity
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
