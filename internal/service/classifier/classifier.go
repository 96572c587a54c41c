package classifier

import (
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/aloy-nlp/internal/domain"
	"github.com/seu-repo/aloy-nlp/internal/ports"
)

// Canned replies for the non-command branches.
const (
	searchResponse       = "I will search that for you."
	greetingResponse     = "Hello! How can I help?"
	conversationResponse = "Understood. Please continue."
)

// commandKeywords is matched both as a case-insensitive substring of the
// utterance and against token lemmas. Portuguese entries come first,
// English coverage after.
var commandKeywords = []string{
	"acordar", "ligar", "desligar", "abrir", "fechar", "tocar", "parar",
	"lembrar", "agendar", "definir", "marcar", "configurar", "ajustar",
	"criar", "deletar", "excluir", "remover", "mudar", "alterar", "modificar",
	"acender", "acenda", "apagar", "apague", "luz", "lâmpada", "brilho", "cor",
	// "set " keeps its trailing space so "settings", "sunset" and "reset"
	// do not match; the cost is missing a bare "set" at the end of the
	// utterance.
	"turn on", "turn off", "switch on", "switch off", "open", "close",
	"play", "remind", "schedule", "set ", "adjust", "create", "delete",
	"remove", "change", "light", "lamp", "brightness", "color",
}

var searchKeywords = []string{
	"pesquisar", "buscar", "procurar", "encontrar", "localizar",
	"o que é", "quem é", "onde", "quando", "como", "por que", "qual",
	"quanto", "quais", "me fale sobre", "me diga sobre", "explique",
	"me explique", "me mostre", "me informe", "saiba", "saber",
	"search", "find", "look up", "what is", "who is", "where", "when",
	"how", "why", "which", "tell me about", "explain", "show me",
}

var greetingKeywords = []string{
	"olá", "oi", "e aí", "opa", "bom dia", "boa tarde", "boa noite",
	"tudo bem", "como vai", "como está", "prazer", "tchau", "até logo",
	"até mais", "adeus",
	// "hi " with a trailing space avoids "this", "high" and the like; a
	// final bare "hi" slips through to the conversation default instead.
	"hello", "hi ", "good morning", "good evening", "good night",
	"bye", "goodbye", "see you",
}

// commandTypes is the ordered command-family lookup: the first family
// with a keyword hit wins.
var commandTypes = []struct {
	commandType domain.CommandType
	keywords    []string
}{
	{domain.CommandLightingControl, []string{
		"luz", "lâmpada", "acenda", "apague", "ilumin", "light", "lamp",
	}},
	{domain.CommandAlarmSetting, []string{
		"alarme", "lembre", "temporizador", "agendar",
		"alarm", "remind", "timer", "schedule",
	}},
}

// Service buckets utterances into command/search/conversation and maps
// commands to their family. Decision order is a design invariant: the
// command branch is always checked first.
type Service struct {
	annotator ports.Annotator
	log       *zap.Logger
}

func NewService(annotator ports.Annotator, log *zap.Logger) *Service {
	return &Service{
		annotator: annotator,
		log:       log,
	}
}

// Classify resolves every input to exactly one branch; the empty string
// falls through to the conversation default.
func (s *Service) Classify(text string) domain.Classification {
	lower := strings.ToLower(text)
	tokens := s.annotator.Annotate(text)

	// 1. Comando: palavra-chave no texto ou lema de comando
	if containsAny(lower, commandKeywords) || lemmaMatch(tokens, commandKeywords) {
		return domain.Classification{Intent: domain.IntentCommand}
	}

	// 2. Pesquisa: pergunta, palavra-chave de busca ou advérbio interrogativo
	if strings.HasSuffix(strings.TrimSpace(lower), "?") ||
		containsAny(lower, searchKeywords) ||
		hasInterrogativeModifier(tokens) {
		return domain.Classification{
			Intent:   domain.IntentSearch,
			Response: searchResponse,
		}
	}

	// 3. Saudação
	if containsAny(lower, greetingKeywords) {
		return domain.Classification{
			Intent:   domain.IntentConversation,
			Response: greetingResponse,
		}
	}

	// 4. Qualquer outra coisa é conversa
	return domain.Classification{
		Intent:   domain.IntentConversation,
		Response: conversationResponse,
	}
}

// DetectCommandType maps a command utterance to its family by pure
// keyword-substring matching. No side effects, no failure mode.
func (s *Service) DetectCommandType(text string) domain.CommandType {
	lower := strings.ToLower(text)
	for _, family := range commandTypes {
		if containsAny(lower, family.keywords) {
			return family.commandType
		}
	}
	return domain.CommandUnknown
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func lemmaMatch(tokens []domain.Token, keywords []string) bool {
	for _, t := range tokens {
		for _, k := range keywords {
			if t.Lemma == k {
				return true
			}
		}
	}
	return false
}

func hasInterrogativeModifier(tokens []domain.Token) bool {
	for _, t := range tokens {
		if (t.POS == domain.POSPronoun || t.POS == domain.POSAdverb) && t.Dep == domain.DepAdvMod {
			return true
		}
	}
	return false
}
