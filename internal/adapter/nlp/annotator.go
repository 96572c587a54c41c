package nlp

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/seu-repo/aloy-nlp/internal/domain"
	"github.com/seu-repo/aloy-nlp/internal/ports"
)

// BackendRulesPT is the default annotator backend: deterministic
// lexicon/suffix rules for Brazilian Portuguese.
const BackendRulesPT = "rules-pt"

// RuleAnnotator annotates tokens with lemma, POS and dependency label
// using lookup tables and suffix heuristics. It carries no state between
// calls and is safe for concurrent use.
type RuleAnnotator struct {
	log *zap.Logger
}

// New returns the annotator backend selected by name. An unknown backend
// name falls back to the rules-pt default and is logged.
func New(backend string, log *zap.Logger) ports.Annotator {
	if backend != BackendRulesPT {
		log.Warn("Unknown annotator backend, using default",
			zap.String("requested", backend),
			zap.String("default", BackendRulesPT),
		)
	}
	log.Info("Linguistic annotator initialized", zap.String("backend", BackendRulesPT))
	return &RuleAnnotator{log: log}
}

// Annotate lowercases and tokenizes the text, then tags each token.
func (a *RuleAnnotator) Annotate(text string) []domain.Token {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '-')
	})

	tokens := make([]domain.Token, 0, len(fields))
	for _, word := range fields {
		tokens = append(tokens, domain.Token{
			Text:  word,
			Lemma: lemma(word),
			POS:   partOfSpeech(word),
			Dep:   dependency(word),
		})
	}
	return tokens
}

// lemma resolves a token to its dictionary form: table lookup first, then
// suffix stripping for regular verb inflections, identity otherwise.
func lemma(word string) string {
	if l, ok := verbLemmas[word]; ok {
		return l
	}

	// Gerúndio regular: -ando/-endo/-indo → -ar/-er/-ir
	switch {
	case strings.HasSuffix(word, "ando") && len(word) > 4:
		return strings.TrimSuffix(word, "ando") + "ar"
	case strings.HasSuffix(word, "endo") && len(word) > 4:
		return strings.TrimSuffix(word, "endo") + "er"
	case strings.HasSuffix(word, "indo") && len(word) > 4:
		return strings.TrimSuffix(word, "indo") + "ir"
	}

	return word
}

func partOfSpeech(word string) string {
	switch {
	case pronouns[word]:
		return domain.POSPronoun
	case adverbs[word]:
		return domain.POSAdverb
	case isVerb(word):
		return domain.POSVerb
	default:
		return domain.POSNoun
	}
}

func isVerb(word string) bool {
	if _, ok := verbLemmas[word]; ok {
		return true
	}
	l := lemma(word)
	return l != word && (strings.HasSuffix(l, "ar") || strings.HasSuffix(l, "er") || strings.HasSuffix(l, "ir"))
}

// dependency labels interrogatives as adverbial modifiers; everything
// else is left unlabeled, which is all the classifier heuristics need.
func dependency(word string) string {
	if interrogatives[word] {
		return domain.DepAdvMod
	}
	return domain.DepNone
}
