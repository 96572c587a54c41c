package nlp

import (
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/aloy-nlp/internal/domain"
)

func newTestAnnotator() *RuleAnnotator {
	return &RuleAnnotator{log: zap.NewNop()}
}

func tokenByText(tokens []domain.Token, text string) *domain.Token {
	for i := range tokens {
		if tokens[i].Text == text {
			return &tokens[i]
		}
	}
	return nil
}

func TestAnnotate_TokenizesAndLowercases(t *testing.T) {
	a := newTestAnnotator()

	tokens := a.Annotate("Acenda a Luz da Sala?")
	if len(tokens) != 5 {
		t.Fatalf("got %d tokens, want 5: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "acenda" {
		t.Errorf("tokens[0].Text = %q, want acenda", tokens[0].Text)
	}
	if tok := tokenByText(tokens, "sala"); tok == nil {
		t.Error("question mark not stripped from last token")
	}
}

func TestAnnotate_LemmaLookup(t *testing.T) {
	a := newTestAnnotator()

	tokens := a.Annotate("apague a luz")
	tok := tokenByText(tokens, "apague")
	if tok == nil {
		t.Fatal("token apague missing")
	}
	if tok.Lemma != "apagar" {
		t.Errorf("lemma = %q, want apagar", tok.Lemma)
	}
	if tok.POS != domain.POSVerb {
		t.Errorf("pos = %q, want VERB", tok.POS)
	}
}

func TestAnnotate_LemmaSuffixRule(t *testing.T) {
	a := newTestAnnotator()

	tokens := a.Annotate("estou acendendo a luz")
	tok := tokenByText(tokens, "acendendo")
	if tok == nil {
		t.Fatal("token acendendo missing")
	}
	if tok.Lemma != "acender" {
		t.Errorf("lemma = %q, want acender", tok.Lemma)
	}
}

// Homographs of frequent non-verbs must not lemmatize to command verbs:
// "para" is the preposition, "agenda" and "marca" are nouns.
func TestAnnotate_HomographsKeepSurfaceForm(t *testing.T) {
	a := newTestAnnotator()

	tokens := a.Annotate("a previsão para amanhã na minha agenda tem uma marca")
	for _, text := range []string{"para", "agenda", "marca"} {
		tok := tokenByText(tokens, text)
		if tok == nil {
			t.Fatalf("token %s missing", text)
		}
		if tok.Lemma != text {
			t.Errorf("lemma(%q) = %q, want the surface form", text, tok.Lemma)
		}
		if tok.POS == domain.POSVerb {
			t.Errorf("pos(%q) = VERB, want non-verb", text)
		}
	}
}

// Bare "que" is the conjunction, not an interrogative modifier.
func TestAnnotate_BareQueNotInterrogative(t *testing.T) {
	a := newTestAnnotator()

	tokens := a.Annotate("acho que sim")
	tok := tokenByText(tokens, "que")
	if tok == nil {
		t.Fatal("token que missing")
	}
	if tok.Dep == domain.DepAdvMod {
		t.Error("dep(que) = advmod, want unlabeled")
	}
}

func TestAnnotate_InterrogativeAdverb(t *testing.T) {
	a := newTestAnnotator()

	tokens := a.Annotate("quando começa o jogo")
	tok := tokenByText(tokens, "quando")
	if tok == nil {
		t.Fatal("token quando missing")
	}
	if tok.POS != domain.POSAdverb {
		t.Errorf("pos = %q, want ADV", tok.POS)
	}
	if tok.Dep != domain.DepAdvMod {
		t.Errorf("dep = %q, want advmod", tok.Dep)
	}
}

func TestAnnotate_Pronoun(t *testing.T) {
	a := newTestAnnotator()

	tokens := a.Annotate("você pode me ajudar")
	tok := tokenByText(tokens, "você")
	if tok == nil {
		t.Fatal("token você missing")
	}
	if tok.POS != domain.POSPronoun {
		t.Errorf("pos = %q, want PRON", tok.POS)
	}
	if tok.Dep != domain.DepNone {
		t.Errorf("dep = %q, want unlabeled for personal pronoun", tok.Dep)
	}
}

func TestAnnotate_Empty(t *testing.T) {
	a := newTestAnnotator()

	if tokens := a.Annotate(""); len(tokens) != 0 {
		t.Errorf("Annotate(\"\") = %+v, want no tokens", tokens)
	}
}

func TestNew_UnknownBackendFallsBack(t *testing.T) {
	annotator := New("spacy-pt", zap.NewNop())
	if annotator == nil {
		t.Fatal("New returned nil for unknown backend")
	}
	if tokens := annotator.Annotate("acenda a luz"); len(tokens) != 3 {
		t.Errorf("fallback annotator broken: %+v", tokens)
	}
}
