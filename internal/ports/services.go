package ports

import (
	"context"

	"github.com/seu-repo/aloy-nlp/internal/domain"
)

// Annotator is the pluggable linguistic capability: given raw text it
// produces tokens annotated with lemma, part-of-speech and dependency
// label. Any compliant backend is substitutable without touching the
// classifier's decision logic.
type Annotator interface {
	Annotate(text string) []domain.Token
}

// Classifier buckets an utterance into command/search/conversation and,
// for commands, resolves the concrete command family.
type Classifier interface {
	Classify(text string) domain.Classification
	DetectCommandType(text string) domain.CommandType
}

// ModelClient talks to the remote text-completion service. In structured
// mode the result carries an envelope; in unstructured mode it carries
// plain reply text. The client owns its retry/backoff/fallback protocol:
// an error is returned only when retries are exhausted and fallback is
// disabled.
type ModelClient interface {
	Query(ctx context.Context, text string, structured bool) (*domain.ModelResult, error)
}

// Interpreter is the top-level pipeline: one call per inbound request,
// no state shared between calls.
type Interpreter interface {
	Interpret(ctx context.Context, message string) (*domain.CommandEnvelope, error)
}
