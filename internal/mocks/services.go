package mocks

import (
	"context"

	"github.com/seu-repo/aloy-nlp/internal/domain"
)

// MockModelClient is a mock implementation of the ModelClient interface
type MockModelClient struct {
	QueryFunc func(ctx context.Context, text string, structured bool) (*domain.ModelResult, error)

	// Calls records every invocation for assertions.
	Calls []MockModelCall
}

type MockModelCall struct {
	Text       string
	Structured bool
}

func (m *MockModelClient) Query(ctx context.Context, text string, structured bool) (*domain.ModelResult, error) {
	m.Calls = append(m.Calls, MockModelCall{Text: text, Structured: structured})
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, text, structured)
	}
	return &domain.ModelResult{Text: ""}, nil
}

// MockAnnotator is a mock implementation of the Annotator interface
type MockAnnotator struct {
	AnnotateFunc func(text string) []domain.Token
}

func (m *MockAnnotator) Annotate(text string) []domain.Token {
	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(text)
	}
	return []domain.Token{}
}

// MockClassifier is a mock implementation of the Classifier interface
type MockClassifier struct {
	ClassifyFunc          func(text string) domain.Classification
	DetectCommandTypeFunc func(text string) domain.CommandType
}

func (m *MockClassifier) Classify(text string) domain.Classification {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(text)
	}
	return domain.Classification{Intent: domain.IntentConversation}
}

func (m *MockClassifier) DetectCommandType(text string) domain.CommandType {
	if m.DetectCommandTypeFunc != nil {
		return m.DetectCommandTypeFunc(text)
	}
	return domain.CommandUnknown
}
