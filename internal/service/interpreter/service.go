package interpreter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aloy-nlp/internal/domain"
	"github.com/seu-repo/aloy-nlp/internal/observability/telemetry"
	"github.com/seu-repo/aloy-nlp/internal/ports"
	"github.com/seu-repo/aloy-nlp/internal/service/lighting"
)

// Service is the top-level pipeline coordinator: classifier → command
// type detector → direct extraction, falling back to the remote model
// plus family-specific validation. Each call is independent; nothing is
// shared between requests.
type Service struct {
	classifier ports.Classifier
	model      ports.ModelClient
	log        *zap.Logger
}

func NewService(classifier ports.Classifier, model ports.ModelClient, log *zap.Logger) *Service {
	return &Service{
		classifier: classifier,
		model:      model,
		log:        log,
	}
}

// Interpret resolves one utterance to its terminal envelope. The only
// error it can return is an exhausted remote call with fallback disabled;
// validation failures are converted to error envelopes, never propagated.
func (s *Service) Interpret(ctx context.Context, text string) (*domain.CommandEnvelope, error) {
	start := time.Now()
	defer func() {
		telemetry.InterpretationLatency.Observe(time.Since(start).Seconds())
	}()

	classification := s.classifier.Classify(text)
	s.log.Info("Message classified", zap.String("intent", string(classification.Intent)))

	if classification.Intent != domain.IntentCommand {
		return s.interpretNonCommand(ctx, text, classification)
	}

	commandType := s.classifier.DetectCommandType(text)
	s.log.Info("Command type detected", zap.String("command_type", string(commandType)))
	telemetry.InterpretationsTotal.WithLabelValues(string(classification.Intent), string(commandType)).Inc()

	if direct := s.tryDirect(text, commandType); direct != nil {
		s.log.Info("Command resolved directly without the remote model",
			zap.String("type", direct.Type),
		)
		telemetry.DirectCommandsTotal.Inc()
		return direct, nil
	}

	prompt := commandPrompt(commandType, text)
	result, err := s.model.Query(ctx, prompt, true)
	if err != nil {
		return nil, fmt.Errorf("interpret command %s: %w", commandType, err)
	}

	if result.Envelope == nil {
		// The model degraded to plain text; wrap it as-is.
		s.log.Warn("Model returned plain text for a command",
			zap.String("command_type", string(commandType)),
		)
		return &domain.CommandEnvelope{
			Type:    string(commandType),
			Message: result.Text,
			Data:    map[string]string{},
		}, nil
	}

	processed := s.processCommandResponse(commandType, result.Envelope)
	s.log.Info("Command processed", zap.String("type", processed.Type))
	return normalize(processed, commandType), nil
}

func (s *Service) interpretNonCommand(ctx context.Context, text string, classification domain.Classification) (*domain.CommandEnvelope, error) {
	telemetry.InterpretationsTotal.WithLabelValues(string(classification.Intent), "none").Inc()

	result, err := s.model.Query(ctx, text, false)
	if err != nil {
		return nil, fmt.Errorf("interpret %s: %w", classification.Intent, err)
	}

	message := result.Text
	if result.Envelope != nil {
		message = result.Envelope.Message
	}

	return &domain.CommandEnvelope{
		Type:    string(classification.Intent),
		Message: strings.TrimSpace(message),
		Data:    map[string]string{},
	}, nil
}

// tryDirect attempts model-free extraction. Only the lighting family is
// wired today; every other type skips straight to the remote model.
func (s *Service) tryDirect(text string, commandType domain.CommandType) *domain.CommandEnvelope {
	if commandType != domain.CommandLightingControl {
		return nil
	}
	return lighting.ExtractDirect(text)
}

// commandPrompt picks the extraction prompt for the detected family.
func commandPrompt(commandType domain.CommandType, text string) string {
	if commandType == domain.CommandLightingControl {
		return lighting.Prompt(text)
	}
	return fmt.Sprintf(`
From the text below, extract the intent and the required parameters.
Return a JSON object shaped for the command type.

Text: "%s"
Answer:
`, text)
}

// processCommandResponse runs the family validator when one exists. A
// validation failure becomes an error envelope here; the pipeline never
// raises past this boundary for malformed command structures.
func (s *Service) processCommandResponse(commandType domain.CommandType, env *domain.CommandEnvelope) *domain.CommandEnvelope {
	if commandType != domain.CommandLightingControl {
		return env
	}

	validated, err := lighting.Validate(env)
	if err != nil {
		s.log.Error("Command validation failed",
			zap.String("command_type", string(commandType)),
			zap.Error(err),
		)
		return &domain.CommandEnvelope{
			Type:    "error",
			Message: fmt.Sprintf("Error processing command %s: %v", commandType, err),
			Data:    map[string]string{},
		}
	}
	return validated
}

// normalize enforces the envelope invariants: non-empty type, present
// data, present message.
func normalize(env *domain.CommandEnvelope, commandType domain.CommandType) *domain.CommandEnvelope {
	if env.Type == "" {
		env.Type = string(commandType)
	}
	if env.Message == "" {
		env.Message = "Command interpreted."
	}
	if env.Data == nil {
		env.Data = map[string]string{}
	}
	return env
}
