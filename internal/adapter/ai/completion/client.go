package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/aloy-nlp/internal/domain"
	"github.com/seu-repo/aloy-nlp/internal/observability/telemetry"
)

// ErrServiceUnavailable is returned when every attempt against the
// completion endpoint failed and fallback responses are disabled.
var ErrServiceUnavailable = errors.New("remote model service unavailable")

// Config holds the completion endpoint settings. Retries is the number of
// retries after the first attempt, so Retries+1 calls happen at most.
type Config struct {
	URL         string
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Timeout     time.Duration
	Retries     int
	Fallback    bool
}

// Client calls a text-completion service with retry, exponential backoff
// and a circuit breaker, degrading to deterministic local responses when
// the service stays unreachable or answers with unparsable output.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger

	// sleep is the backoff wait, replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a completion client. The breaker thresholds are kept
// well above the retry budget so a single request cannot trip it.
func NewClient(cfg Config, log *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "completion-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 20
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		log:        log,
		sleep: func(ctx context.Context, d time.Duration) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
				return nil
			}
		},
	}
}

type completionRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	Stream      bool    `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Response string `json:"response"`
}

// Query sends the text to the completion service. Structured mode wraps
// it in the classify-and-structure template and parses the reply into an
// envelope; unstructured mode wraps it in the conversational template and
// returns the trimmed reply text.
func (c *Client) Query(ctx context.Context, text string, structured bool) (*domain.ModelResult, error) {
	mode := "unstructured"
	prompt := conversationalPrompt(text)
	if structured {
		mode = "structured"
		prompt = structuredPrompt(text)
	}

	start := time.Now()
	raw, err := c.completeWithRetry(ctx, prompt, mode)
	telemetry.ModelLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		if c.cfg.Fallback {
			c.log.Warn("Using fallback response after model failure",
				zap.String("mode", mode),
				zap.Error(err),
			)
			telemetry.ModelFallbacksTotal.WithLabelValues(mode).Inc()
			return fallbackResult(text, structured), nil
		}
		return nil, fmt.Errorf("%w: %d attempts failed: %v", ErrServiceUnavailable, c.cfg.Retries+1, err)
	}

	if structured {
		return c.parseStructured(raw), nil
	}
	return &domain.ModelResult{Text: strings.TrimSpace(raw)}, nil
}

// completeWithRetry runs up to Retries+1 attempts with 2^i seconds of
// backoff between them, and returns the generated text of the first
// attempt that succeeds.
func (c *Client) completeWithRetry(ctx context.Context, prompt, mode string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		c.log.Debug("Sending completion request",
			zap.String("url", c.cfg.URL),
			zap.String("mode", mode),
			zap.String("attempt", fmt.Sprintf("%d/%d", attempt+1, c.cfg.Retries+1)),
		)

		raw, err := c.complete(ctx, prompt)
		if err == nil {
			telemetry.ModelRequestsTotal.WithLabelValues(mode, "success").Inc()
			return raw, nil
		}

		lastErr = err
		telemetry.ModelRequestsTotal.WithLabelValues(mode, "failure").Inc()
		c.log.Warn("Completion attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", c.cfg.Retries+1),
			zap.Error(err),
		)

		if attempt < c.cfg.Retries {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			c.log.Info("Waiting before retrying completion request",
				zap.Duration("wait", wait),
			)
			telemetry.ModelRetriesTotal.Inc()
			if err := c.sleep(ctx, wait); err != nil {
				return "", fmt.Errorf("backoff interrupted: %w", err)
			}
		}
	}

	return "", lastErr
}

// complete performs one breaker-guarded HTTP call and extracts the
// generated text from either the choices[0].text or the response field.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Prompt:      prompt,
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("completion: marshal request: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("completion: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("completion: send request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("completion: API error status %d", resp.StatusCode)
		}

		var decoded completionResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("completion: decode response: %w", err)
		}

		if len(decoded.Choices) > 0 {
			return decoded.Choices[0].Text, nil
		}
		return decoded.Response, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

var jsonSpanRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseStructured extracts the first brace-delimited span of the model
// output and shapes it into an envelope. Unparsable output degrades in
// place to a conversation envelope carrying the raw text; this is not the
// unavailable-service fallback path, it runs on successful calls too.
func (c *Client) parseStructured(raw string) *domain.ModelResult {
	span := jsonSpanRe.FindString(raw)
	if span == "" {
		c.log.Warn("No JSON span in model output", zap.String("output", raw))
		return degradedResult(raw)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(span), &decoded); err != nil {
		c.log.Warn("Model output JSON span failed to parse", zap.Error(err))
		return degradedResult(raw)
	}

	env := &domain.CommandEnvelope{
		Type:    stringField(decoded, "type", "unknown"),
		Message: stringField(decoded, "message", ""),
		Data:    dataField(decoded),
	}
	return &domain.ModelResult{Envelope: env}
}

func degradedResult(raw string) *domain.ModelResult {
	env := domain.NewEnvelope(string(domain.IntentConversation), strings.TrimSpace(raw))
	return &domain.ModelResult{Envelope: env}
}

func stringField(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

func dataField(m map[string]interface{}) map[string]string {
	data := map[string]string{}
	nested, ok := m["data"].(map[string]interface{})
	if !ok {
		return data
	}
	for k, v := range nested {
		switch value := v.(type) {
		case string:
			data[k] = value
		case float64:
			data[k] = strconv.FormatFloat(value, 'f', -1, 64)
		case bool:
			data[k] = strconv.FormatBool(value)
		case nil:
			// skip nulls
		default:
			data[k] = fmt.Sprintf("%v", value)
		}
	}
	return data
}
