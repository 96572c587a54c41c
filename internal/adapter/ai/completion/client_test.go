package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(url string, retries int, fallback bool) (*Client, *[]time.Duration) {
	c := NewClient(Config{
		URL:         url,
		Model:       "test-model",
		MaxTokens:   64,
		Temperature: 0.1,
		TopP:        0.9,
		Timeout:     time.Second,
		Retries:     retries,
		Fallback:    fallback,
	}, zap.NewNop())

	waits := &[]time.Duration{}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return c, waits
}

func completionBody(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]string{{"text": text}},
	})
	return string(body)
}

func TestQuery_RetriesThenSucceeds(t *testing.T) {
	failures := 2
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(completionBody("  Tudo certo!  ")))
	}))
	defer server.Close()

	c, waits := newTestClient(server.URL, 3, false)

	result, err := c.Query(context.Background(), "oi", false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Text != "Tudo certo!" {
		t.Errorf("Text = %q, want trimmed reply", result.Text)
	}
	if calls != failures+1 {
		t.Errorf("server saw %d calls, want %d", calls, failures+1)
	}
	if len(*waits) != failures {
		t.Fatalf("got %d backoff waits, want %d", len(*waits), failures)
	}
	// Backoff exponencial: 2^0, 2^1 segundos
	if (*waits)[0] != 1*time.Second || (*waits)[1] != 2*time.Second {
		t.Errorf("waits = %v, want [1s 2s]", *waits)
	}
}

func TestQuery_SendsGenerationParameters(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, 0, false)
	if _, err := c.Query(context.Background(), "oi", false); err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if got["model"] != "test-model" {
		t.Errorf("model = %v", got["model"])
	}
	if got["max_tokens"] != float64(64) {
		t.Errorf("max_tokens = %v", got["max_tokens"])
	}
	if got["stream"] != false {
		t.Errorf("stream = %v, want false", got["stream"])
	}
	if _, ok := got["prompt"].(string); !ok {
		t.Error("prompt missing from payload")
	}
}

func TestQuery_ResponseFieldAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": " direto do ollama "}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, 0, false)
	result, err := c.Query(context.Background(), "oi", false)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Text != "direto do ollama" {
		t.Errorf("Text = %q", result.Text)
	}
}

func TestQuery_FallbackDisabledFails(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	retries := 2
	c, waits := newTestClient(server.URL, retries, false)

	_, err := c.Query(context.Background(), "acenda a luz", true)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
	if calls != retries+1 {
		t.Errorf("server saw %d calls, want %d", calls, retries+1)
	}
	if len(*waits) != retries {
		t.Errorf("got %d backoff waits, want %d", len(*waits), retries)
	}
}

func TestQuery_FallbackStructuredLighting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, 1, true)

	result, err := c.Query(context.Background(), "acenda a luz da sala", true)
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	env := result.Envelope
	if env == nil {
		t.Fatal("fallback returned no envelope")
	}
	if env.Type != "lighting-control" {
		t.Errorf("Type = %q, want lighting-control", env.Type)
	}
	if env.Data["action"] != "turn_on" || env.Data["room"] != "sala" {
		t.Errorf("Data = %v", env.Data)
	}
	if env.Data["error"] != "llm_unavailable" {
		t.Errorf("error marker = %q, want llm_unavailable", env.Data["error"])
	}
}

func TestQuery_FallbackStructuredShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cases := []struct {
		text     string
		wantType string
	}{
		{"defina um alarme para as 7", "alarm-setting"},
		{"pesquise receitas de bolo", "search"},
		{"tudo bem com voce", "conversation"},
	}

	for _, tc := range cases {
		c, _ := newTestClient(server.URL, 0, true)
		result, err := c.Query(context.Background(), tc.text, true)
		if err != nil {
			t.Fatalf("fallback errored for %q: %v", tc.text, err)
		}
		if result.Envelope == nil || result.Envelope.Type != tc.wantType {
			t.Errorf("fallback for %q = %+v, want type %q", tc.text, result.Envelope, tc.wantType)
		}
	}
}

func TestQuery_FallbackUnstructuredSentence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, 0, true)
	result, err := c.Query(context.Background(), "oi", false)
	if err != nil {
		t.Fatalf("fallback errored: %v", err)
	}

	found := false
	for _, s := range fallbackSentences {
		if result.Text == s {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("fallback text %q not in the fixed pool", result.Text)
	}
}

// Unparsable model output is a degrade-in-place, not a fallback: the
// call succeeded, so the raw text is wrapped as a conversation envelope.
func TestQuery_MalformedOutputDegrades(t *testing.T) {
	cases := []string{
		"sem json nenhum aqui",
		"quase { mas não fecha",
		"{invalid json}",
	}

	for _, output := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody(output)))
		}))

		c, _ := newTestClient(server.URL, 0, false)
		result, err := c.Query(context.Background(), "acenda a luz", true)
		server.Close()

		if err != nil {
			t.Fatalf("degrade path errored for %q: %v", output, err)
		}
		env := result.Envelope
		if env == nil {
			t.Fatalf("no envelope for %q", output)
		}
		if env.Type != "conversation" {
			t.Errorf("Type = %q, want conversation for %q", env.Type, output)
		}
		if len(env.Data) != 0 {
			t.Errorf("Data = %v, want empty", env.Data)
		}
	}
}

func TestQuery_StructuredParsing(t *testing.T) {
	output := `Aqui está: {"type": "lighting-control", "message": "Luz ligada", "data": {"action": "turn_on", "room": "sala", "intensity": 80}} fim.`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(output)))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, 0, false)
	result, err := c.Query(context.Background(), "acenda a luz", true)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	env := result.Envelope
	if env == nil {
		t.Fatal("no envelope")
	}
	if env.Type != "lighting-control" || env.Message != "Luz ligada" {
		t.Errorf("envelope = %+v", env)
	}
	if env.Data["action"] != "turn_on" || env.Data["room"] != "sala" {
		t.Errorf("Data = %v", env.Data)
	}
	// Valores numéricos viram string
	if env.Data["intensity"] != "80" {
		t.Errorf("intensity = %q, want \"80\"", env.Data["intensity"])
	}
}

func TestQuery_StructuredDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(`{"data": {"action": "turn_on"}}`)))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, 0, false)
	result, err := c.Query(context.Background(), "acenda", true)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	env := result.Envelope
	if env.Type != "unknown" {
		t.Errorf("Type = %q, want unknown default", env.Type)
	}
	if env.Message != "" {
		t.Errorf("Message = %q, want empty default", env.Message)
	}
	if env.Data["action"] != "turn_on" {
		t.Errorf("Data = %v", env.Data)
	}
}
