package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var reported []error
	client := NewClient(server.URL, "test-model", 0)
	client.Report = func(err error) { reported = append(reported, err) }
	return client, &reported
}

func envelope(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": payload,
			"done":     true,
		})
	}
}

func TestAnalyze_Success(t *testing.T) {
	client, reported := newTestClient(t, envelope(
		`{"summary":"Two pioneers of computing.","persons":["Ada Lovelace","Alan Turing"],"category":"Science"}`,
	))

	res := client.Analyze(context.Background(), "Ada Lovelace and Alan Turing shaped computing.")

	if res.Summary != "Two pioneers of computing." {
		t.Errorf("unexpected summary: %q", res.Summary)
	}
	if got := res.Persons.Join(); got != "Ada Lovelace, Alan Turing" {
		t.Errorf("unexpected joined persons: %q", got)
	}
	if res.Category != "Science" {
		t.Errorf("unexpected category: %q", res.Category)
	}
	if len(*reported) != 0 {
		t.Errorf("success path should not report, got %v", *reported)
	}
}

func TestAnalyze_PersonsAsSingleString(t *testing.T) {
	client, _ := newTestClient(t, envelope(
		`{"summary":"s","persons":"Ada Lovelace, Alan Turing","category":"Science"}`,
	))

	res := client.Analyze(context.Background(), "text")

	if got := res.Persons.Join(); got != "Ada Lovelace, Alan Turing" {
		t.Errorf("string persons should join unchanged, got %q", got)
	}
}

func TestAnalyze_CategoryDefaultsToOther(t *testing.T) {
	client, _ := newTestClient(t, envelope(`{"summary":"s","persons":[]}`))

	res := client.Analyze(context.Background(), "text")

	if res.Category != "Other" {
		t.Errorf("missing category should default to Other, got %q", res.Category)
	}
	if res.Persons.Join() != "" {
		t.Errorf("empty persons should join to empty string, got %q", res.Persons.Join())
	}
}

func TestAnalyze_RequestContract(t *testing.T) {
	var calls int
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		envelope(`{"summary":"s"}`)(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0)
	client.Analyze(context.Background(), "Marie Curie discovered radium.")

	if calls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", calls)
	}
	if got.Model != "mistral" {
		t.Errorf("default model should be mistral, got %q", got.Model)
	}
	if got.Format != "json" {
		t.Errorf("format hint should be json, got %q", got.Format)
	}
	if got.Stream {
		t.Error("stream should be false")
	}
	if !strings.Contains(got.Prompt, "Marie Curie discovered radium.") {
		t.Error("prompt should embed the article text")
	}
	for _, key := range []string{`"summary"`, `"persons"`, `"category"`} {
		if !strings.Contains(got.Prompt, key) {
			t.Errorf("prompt should name key %s", key)
		}
	}
}

func TestAnalyze_BackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // dead endpoint

	var reported []error
	client := NewClient(server.URL, "test-model", 0)
	client.Report = func(err error) { reported = append(reported, err) }

	res := client.Analyze(context.Background(), "text")

	if !reflect.DeepEqual(res, ai.Fallback()) {
		t.Errorf("expected fallback result, got %+v", res)
	}
	if len(reported) != 1 || !errors.Is(reported[0], ai.ErrBackendUnreachable) {
		t.Errorf("expected one ErrBackendUnreachable report, got %v", reported)
	}
}

func TestAnalyze_ServerError(t *testing.T) {
	client, reported := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	res := client.Analyze(context.Background(), "text")

	if !reflect.DeepEqual(res, ai.Fallback()) {
		t.Errorf("expected fallback result, got %+v", res)
	}
	if len(*reported) != 1 || !errors.Is((*reported)[0], ai.ErrBackendUnreachable) {
		t.Errorf("expected ErrBackendUnreachable, got %v", *reported)
	}
}

func TestAnalyze_MissingResponseField(t *testing.T) {
	client, reported := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"done": true})
	})

	res := client.Analyze(context.Background(), "text")

	if !reflect.DeepEqual(res, ai.Fallback()) {
		t.Errorf("expected fallback result, got %+v", res)
	}
	if len(*reported) != 1 || !errors.Is((*reported)[0], ai.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", *reported)
	}
}

func TestAnalyze_MalformedPayload(t *testing.T) {
	client, reported := newTestClient(t, envelope(`this is not json`))

	res := client.Analyze(context.Background(), "text")

	if !reflect.DeepEqual(res, ai.Fallback()) {
		t.Errorf("expected fallback result, got %+v", res)
	}
	if len(*reported) != 1 || !errors.Is((*reported)[0], ai.ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload, got %v", *reported)
	}
}

func TestAnalyze_FallbackIsDeterministic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-model", 0)
	client.Report = func(error) {}

	first := client.Analyze(context.Background(), "same text")
	second := client.Analyze(context.Background(), "same text")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("fallback should be field-for-field identical: %+v vs %+v", first, second)
	}
	if first.Summary != ai.FallbackSummary {
		t.Errorf("unexpected fallback summary: %q", first.Summary)
	}
	if first.Persons.Join() != ai.FallbackPersons {
		t.Errorf("unexpected fallback persons: %q", first.Persons.Join())
	}
	if first.Category != "Other" {
		t.Errorf("unexpected fallback category: %q", first.Category)
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	client, reported := newTestClient(t, envelope(`{"summary":"s"}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := client.Analyze(ctx, "text")

	if !reflect.DeepEqual(res, ai.Fallback()) {
		t.Errorf("cancelled call should degrade to fallback, got %+v", res)
	}
	if len(*reported) != 1 || !errors.Is((*reported)[0], ai.ErrBackendUnreachable) {
		t.Errorf("cancellation should count as backend unreachable, got %v", *reported)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "", 0)
	if client.baseURL != "http://localhost:11434" {
		t.Error("should default to localhost Ollama")
	}
	if client.model != "mistral" {
		t.Error("should default to mistral")
	}
	if client.client.Timeout != defaultTimeout {
		t.Errorf("should default to %s timeout, got %s", defaultTimeout, client.client.Timeout)
	}
	if client.Report == nil {
		t.Error("Report should default to a logger, not nil")
	}
}
