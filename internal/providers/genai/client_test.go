package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"geniemetrics/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(fn roundTripFunc) *Client {
	return NewClient(Options{
		APIKey:     "test-key",
		BaseURL:    "https://gemini.test/v1beta/",
		HTTPClient: &http.Client{Transport: fn},
		Logger:     zerolog.Nop(),
	})
}

func TestGenerateBuildsRequest(t *testing.T) {
	var captured map[string]any
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.String() != "https://gemini.test/v1beta/models/gemini-2.5-flash-preview-tts:generateContent" {
			t.Fatalf("unexpected url %s", r.URL.String())
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Fatalf("api key header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/L16","data":"AAAA"}}]}}]}`), nil
	})

	res, err := client.Generate(context.Background(), Request{
		Model:              "gemini-2.5-flash-preview-tts",
		SystemInstruction:  "be brief",
		Parts:              []Part{TextPart("Say hi"), InlinePart("image/jpeg", "Zm9v")},
		ResponseModalities: []string{ModalityAudio},
		VoiceName:          "Kore",
		ThinkingBudget:     32768,
		Grounding:          GroundingSearch,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(res.Inline) != 1 || res.Inline[0].Data != "AAAA" {
		t.Fatalf("unexpected inline data %+v", res.Inline)
	}

	contents := captured["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if _, ok := parts[1].(map[string]any)["inlineData"]; !ok {
		t.Fatalf("expected inlineData part, got %v", parts[1])
	}
	gen := captured["generationConfig"].(map[string]any)
	voice := gen["speechConfig"].(map[string]any)["voiceConfig"].(map[string]any)["prebuiltVoiceConfig"].(map[string]any)["voiceName"]
	if voice != "Kore" {
		t.Fatalf("voiceName = %v", voice)
	}
	if gen["thinkingConfig"].(map[string]any)["thinkingBudget"].(float64) != 32768 {
		t.Fatalf("thinking budget missing: %v", gen["thinkingConfig"])
	}
	tools := captured["tools"].([]any)
	if _, ok := tools[0].(map[string]any)["googleSearch"]; !ok {
		t.Fatalf("googleSearch tool missing: %v", tools)
	}
	if _, ok := captured["systemInstruction"]; !ok {
		t.Fatal("systemInstruction missing")
	}
}

func TestGenerateOmitsEmptyGenerationConfig(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(r.Body)
		if strings.Contains(string(raw), "generationConfig") {
			t.Fatalf("unexpected generationConfig in %s", raw)
		}
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent") {
			t.Fatalf("default model not used: %s", r.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`), nil
	})
	res, err := client.Generate(context.Background(), Request{Parts: []Part{TextPart("hello")}})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if res.Text != "ok" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestGenerateFlattensGrounding(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[
			{"text":"thinking...","thought":true},
			{"text":"Trend "},{"text":"report"}]},
			"groundingMetadata":{"groundingChunks":[
				{"web":{"uri":"https://a.example","title":"A"}},
				{"web":{"uri":"https://a.example","title":"A again"}},
				{"web":{"uri":"https://b.example"}},
				{"maps":{"uri":"https://maps.example/1","title":"Cafe"}}]}}]}`), nil
	})
	res, err := client.Generate(context.Background(), Request{Parts: []Part{TextPart("q")}})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if res.Text != "Trend report" {
		t.Fatalf("Text = %q", res.Text)
	}
	if len(res.Sources) != 2 || res.Sources[1].Title != "https://b.example" {
		t.Fatalf("unexpected sources %+v", res.Sources)
	}
	if len(res.Places) != 1 || res.Places[0].Title != "Cafe" {
		t.Fatalf("unexpected places %+v", res.Places)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		transport roundTripFunc
		check     func(t *testing.T, err error)
	}{
		{
			name: "api error",
			transport: func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`), nil
			},
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %v", err)
				}
				if apiErr.StatusCode != 429 || apiErr.Status != "RESOURCE_EXHAUSTED" {
					t.Fatalf("unexpected api error %+v", apiErr)
				}
			},
		},
		{
			name: "transport failure",
			transport: func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: refused")
			},
		},
		{
			name: "no candidates",
			transport: func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`), nil
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrEmptyResponse) {
					t.Fatalf("expected ErrEmptyResponse, got %v", err)
				}
			},
		},
		{
			name: "blank text",
			transport: func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`), nil
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrEmptyResponse) {
					t.Fatalf("expected ErrEmptyResponse, got %v", err)
				}
			},
		},
		{
			name: "malformed body",
			transport: func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"candidates":`), nil
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestClient(tc.transport).Generate(context.Background(), Request{Parts: []Part{TextPart("q")}})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrProviderFailure) {
				t.Fatalf("expected provider failure, got %v", err)
			}
			if tc.check != nil {
				tc.check(t, err)
			}
		})
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	client := NewClient(Options{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			t.Fatal("no request expected without api key")
			return nil, nil
		})},
		Logger: zerolog.Nop(),
	})
	if client.Configured() {
		t.Fatal("client should not be configured")
	}
	if _, err := client.Generate(context.Background(), Request{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Score int `json:"score"`
	}
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "plain", raw: `{"score":7}`, want: 7},
		{name: "fenced", raw: "```json\n{\"score\":8}\n```", want: 8},
		{name: "prose around", raw: "Here you go: {\"score\":9} hope it helps", want: 9},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "garbage", raw: "no json here", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeJSON[payload](tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON error: %v", err)
			}
			if got.Score != tc.want {
				t.Fatalf("Score = %d, want %d", got.Score, tc.want)
			}
		})
	}
}

func TestObjectSchemaRequired(t *testing.T) {
	s := Object(map[string]*Schema{"b": String(), "a": Integer(), "c": Boolean()}, "c")
	if len(s.Required) != 2 || s.Required[0] != "a" || s.Required[1] != "b" {
		t.Fatalf("Required = %v", s.Required)
	}
}
