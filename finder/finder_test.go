package finder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/sjson"
)

func TestStubFindMatchesTitle(t *testing.T) {
	s := NewStub()

	results, err := s.Find(context.Background(), "login", 3)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Find() returned %d results, want 1", len(results))
	}
	if results[0].Title != "Login Screen" {
		t.Errorf("Title = %q, want Login Screen", results[0].Title)
	}
	if results[0].URL == "" {
		t.Error("URL should not be empty")
	}
}

func TestStubFindMatchesKind(t *testing.T) {
	s := NewStub()

	results, err := s.Find(context.Background(), "component", 10)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Find() returned no component results")
	}
	for _, r := range results {
		if r.Kind != "component" {
			t.Errorf("result %q has kind %q, want component", r.Title, r.Kind)
		}
	}
}

func TestStubFindFallsBackToCatalog(t *testing.T) {
	s := NewStub()

	results, err := s.Find(context.Background(), "xyzzy nothing matches this", 2)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Find() returned %d results, want 2 from catalog head", len(results))
	}
	if results[0].Title != stubCatalog[0].Title {
		t.Errorf("fallback should start at catalog head, got %q", results[0].Title)
	}
}

func TestParseResults(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		limit   int
		want    int
		wantErr bool
	}{
		{
			name:  "plain array",
			reply: `[{"title":"Login Screen","url":"https://example.com/a"}]`,
			limit: 3,
			want:  1,
		},
		{
			name:  "fenced array",
			reply: "```json\n[{\"title\":\"A\",\"url\":\"https://example.com/a\"}]\n```",
			limit: 3,
			want:  1,
		},
		{
			name:  "prose around array",
			reply: `Here are some links: [{"title":"A","url":"https://example.com/a"},{"title":"B","url":"https://example.com/b"}] Hope that helps!`,
			limit: 3,
			want:  2,
		},
		{
			name:  "entries without title or url dropped",
			reply: `[{"title":"A","url":"https://example.com/a"},{"title":"","url":"https://example.com/b"},{"title":"C","url":""}]`,
			limit: 3,
			want:  1,
		},
		{
			name:  "limit caps results",
			reply: `[{"title":"A","url":"u"},{"title":"B","url":"u"},{"title":"C","url":"u"}]`,
			limit: 2,
			want:  2,
		},
		{
			name:    "no array",
			reply:   "I could not find anything.",
			limit:   3,
			wantErr: true,
		},
		{
			name:    "malformed array",
			reply:   `[{"title":`,
			limit:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResults(tt.reply, tt.limit)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseResults() should have failed")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseResults() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("parseResults() returned %d results, want %d", len(got), tt.want)
			}
		})
	}
}

// chatCompletionFixture is a minimal chat completion response; tests
// inject the assistant content with sjson.
const chatCompletionFixture = `{
	"id": "test-id",
	"object": "chat.completion",
	"created": 1234567890,
	"model": "gpt-4.1-mini",
	"choices": [
		{"index": 0, "message": {"role": "assistant", "content": ""}, "finish_reason": "stop"}
	],
	"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
}`

func TestOpenAIFinderFind(t *testing.T) {
	links := `[{"title":"Login Screen","url":"https://example.com/login","kind":"screen","summary":"A login screen."},
		{"title":"Nav Bar","url":"https://example.com/nav","kind":"component"}]`

	var capturedBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&capturedBody); err != nil {
			t.Errorf("failed to parse request body: %v", err)
			w.WriteHeader(500)
			return
		}

		resp, err := sjson.Set(chatCompletionFixture, "choices.0.message.content", links)
		if err != nil {
			t.Errorf("sjson.Set failed: %v", err)
			w.WriteHeader(500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(resp))
	}))
	defer server.Close()

	f, err := newOpenAIFinder(Options{APIKey: "test-key", APIBase: server.URL})
	if err != nil {
		t.Fatalf("newOpenAIFinder() error = %v", err)
	}

	results, err := f.Find(context.Background(), "login screen", 2)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Find() returned %d results, want 2", len(results))
	}
	if results[0].Title != "Login Screen" || results[0].URL != "https://example.com/login" {
		t.Errorf("results[0] = %+v", results[0])
	}

	if capturedBody["model"] != defaultOpenAIModel {
		t.Errorf("request model = %v, want %v", capturedBody["model"], defaultOpenAIModel)
	}
	msgs, ok := capturedBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("request messages = %v, want system + user", capturedBody["messages"])
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" {
		t.Errorf("first message role = %v, want system", first["role"])
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("bing", Options{}); err == nil {
		t.Fatal("New() should reject unknown backends")
	}
}

func TestSupportedBackends(t *testing.T) {
	names := Supported()
	want := map[string]bool{"stub": false, "openai": false, "anthropic": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("Supported() missing %q (got %v)", n, names)
		}
	}
}
