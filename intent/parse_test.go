package intent

import (
	"encoding/json"
	"testing"
)

func TestParse_UserMessage(t *testing.T) {
	data := `{"type":"user-message","text":"find me a login screen"}`

	msg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	m, ok := msg.(*UserMessage)
	if !ok {
		t.Fatalf("Expected *UserMessage, got %T", msg)
	}
	if m.Text != "find me a login screen" {
		t.Errorf("Text = %q", m.Text)
	}
}

func TestParse_PreviewAction(t *testing.T) {
	data := `{"type":"preview-action","action":"insert","url":"https://figma.com/x","title":"Login Screen"}`

	msg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	m, ok := msg.(*PreviewAction)
	if !ok {
		t.Fatalf("Expected *PreviewAction, got %T", msg)
	}
	if m.Action != ActionInsert {
		t.Errorf("Action = %q, want insert", m.Action)
	}
	if m.URL != "https://figma.com/x" {
		t.Errorf("URL = %q", m.URL)
	}
	if m.Title != "Login Screen" {
		t.Errorf("Title = %q", m.Title)
	}
}

func TestParse_UnrecognizedActionStillParses(t *testing.T) {
	// Action validation happens at dispatch, not parse. A panel newer than
	// the daemon must not break the reader loop.
	data := `{"type":"preview-action","action":"share","url":"https://figma.com/x","title":"X"}`

	msg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m, ok := msg.(*PreviewAction)
	if !ok {
		t.Fatalf("Expected *PreviewAction, got %T", msg)
	}
	if m.Action != Action("share") {
		t.Errorf("Action = %q, want share preserved", m.Action)
	}
}

func TestParse_UnknownTypeYieldsUnknown(t *testing.T) {
	data := `{"type":"panel-resize","width":500}`

	msg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m, ok := msg.(*Unknown)
	if !ok {
		t.Fatalf("Expected *Unknown, got %T", msg)
	}
	if m.Type != Type("panel-resize") {
		t.Errorf("Type = %q", m.Type)
	}
	if len(m.Raw) == 0 {
		t.Error("Raw should preserve the original payload")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"type":`)); err == nil {
		t.Fatal("Parse should fail on malformed JSON")
	}
}

func TestParse_EmptyTitlePreserved(t *testing.T) {
	data := `{"type":"preview-action","action":"copy","url":"https://figma.com/x","title":""}`

	msg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m := msg.(*PreviewAction)
	if m.Title != "" {
		t.Errorf("Title = %q, want empty string preserved", m.Title)
	}
}

func TestConstructorsRoundTrip(t *testing.T) {
	src := NewPreviewAction(ActionGoto, "https://figma.com/y", "Nav Bar")
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	msg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m, ok := msg.(*PreviewAction)
	if !ok {
		t.Fatalf("Expected *PreviewAction, got %T", msg)
	}
	if *m != *src {
		t.Errorf("round trip mismatch: %+v != %+v", m, src)
	}
}
