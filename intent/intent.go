// Package intent defines the messages the chat panel sends to the daemon.
package intent

import "encoding/json"

// Type discriminates between intent kinds.
type Type string

const (
	TypeUserMessage   Type = "user-message"
	TypePreviewAction Type = "preview-action"
)

// Action names an operation on a previewed design link.
type Action string

const (
	ActionCopy   Action = "copy"
	ActionInsert Action = "insert"
	ActionGoto   Action = "goto"
)

// Message is the interface for all panel intents.
type Message interface {
	intentType() Type
}

// UserMessage carries free-form chat input typed into the panel.
type UserMessage struct {
	Type Type   `json:"type"`
	Text string `json:"text"`
}

func (m UserMessage) intentType() Type { return TypeUserMessage }

// NewUserMessage builds a user-message intent.
func NewUserMessage(text string) *UserMessage {
	return &UserMessage{Type: TypeUserMessage, Text: text}
}

// PreviewAction requests an operation on a design link shown in the panel.
// URL is carried for all actions; insert currently ignores it (reserved for
// fetching real link content later).
type PreviewAction struct {
	Type   Type   `json:"type"`
	Action Action `json:"action"`
	URL    string `json:"url"`
	Title  string `json:"title"`
}

func (m PreviewAction) intentType() Type { return TypePreviewAction }

// NewPreviewAction builds a preview-action intent.
func NewPreviewAction(action Action, url, title string) *PreviewAction {
	return &PreviewAction{Type: TypePreviewAction, Action: action, URL: url, Title: title}
}

// Unknown preserves a syntactically valid message whose type the daemon does
// not handle. It flows through dispatch as a logged no-op so newer panels
// degrade gracefully against older daemons.
type Unknown struct {
	Type Type
	Raw  json.RawMessage
}

func (m Unknown) intentType() Type { return m.Type }
