package intent

import (
	"encoding/json"
	"fmt"
)

// Parse parses a single intent message from the panel.
// Messages with an unrecognized type parse into *Unknown rather than
// failing; only malformed JSON returns an error.
func Parse(data []byte) (Message, error) {
	var typeOnly struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &typeOnly); err != nil {
		return nil, fmt.Errorf("failed to extract intent type: %w", err)
	}

	switch typeOnly.Type {
	case TypeUserMessage:
		var m UserMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse user-message: %w", err)
		}
		return &m, nil

	case TypePreviewAction:
		var m PreviewAction
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse preview-action: %w", err)
		}
		return &m, nil

	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return &Unknown{Type: typeOnly.Type, Raw: raw}, nil
	}
}
