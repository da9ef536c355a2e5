package finder

import (
	"encoding/json"
	"fmt"
	"strings"
)

const sdkMaxRetries = 2

const findSystemPrompt = `You locate links to design resources (screens, components, UI kits) for a design tool chat panel.
Respond with a JSON array only. Each element must have "title" and "url" strings and may have "kind" and "summary" strings.
"kind" is one of: screen, component, file. "summary" is one short sentence of plain markdown.
Do not write anything outside the JSON array.`

func findUserPrompt(query string, limit int) string {
	return fmt.Sprintf("Find up to %d design links for: %s", limit, query)
}

// parseResults extracts the JSON array from a model reply. Models
// occasionally wrap the array in code fences or prose, so everything
// around the outermost brackets is ignored. Entries without a title or
// URL are dropped.
func parseResults(reply string, limit int) ([]Result, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model reply")
	}

	var raw []Result
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}

	var out []Result
	for _, r := range raw {
		if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.URL) == "" {
			continue
		}
		out = append(out, r)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func normalizeBaseURL(apiBase, defaultBase string) string {
	base := strings.TrimSpace(apiBase)
	if base == "" {
		base = defaultBase
	}
	return strings.TrimRight(base, "/")
}
