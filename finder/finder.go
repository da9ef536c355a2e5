// Package finder locates design links for panel queries.
package finder

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"
)

// Result is one design link offered to the panel as a preview card.
// Summary is short markdown rendered by the panel.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Kind    string `json:"kind,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Finder locates design links matching a free-form query. Implementations
// must be safe for concurrent use.
type Finder interface {
	Find(ctx context.Context, query string, limit int) ([]Result, error)
}

// Options configures a finder backend.
type Options struct {
	Model   string
	APIKey  string
	APIBase string
}

// Constructor builds a finder from its options.
type Constructor func(opts Options) (Finder, error)

// Registration defines metadata and constructor for a finder backend.
type Registration struct {
	EnvKey      string // env var consulted when no API key is configured
	Constructor Constructor
}

var registry = map[string]Registration{}

// Register registers a finder backend. Called from init functions.
func Register(name string, reg Registration) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	registry[name] = reg
}

// Supported returns all registered backend names in sorted order.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named finder. A missing API key falls back to
// LINKDOCK_FINDER_API_KEY, then to the backend's own env var.
func New(name string, opts Options) (Finder, error) {
	reg, ok := registry[name]
	if !ok {
		return nil, errors.New("unknown finder backend: " + name)
	}
	if opts.APIKey == "" {
		opts.APIKey = os.Getenv("LINKDOCK_FINDER_API_KEY")
	}
	if opts.APIKey == "" && reg.EnvKey != "" {
		opts.APIKey = os.Getenv(reg.EnvKey)
	}
	return reg.Constructor(opts)
}
