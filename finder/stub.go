package finder

import (
	"context"
	"strings"
)

func init() {
	Register("stub", Registration{
		Constructor: func(opts Options) (Finder, error) {
			return NewStub(), nil
		},
	})
}

// Stub is a deterministic finder backed by a fixed catalog. It is the
// default backend, so the daemon performs no network retrieval unless a
// real backend is configured.
type Stub struct {
	catalog []Result
}

// NewStub returns a stub finder with the built-in catalog.
func NewStub() *Stub {
	return &Stub{catalog: stubCatalog}
}

// Find returns catalog entries whose title or kind matches the query,
// falling back to the head of the catalog so the panel always has
// something to show.
func (s *Stub) Find(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = len(s.catalog)
	}

	var matched []Result
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle != "" {
		for _, r := range s.catalog {
			if strings.Contains(strings.ToLower(r.Title), needle) ||
				strings.Contains(strings.ToLower(r.Kind), needle) {
				matched = append(matched, r)
			}
		}
	}
	if len(matched) == 0 {
		matched = append(matched, s.catalog...)
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return append([]Result(nil), matched...), nil
}

var stubCatalog = []Result{
	{
		Title:   "Login Screen",
		URL:     "https://www.figma.com/community/file/900100000000000001/login-screen",
		Kind:    "screen",
		Summary: "A classic **email and password** sign-in screen with social login buttons.",
	},
	{
		Title:   "Sign Up Form",
		URL:     "https://www.figma.com/community/file/900100000000000002/sign-up-form",
		Kind:    "screen",
		Summary: "Two-step registration form with inline validation states.",
	},
	{
		Title:   "Dashboard Overview",
		URL:     "https://www.figma.com/community/file/900100000000000003/dashboard-overview",
		Kind:    "screen",
		Summary: "Analytics dashboard with stat cards and a **line chart** hero.",
	},
	{
		Title:   "Navigation Bar",
		URL:     "https://www.figma.com/community/file/900100000000000004/navigation-bar",
		Kind:    "component",
		Summary: "Responsive top navigation with dropdown menus.",
	},
	{
		Title:   "Primary Button",
		URL:     "https://www.figma.com/community/file/900100000000000005/primary-button",
		Kind:    "component",
		Summary: "Button set covering `default`, `hover`, `pressed` and `disabled`.",
	},
	{
		Title:   "Pricing Cards",
		URL:     "https://www.figma.com/community/file/900100000000000006/pricing-cards",
		Kind:    "component",
		Summary: "Three-tier pricing cards with a highlighted plan.",
	},
	{
		Title:   "Settings Page",
		URL:     "https://www.figma.com/community/file/900100000000000007/settings-page",
		Kind:    "screen",
		Summary: "Account settings with grouped sections and toggles.",
	},
	{
		Title:   "Empty State",
		URL:     "https://www.figma.com/community/file/900100000000000008/empty-state",
		Kind:    "component",
		Summary: "Friendly empty state illustration with a call to action.",
	},
}
