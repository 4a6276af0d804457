package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/ports"
	"github.com/aretw0/aeon/pkg/schema"
)

type redactionMiddleware struct {
	next     ports.ResultStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that drops trajectories of
// biomarkers matching the patterns before persistence. Deployments can keep
// serving most predictions from a shared cache while stigmatizing markers
// (e.g. genetic risk scores) never leave the process.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ResultStore) ports.ResultStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

// RedactionNote is appended to the stored response whenever trajectories
// were withheld, so a later cache hit does not silently answer with fewer
// biomarkers than a fresh simulation would.
const RedactionNote = "some biomarker trajectories were withheld from this cached result by privacy policy"

func (m *redactionMiddleware) Save(ctx context.Context, key string, resp *schema.GatewayResponse) error {
	// Clone to avoid side effects on the response still held by the caller.
	cloned := *resp
	cloned.Predictions = make(map[string]domain.Trajectory, len(resp.Predictions))
	for id, tr := range resp.Predictions {
		if m.matches(id) {
			continue
		}
		cloned.Predictions[id] = tr
	}

	if len(cloned.Predictions) < len(resp.Predictions) {
		cloned.Explanations = append(append([]string{}, resp.Explanations...), RedactionNote)
	}

	return m.next.Save(ctx, key, &cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, key string) (*schema.GatewayResponse, error) {
	return m.next.Load(ctx, key)
}

func (m *redactionMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *redactionMiddleware) matches(id string) bool {
	for _, p := range m.patterns {
		if p.MatchString(id) {
			return true
		}
	}
	return false
}
