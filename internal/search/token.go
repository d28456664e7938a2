package search

import (
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
)

// TokenProvider splits the query on whitespace and requires every word to
// appear in some field. The words "done" and "pending" filter by state
// instead; giving both cancels them out.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a token provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match implements Provider.
func (p *TokenProvider) Match(item domain.TodoItem, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	doneFilter, pendingFilter := false, false
	textTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch strings.ToLower(token) {
		case "done":
			doneFilter = true
		case "pending":
			pendingFilter = true
		default:
			if p.opts.CaseInsensitive {
				token = strings.ToLower(token)
			}
			textTokens = append(textTokens, token)
		}
	}

	if doneFilter && pendingFilter {
		doneFilter, pendingFilter = false, false
	}
	if doneFilter && !item.IsDone {
		return false
	}
	if pendingFilter && item.IsDone {
		return false
	}

	values := fieldValues(item, p.opts.Fields)
	if p.opts.CaseInsensitive {
		for i := range values {
			values[i] = strings.ToLower(values[i])
		}
	}
	for _, token := range textTokens {
		if !containsAny(values, token) {
			return false
		}
	}
	return true
}

func containsAny(values []string, token string) bool {
	for _, value := range values {
		if value != "" && strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name implements Provider.
func (p *TokenProvider) Name() string {
	return ModeToken
}
