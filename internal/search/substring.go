package search

import (
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
)

// SubstringProvider matches when a field contains the query.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a substring provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{opts: applyOptions(opts)}
}

// Match implements Provider.
func (p *SubstringProvider) Match(item domain.TodoItem, query string) bool {
	if query == "" {
		return true
	}
	if p.opts.CaseInsensitive {
		query = strings.ToLower(query)
	}
	for _, value := range fieldValues(item, p.opts.Fields) {
		if value == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, query) {
			return true
		}
	}
	return false
}

// Name implements Provider.
func (p *SubstringProvider) Name() string {
	return ModeSubstring
}
