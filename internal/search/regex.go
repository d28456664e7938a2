package search

import (
	"regexp"
	"sync"

	"github.com/daybook-app/daybook/internal/domain"
)

// RegexProvider matches fields against a regular expression.
// Invalid patterns match nothing. Compiled patterns are cached.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a regex provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match implements Provider.
func (p *RegexProvider) Match(item domain.TodoItem, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.compile(query)
	if err != nil {
		return false
	}
	for _, value := range fieldValues(item, p.opts.Fields) {
		if value != "" && re.MatchString(value) {
			return true
		}
	}
	return false
}

// Validate reports whether pattern compiles.
func (p *RegexProvider) Validate(pattern string) error {
	_, err := p.compile(pattern)
	return err
}

func (p *RegexProvider) compile(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}

// Name implements Provider.
func (p *RegexProvider) Name() string {
	return ModeRegex
}
