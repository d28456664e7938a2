package search

import (
	"testing"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pendingItem = domain.TodoItem{ID: 1, Text: "Buy oat milk"}
	doneItem    = domain.TodoItem{ID: 2, Text: "Call the bank", IsDone: true}
)

// TestDefaultOptions verifies default option values.
func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.CaseInsensitive)
	assert.Equal(t, []string{FieldText}, opts.Fields)
}

func TestOptions(t *testing.T) {
	opts := applyOptions([]Option{WithCaseInsensitive(false), WithFields(FieldText, FieldStatus)})

	assert.False(t, opts.CaseInsensitive)
	assert.Equal(t, []string{FieldText, FieldStatus}, opts.Fields)
}

// TestSubstringProvider tests substring-based search.
func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		item     domain.TodoItem
		query    string
		expected bool
	}{
		{name: "empty query matches all", provider: NewSubstringProvider(), item: pendingItem, query: "", expected: true},
		{name: "case insensitive by default", provider: NewSubstringProvider(), item: pendingItem, query: "OAT", expected: true},
		{name: "case sensitive miss", provider: NewSubstringProvider(WithCaseInsensitive(false)), item: pendingItem, query: "OAT", expected: false},
		{name: "no match", provider: NewSubstringProvider(), item: pendingItem, query: "bank", expected: false},
		{name: "status field", provider: NewSubstringProvider(WithFields(FieldStatus)), item: doneItem, query: "done", expected: true},
		{name: "status field excludes text", provider: NewSubstringProvider(WithFields(FieldStatus)), item: doneItem, query: "bank", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.Match(tt.item, tt.query))
		})
	}
}

// TestRegexProvider tests regex-based search.
func TestRegexProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		item     domain.TodoItem
		query    string
		expected bool
	}{
		{name: "anchored match", provider: NewRegexProvider(), item: pendingItem, query: "^buy", expected: true},
		{name: "alternation", provider: NewRegexProvider(), item: doneItem, query: "milk|bank", expected: true},
		{name: "case sensitive miss", provider: NewRegexProvider(WithCaseInsensitive(false)), item: pendingItem, query: "^buy", expected: false},
		{name: "invalid pattern matches nothing", provider: NewRegexProvider(), item: pendingItem, query: "[", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.Match(tt.item, tt.query))
		})
	}
}

func TestRegexProviderCachesPatterns(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)

	assert.True(t, p.Match(pendingItem, "milk$"))
	assert.True(t, p.Match(pendingItem, "milk$"))
	assert.Len(t, p.cache, 1)
	assert.Error(t, p.Validate("("))
	assert.NoError(t, p.Validate("a+"))
}

// TestTokenProvider tests token-based search with state words.
func TestTokenProvider(t *testing.T) {
	p := NewTokenProvider()

	tests := []struct {
		name     string
		item     domain.TodoItem
		query    string
		expected bool
	}{
		{name: "blank query", item: pendingItem, query: "   ", expected: true},
		{name: "all words required", item: pendingItem, query: "milk buy", expected: true},
		{name: "missing word", item: pendingItem, query: "milk bread", expected: false},
		{name: "done filter keeps done", item: doneItem, query: "done", expected: true},
		{name: "done filter drops pending", item: pendingItem, query: "done", expected: false},
		{name: "pending filter with text", item: pendingItem, query: "pending OAT", expected: true},
		{name: "pending filter drops done", item: doneItem, query: "pending bank", expected: false},
		{name: "both state words cancel", item: doneItem, query: "done pending", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Match(tt.item, tt.query))
		})
	}
}

func TestNewProvider(t *testing.T) {
	for mode, name := range map[string]string{"": ModeSubstring, "Regex": ModeRegex, "token": ModeToken} {
		p, err := NewProvider(mode)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := NewProvider("fuzzy")
	assert.EqualError(t, err, "invalid search mode: fuzzy (expected substring, regex or token)")
}

func TestFilterKeepsOrder(t *testing.T) {
	items := []domain.TodoItem{doneItem, pendingItem, {ID: 3, Text: "Milk the goat"}}

	got := Filter(items, NewSubstringProvider(), "milk")

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Len(t, items, 3)
}
