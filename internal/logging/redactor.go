package logging

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const redacted = "[REDACTED]"

var keySeparator = regexp.MustCompile(`[^a-z0-9]+`)

type rule int

const (
	keep rule = iota
	hide
	coarsen
)

// ruleFor picks the redaction for a field name by its lowercase segments:
// todo_text and hook env "text" are hidden, lat/lng are coarsened.
func ruleFor(name string) rule {
	for _, part := range keySeparator.Split(strings.ToLower(name), -1) {
		switch part {
		case "text", "password", "secret", "token":
			return hide
		case "lat", "lng", "lon", "latitude", "longitude":
			return coarsen
		}
	}
	return keep
}

// redact returns a copy of key-value pairs with personal values masked.
// Nested string maps such as hook environments are redacted per entry.
func redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		name, ok := out[i].(string)
		if !ok {
			continue
		}
		out[i+1] = redactValue(name, out[i+1])
	}
	return out
}

func redactValue(name string, value any) any {
	switch v := value.(type) {
	case map[string]string:
		m := make(map[string]string, len(v))
		for k, s := range v {
			m[k] = fmt.Sprint(redactValue(k, s))
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, x := range v {
			m[k] = redactValue(k, x)
		}
		return m
	}
	switch ruleFor(name) {
	case hide:
		return redacted
	case coarsen:
		return coarsenCoordinate(value)
	default:
		return value
	}
}

// coarsenCoordinate rounds a latitude or longitude to one decimal, about 11 km.
func coarsenCoordinate(value any) any {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return redacted
		}
		f = parsed
	default:
		return redacted
	}
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', 1, 64)
}
