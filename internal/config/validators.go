package config

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
)

// rule normalizes one configuration value. ok=false rejects the value and
// the default is used instead; expect is shown in the warning.
type rule struct {
	normalize func(value string) (normalized string, ok bool)
	expect    string
}

// rules maps every checked key to its rule. Unlisted keys are free-form.
var rules = map[string]rule{
	"storage_backend":             oneOf("file", "sqlite"),
	"hooks_enabled":               boolean,
	"hooks_failure_mode":          oneOf("ignore", "warn", "abort"),
	"hooks_timeout":               positiveDuration,
	"notification_duration":       positiveDuration,
	"error_notification_duration": positiveDuration,
	"logging_enabled":             boolean,
	"logging_level":               oneOf("debug", "info", "warn", "error"),
	"logging_max_files":           positiveInt,
	"status_enabled":              boolean,
	"status_format":               oneOf("compact", "detailed", "count-only"),
	"status_colors":               statusColors,
	"debug":                       boolean,
	"quiet":                       boolean,
	"weather.api_url":             httpURL,
	"weather.timeout":             positiveDuration,
	"weather.breaker_failures":    positiveInt,
	"weather.breaker_cooldown":    positiveDuration,
}

// validate replaces rejected values with their defaults. Empty values fall
// back silently.
func validate() {
	for key, value := range config {
		r, ok := rules[key]
		if !ok {
			continue
		}
		fallback := configMap[key]
		if value == "" {
			config[key] = fallback
			continue
		}
		normalized, ok := r.normalize(value)
		if !ok {
			colors.Warning(fmt.Sprintf("invalid %s value %q: expected %s; using default %s", key, value, r.expect, fallback))
			config[key] = fallback
			continue
		}
		config[key] = normalized
	}
}

func oneOf(allowed ...string) rule {
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	return rule{
		normalize: func(v string) (string, bool) {
			v = strings.ToLower(strings.TrimSpace(v))
			for _, a := range sorted {
				if v == a {
					return v, true
				}
			}
			return "", false
		},
		expect: "one of " + strings.Join(sorted, ", "),
	}
}

var boolean = rule{
	normalize: func(v string) (string, bool) {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return "true", true
		case "0", "false", "no", "off":
			return "false", true
		}
		return "", false
	},
	expect: "true/false, yes/no, on/off or 1/0",
}

var positiveInt = rule{
	normalize: func(v string) (string, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return "", false
		}
		return strconv.Itoa(n), true
	},
	expect: "a positive integer",
}

var positiveDuration = rule{
	normalize: func(v string) (string, bool) {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil || d <= 0 {
			return "", false
		}
		return d.String(), true
	},
	expect: "a positive duration such as 500ms, 10s or 1m",
}

// statusColors accepts "pending:<color>,done:<color>"; either state may be
// omitted and a color may be empty.
var statusColors = rule{
	normalize: func(v string) (string, bool) {
		pairs := strings.Split(v, ",")
		out := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			state, color, found := strings.Cut(pair, ":")
			state = strings.ToLower(strings.TrimSpace(state))
			if !found || (state != "pending" && state != "done") {
				return "", false
			}
			out = append(out, state+":"+strings.TrimSpace(color))
		}
		return strings.Join(out, ","), true
	},
	expect: "pending:<color>,done:<color>",
}

var httpURL = rule{
	normalize: func(v string) (string, bool) {
		u, err := url.Parse(strings.TrimSpace(v))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", false
		}
		return u.String(), true
	},
	expect: "an http or https URL",
}
