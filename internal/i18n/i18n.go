// Package i18n holds the en and fa message catalogs and locale helpers.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.toml
var embeddedLocales embed.FS

// Text directions.
const (
	LTR = "ltr"
	RTL = "rtl"
)

type catalogFile struct {
	Locale   string            `toml:"locale"`
	Messages map[string]string `toml:"messages"`
}

// Catalog stores messages per locale and registers them with x/text.
type Catalog struct {
	messages map[domain.Locale]map[string]string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, registered on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embeddedLocales)
		if err != nil {
			panic(fmt.Sprintf("i18n: load embedded catalogs: %v", err))
		}
		c.Register()
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses every locales/*.toml file in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{messages: make(map[domain.Locale]map[string]string)}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		locale, err := domain.ParseLocale(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		if want := strings.TrimSuffix(path.Base(p), ".toml"); want != locale.String() {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", p, locale)
		}
		if _, exists := c.messages[locale]; exists {
			return nil, fmt.Errorf("catalog %s: locale %q already defined", p, locale)
		}
		c.messages[locale] = file.Messages
	}
	if _, ok := c.messages[domain.LocaleEnglish]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", domain.LocaleEnglish)
	}
	return c, nil
}

// Register installs every message into the x/text default catalog.
func (c *Catalog) Register() {
	for locale, messages := range c.messages {
		tag := Tag(locale)
		for key, value := range messages {
			_ = message.SetString(tag, key, value)
		}
	}
}

// Keys returns the sorted message keys defined for locale.
func (c *Catalog) Keys(locale domain.Locale) []string {
	keys := make([]string, 0, len(c.messages[locale]))
	for key := range c.messages[locale] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is defined for locale.
func (c *Catalog) Has(locale domain.Locale, key string) bool {
	_, ok := c.messages[locale][key]
	return ok
}

// T renders key for locale, falling back to English and then to the key itself.
func (c *Catalog) T(locale domain.Locale, key string, args ...any) string {
	if !c.Has(locale, key) {
		locale = domain.LocaleEnglish
	}
	if !c.Has(locale, key) {
		return key
	}
	return Printer(locale).Sprintf(message.Key(key, c.messages[locale][key]), args...)
}

// Tag maps a locale to its language tag.
func Tag(locale domain.Locale) language.Tag {
	if locale == domain.LocaleFarsi {
		return language.Persian
	}
	return language.English
}

// Printer returns an x/text printer for locale.
func Printer(locale domain.Locale) *message.Printer {
	return message.NewPrinter(Tag(locale))
}

// Direction returns rtl for Farsi and ltr otherwise.
func Direction(locale domain.Locale) string {
	if locale.IsRTL() {
		return RTL
	}
	return LTR
}

// GreetingKey picks the time-of-day greeting for now.
func GreetingKey(name string, now time.Time) string {
	if strings.TrimSpace(name) == "" {
		return "welcome"
	}
	switch hour := now.Hour(); {
	case hour < 12:
		return "good_morning"
	case hour < 18:
		return "good_afternoon"
	default:
		return "good_evening"
	}
}

// Greeting renders the dashboard greeting for name at now.
func (c *Catalog) Greeting(locale domain.Locale, name string, now time.Time) string {
	key := GreetingKey(name, now)
	if key == "welcome" {
		return c.T(locale, key)
	}
	return c.T(locale, key, strings.TrimSpace(name))
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// FormatMemberSince renders a stored memberSince timestamp as a local date.
// Empty or invalid input yields "".
func FormatMemberSince(locale domain.Locale, ts string, loc *time.Location) string {
	t, ok := domain.UserSettings{MemberSince: ts}.MemberSinceTime()
	if !ok {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	if locale == domain.LocaleFarsi {
		return persianDigits.Replace(t.Format("2006/01/02"))
	}
	return t.Format("January 2, 2006")
}

// LanguageName returns the localized name of target as shown in locale.
func (c *Catalog) LanguageName(locale, target domain.Locale) string {
	if target == domain.LocaleFarsi {
		return c.T(locale, "farsi")
	}
	return c.T(locale, "english")
}

// ThemeName returns the localized theme label.
func (c *Catalog) ThemeName(locale domain.Locale, theme domain.Theme) string {
	if theme == domain.ThemeDark {
		return c.T(locale, "dark")
	}
	return c.T(locale, "light")
}
