package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const DefaultLanguage = "en"

// translations for every supported language, loaded once at startup
type Catalog struct {
	fallback string
	messages map[string]map[string]string
	tags     []language.Tag
	codes    []string
	matcher  language.Matcher
}

// loads the embedded locales; fallback must be one of them
func NewCatalog(fallback string) (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	messages := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		code := strings.TrimSuffix(entry.Name(), ".json")

		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", code, err)
		}

		var strs map[string]string
		if err := json.Unmarshal(data, &strs); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", code, err)
		}

		messages[code] = strs
	}

	return newCatalog(fallback, messages)
}

func newCatalog(fallback string, messages map[string]map[string]string) (*Catalog, error) {
	if fallback == "" {
		fallback = DefaultLanguage
	}

	if _, ok := messages[fallback]; !ok {
		return nil, fmt.Errorf("default language %q has no locale", fallback)
	}

	// the matcher falls back to its first tag, so the default goes first
	codes := []string{fallback}
	others := make([]string, 0, len(messages)-1)
	for code := range messages {
		if code != fallback {
			others = append(others, code)
		}
	}
	sort.Strings(others)
	codes = append(codes, others...)

	tags := make([]language.Tag, len(codes))
	for i, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid locale code %q: %w", code, err)
		}
		tags[i] = tag
	}

	return &Catalog{
		fallback: fallback,
		messages: messages,
		tags:     tags,
		codes:    codes,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// supported language codes, default first
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.codes...)
}

func (c *Catalog) Default() string {
	return c.fallback
}

func (c *Catalog) Supports(code string) bool {
	_, ok := c.messages[code]
	return ok
}

// every key/value pair for code, with missing keys filled from the default
func (c *Catalog) Messages(code string) map[string]string {
	out := make(map[string]string, len(c.messages[c.fallback]))
	for k, v := range c.messages[c.fallback] {
		out[k] = v
	}

	for k, v := range c.messages[code] {
		out[k] = v
	}

	return out
}

// picks the best supported language for the given preferences;
// each preference may be a code ("hi") or an Accept-Language header
func (c *Catalog) Match(preferences ...string) string {
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}

		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}

		_, index, confidence := c.matcher.Match(tags...)
		if confidence != language.No {
			return c.codes[index]
		}
	}

	return c.fallback
}

// returns a translator bound to code (or the default if unsupported)
func (c *Catalog) Translator(code string) Translator {
	if !c.Supports(code) {
		code = c.fallback
	}

	return Translator{catalog: c, lang: code}
}
