package i18n

// resolves keys for one language; a value, safe to copy and share
type Translator struct {
	catalog *Catalog
	lang    string
}

func (t Translator) Language() string {
	return t.lang
}

// the string for key in the chosen language, then the default language,
// then the key itself
func (t Translator) T(key string) string {
	if t.catalog == nil {
		return key
	}

	if s, ok := t.catalog.messages[t.lang][key]; ok && s != "" {
		return s
	}

	if s, ok := t.catalog.messages[t.catalog.fallback][key]; ok && s != "" {
		return s
	}

	return key
}
