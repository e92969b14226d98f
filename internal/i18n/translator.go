package i18n

// Translator resolves UI messages for a single locale with a fixed three-tier
// fallback: bundle value, then caller-supplied default, then the raw key.
type Translator struct {
	bundle Bundle
}

// NewTranslator constructs a Translator over a decoded bundle.
func NewTranslator(bundle Bundle) *Translator {
	return &Translator{bundle: bundle}
}

// Translate resolves key with no caller default, falling back to the key
// itself.
func (t *Translator) Translate(key string) string {
	return t.TranslateDefault(key, "")
}

// TranslateDefault resolves key; when the bundle has no value it returns def,
// and when def is empty it returns the key unchanged.
func (t *Translator) TranslateDefault(key, def string) string {
	if value, ok := Lookup(t.bundle, key); ok {
		return value
	}
	if def != "" {
		return def
	}
	return key
}
