// Package i18n holds the response message catalog. Callers resolve a locale once per request
// and pass it explicitly to Message.
package i18n

import (
	"golang.org/x/text/language"
)

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
	LocaleDE Locale = "de"
)

const DefaultLocale = LocaleEN

// supported order matters: the first tag is the matcher fallback.
var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.German,
}

var matcher = language.NewMatcher(supported)

// ResolveLocale picks the best supported locale for an Accept-Language header value.
func ResolveLocale(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	base, _ := supported[idx].Base()
	return Locale(base.String())
}

// Message returns the catalog text for key in locale, falling back to English and then to the key itself.
func Message(locale Locale, key string) string {
	if msgs, ok := catalog[locale]; ok {
		if m, ok := msgs[key]; ok {
			return m
		}
	}
	if m, ok := catalog[DefaultLocale][key]; ok {
		return m
	}
	return key
}
