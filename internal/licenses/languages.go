package licenses

// DefaultLanguageCode is used when a legal code filename or request
// carries no explicit language.
const DefaultLanguageCode = "en"

// knownLanguages lists the language codes legal codes have been published
// in. Sub-tagged codes (script variants) are kept verbatim.
var knownLanguages = map[string]bool{
	"ar":      true,
	"ast":     true,
	"bg":      true,
	"ca":      true,
	"cs":      true,
	"da":      true,
	"de":      true,
	"el":      true,
	"en":      true,
	"es":      true,
	"et":      true,
	"eu":      true,
	"fi":      true,
	"fr":      true,
	"gl":      true,
	"he":      true,
	"hr":      true,
	"hu":      true,
	"id":      true,
	"it":      true,
	"ja":      true,
	"ko":      true,
	"lt":      true,
	"lv":      true,
	"mi":      true,
	"ms":      true,
	"nl":      true,
	"no":      true,
	"pl":      true,
	"pt":      true,
	"pt-br":   true,
	"ro":      true,
	"ru":      true,
	"sl":      true,
	"sr-Cyrl": true,
	"sr-Latn": true,
	"sv":      true,
	"th":      true,
	"tr":      true,
	"uk":      true,
	"vi":      true,
	"zh-Hans": true,
	"zh-Hant": true,
}

// IsKnownLanguage reports whether legal text exists in the given language.
func IsKnownLanguage(code string) bool {
	return knownLanguages[code]
}
