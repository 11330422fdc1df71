package xlfill

import "strings"

// Token is a parsed placeholder.
type Token struct {
	// Raw is the full cell value including delimiters.
	Raw string
	// Field is the token up to the first dot.
	Field string
	// Value is the token with any handler suffix stripped.
	Value string
	// HandlerSuffix is the matched handler suffix, empty for plain text
	// substitution tokens.
	HandlerSuffix string
}

// matchToken parses a cell value against the configured delimiters and the
// registered handler suffixes. Suffixes are tried longest first. Returns
// false when the value is not a placeholder.
func matchToken(value, prefix, suffix string, handlerSuffixes []string) (Token, bool) {
	if len(value) <= len(prefix)+len(suffix) {
		return Token{}, false
	}
	if !strings.HasPrefix(value, prefix) || !strings.HasSuffix(value, suffix) {
		return Token{}, false
	}

	inner := value[len(prefix) : len(value)-len(suffix)]
	tok := Token{Raw: value, Value: inner}

	for _, hs := range handlerSuffixes {
		if strings.HasSuffix(inner, hs) && len(inner) > len(hs) {
			tok.HandlerSuffix = hs
			tok.Value = strings.TrimSuffix(inner, hs)
			break
		}
	}

	tok.Field, _, _ = strings.Cut(tok.Value, ".")
	if tok.Field == "" {
		return Token{}, false
	}
	return tok, true
}

// placeholderFor renders the delimited form of a data key.
func placeholderFor(prefix, key, suffix string) string {
	return prefix + key + suffix
}
