package question

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Models routinely wrap the array in markdown fences, add prose around it and
// emit LaTeX with single backslashes (\frac reads as a form feed plus "rac").
// Sanitize runs a fixed list of text repairs, in order, to turn that into
// parseable JSON. Each step is a pure string transform.

type repairStep struct {
	name  string
	apply func(string) string
}

var repairSteps = []repairStep{
	{"strip_fences", stripFences},
	{"slice_array", sliceArray},
	{"protect_escapes", protectEscapes},
	{"escape_backslashes", escapeBackslashes},
	{"restore_escapes", restoreEscapes},
	{"fix_math_commands", fixMathCommands},
	{"normalize_fractions", normalizeFractions},
	{"drop_trailing_commas", outsideStrings(dropTrailingCommas)},
	{"quote_bare_keys", outsideStrings(quoteBareKeys)},
}

// Sanitize applies every repair step to raw and returns the repaired text.
func Sanitize(raw string) string {
	text := raw
	for _, step := range repairSteps {
		text = step.apply(text)
	}
	return text
}

// SanitizeAndParse repairs raw and decodes it as a JSON array. Items are
// returned undecoded so each can be validated on its own.
func SanitizeAndParse(raw string) ([]json.RawMessage, error) {
	repaired := Sanitize(raw)
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(repaired), &items); err != nil {
		return nil, &ParseError{Raw: raw, Repaired: repaired, Err: err}
	}
	return items, nil
}

var fenceRe = regexp.MustCompile("```(?:json)?\\n?")

func stripFences(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

// sliceArray keeps the text from the first '[' to the last ']'. Text without a
// bracket pair is left alone and fails later in the parse.
func sliceArray(s string) string {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}

// Placeholders contain no backslash so escapeBackslashes leaves them alone.
const (
	phBackslash = "\x00BS\x00"
	phQuote     = "\x00QT\x00"
	phSlash     = "\x00SL\x00"
)

var (
	protector = strings.NewReplacer(`\\`, phBackslash, `\"`, phQuote, `\/`, phSlash)
	restorer  = strings.NewReplacer(phBackslash, `\\`, phQuote, `\"`, phSlash, `\/`)
)

func protectEscapes(s string) string { return protector.Replace(s) }

func escapeBackslashes(s string) string { return strings.ReplaceAll(s, `\`, `\\`) }

func restoreEscapes(s string) string { return restorer.Replace(s) }

var mathCommands = []string{"frac", "neq", "sqrt", "cdot", "approx", "leq", "geq", "infty"}

// fixMathCommands re-inserts the escaped backslash in front of a known LaTeX
// command that lost it, e.g. `$frac{1}{2}$`. A command only counts when it is
// not glued to surrounding letters, so words like "fraction" or "unequal"
// are left alone.
func fixMathCommands(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if cmd := mathCommandAt(s, i); cmd != "" {
			b.WriteString(`\\`)
			b.WriteString(cmd)
			i += len(cmd)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func mathCommandAt(s string, i int) string {
	if i > 0 && (isASCIILetter(s[i-1]) || s[i-1] == '\\') {
		return ""
	}
	for _, cmd := range mathCommands {
		if !strings.HasPrefix(s[i:], cmd) {
			continue
		}
		if next := i + len(cmd); next < len(s) && isASCIILetter(s[next]) {
			continue
		}
		return cmd
	}
	return ""
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

var bareFractionRe = regexp.MustCompile(`\\\\frac(\d)(\d)`)

// normalizeFractions rewrites `\\frac12` as `\\frac{1}{2}`.
func normalizeFractions(s string) string {
	return bareFractionRe.ReplaceAllString(s, `\\frac{$1}{$2}`)
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[\]}])`)

func dropTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

var bareKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)

func quoteBareKeys(s string) string {
	return bareKeyRe.ReplaceAllString(s, `$1"$2"$3`)
}

// outsideStrings lifts fn so it only sees text outside JSON string literals.
// Structural repairs must not rewrite question text such as "a, b: c".
func outsideStrings(fn func(string) string) func(string) string {
	return func(s string) string {
		var b strings.Builder
		b.Grow(len(s))
		segStart := 0
		inString := false
		for i := 0; i < len(s); i++ {
			switch {
			case inString && s[i] == '\\':
				i++
			case !inString && s[i] == '"':
				b.WriteString(fn(s[segStart:i]))
				segStart = i
				inString = true
			case inString && s[i] == '"':
				b.WriteString(s[segStart : i+1])
				segStart = i + 1
				inString = false
			}
		}
		switch {
		case segStart >= len(s):
		case inString:
			b.WriteString(s[segStart:])
		default:
			b.WriteString(fn(s[segStart:]))
		}
		return b.String()
	}
}
