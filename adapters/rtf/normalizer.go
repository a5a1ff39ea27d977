package rtf

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Normalizer strips RTF markup noise from a raw byte stream and yields plain
// lines of text. It performs no well-formedness validation: malformed or
// truncated markup degrades to noisier plain text rather than failing.
type Normalizer struct {
	commandPattern *regexp.Regexp
}

// NewNormalizer creates a normalizer for the RTF markup dialect emitted by
// common lab report exports.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		// Formatting directives carry no data value: a backslash, one or
		// more lowercase letters, optional trailing digits.
		commandPattern: regexp.MustCompile(`\\[a-z]+[0-9]*`),
	}
}

// Normalize decodes raw bytes with invalid-byte tolerance and applies the
// ordered markup-to-plaintext substitutions, returning the resulting lines.
// Order matters: braces must be removed before command-token stripping so a
// brace adjacent to a command never shields data from the split.
func (n *Normalizer) Normalize(raw []byte) []string {
	text := decodeLossy(raw)

	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	text = strings.ReplaceAll(text, `\tab`, "\t")
	text = strings.ReplaceAll(text, `\par`, "\n")
	text = n.commandPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\`, "")

	return strings.Split(text, "\n")
}

// decodeLossy interprets raw bytes as UTF-8, dropping undecodable bytes.
func decodeLossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r != utf8.RuneError || size > 1 {
			b.WriteRune(r)
		}
		raw = raw[size:]
	}
	return b.String()
}
