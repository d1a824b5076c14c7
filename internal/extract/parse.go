package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// assignmentPatterns match `<name> = [ ... ];` for each recognized name, in
// the same order as Names. The bracket capture is non-greedy and spans lines.
var assignmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\bquestionsData\s*=\s*(\[.*?\])\s*;`),
	regexp.MustCompile(`(?s)\bquestions\s*=\s*(\[.*?\])\s*;`),
}

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// FindAssignment returns the bracketed array text assigned to the first
// recognized name found in text.
func FindAssignment(text string) (string, bool) {
	for _, pattern := range assignmentPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil && match[1] != "" {
			return lineBreaks.Replace(match[1]), true
		}
	}
	return "", false
}

// Parser decodes captured array text. Strict JSON is always tried first.
type Parser struct {
	// Permissive enables the YAML flow fallback, which accepts unquoted keys,
	// single-quoted strings and trailing commas without evaluating anything.
	Permissive bool
}

// Parse decodes text into a generic value.
func (p Parser) Parse(text string) (any, error) {
	var value any
	strictErr := json.Unmarshal([]byte(text), &value)
	if strictErr == nil {
		return value, nil
	}
	if !p.Permissive {
		return nil, fmt.Errorf("%w: %v", ErrStrictParse, strictErr)
	}
	value = nil
	if err := yaml.Unmarshal([]byte(yamlQuotes(text)), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermissiveParse, err)
	}
	return value, nil
}

// yamlQuotes rewrites script string escapes YAML does not know: \' becomes
// '' inside single quotes and ' inside double quotes. Other escapes are kept.
func yamlQuotes(text string) string {
	if !strings.Contains(text, `\'`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 8)
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == 0:
			if c == '\'' || c == '"' {
				quote = c
			}
		case c == '\\' && i+1 < len(text):
			i++
			next := text[i]
			switch {
			case next == '\'' && quote == '\'':
				b.WriteString("''")
			case next == '\'':
				b.WriteByte('\'')
			case next == '\\' && quote == '\'':
				b.WriteByte('\\')
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			continue
		case c == quote:
			quote = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}
