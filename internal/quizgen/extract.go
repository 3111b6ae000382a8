package quizgen

import (
	"encoding/json"
	"strings"
)

// ExtractJSON isolates the JSON payload in a model reply. It strips
// markdown fences and surrounding prose, flattens line breaks inside the
// payload and drops trailing commas before a closing bracket. It never
// fails: with no bracket structure it returns the trimmed text so the
// parser can report it.
func ExtractJSON(raw string) string {
	if raw == "" {
		return "[]"
	}

	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	arrStart, arrEnd, hasArr := span(text, '[', ']')
	objStart, objEnd, hasObj := span(text, '{', '}')

	switch {
	case hasArr && hasObj && objStart < arrStart && objEnd > arrEnd:
		// Braces around the array are only the payload when they form
		// valid JSON; otherwise they belong to the surrounding prose.
		if obj := repair(text[objStart : objEnd+1]); json.Valid([]byte(obj)) {
			return obj
		}
		return repair(text[arrStart : arrEnd+1])
	case hasArr:
		return repair(text[arrStart : arrEnd+1])
	case hasObj:
		return repair(text[objStart : objEnd+1])
	default:
		return strings.TrimSpace(text)
	}
}

// repair flattens line breaks and drops trailing commas in a payload span.
func repair(payload string) string {
	payload = strings.NewReplacer("\n", " ", "\r", " ").Replace(payload)
	return dropTrailingCommas(payload)
}

// span returns the first open and last close index when close comes after open.
func span(text string, open, close byte) (int, int, bool) {
	first := strings.IndexByte(text, open)
	last := strings.LastIndexByte(text, close)
	if first == -1 || last <= first {
		return 0, 0, false
	}
	return first, last, true
}

// dropTrailingCommas removes each comma that is followed, after optional
// whitespace, by ']' or '}'. Commas inside string literals are kept.
func dropTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',':
			if closesNext(s[i+1:]) {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func closesNext(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\n\r")
	return rest != "" && (rest[0] == ']' || rest[0] == '}')
}
