package generate

import "errors"

// Errors returned by FindJSONArray.
var (
	ErrNoArray        = errors.New("no JSON array found in response")
	ErrUnbalancedJSON = errors.New("no matching closing bracket found")
)

// FindJSONArray returns the first balanced [...] substring of s.
// Brackets inside JSON string literals are ignored, so prose wrapped around
// the array and brackets quoted inside values do not confuse the scan.
func FindJSONArray(s string) (string, error) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '[' {
			start = i
			break
		}
	}
	if start == -1 {
		return "", ErrNoArray
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
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
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrUnbalancedJSON
}
