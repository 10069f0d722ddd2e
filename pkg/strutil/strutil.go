package strutil

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
)

// ToBool converts a string to a boolean using build-file conventions.
//
// "true", "t", "on", "yes" and "y" (case-insensitive) are true;
// "false", "f", "off", "no" and "n" are false. Strings that parse as
// numbers are true when nonzero. The empty string is false. Anything
// else fails with ErrInvalidValue.
func ToBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}

	switch strings.ToLower(s) {
	case "true", "t", "on", "yes", "y":
		return true, nil
	case "false", "f", "off", "no", "n":
		return false, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n != 0, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0, nil
	}

	return false, errors.Wrapf(benverrors.ErrInvalidValue, "cannot convert %q to bool", s)
}

// boolString renders a boolean-ish string through ToBool semantics, keeping
// the legacy quirk that "0" and any casing of "false" are false even when
// the rest of the string fails to parse.
func boolString(s string, trueWord, falseWord string) string {
	if s == "0" || strings.EqualFold(s, "false") {
		return falseWord
	}
	if b, err := ToBool(s); err == nil && !b {
		return falseWord
	}
	if s == "" {
		return falseWord
	}
	return trueWord
}

// TrueFalse converts a boolean-ish string to "True" or "False".
func TrueFalse(s string) string {
	return boolString(s, "True", "False")
}

// Truefalse converts a boolean-ish string to "true" or "false".
func Truefalse(s string) string {
	return boolString(s, "true", "false")
}

// TRUEFALSE converts a boolean-ish string to "TRUE" or "FALSE".
func TRUEFALSE(s string) string {
	return boolString(s, "TRUE", "FALSE")
}

// EscapeXMLCData escapes a string for use inside an XML CDATA record.
// "&" must be converted first since the other escapes introduce it.
func EscapeXMLCData(s string) string {
	if strings.Contains(s, "&") {
		s = strings.ReplaceAll(s, "&", "&amp;")
	}
	if strings.Contains(s, "<") {
		s = strings.ReplaceAll(s, "<", "&lt;")
	}
	if strings.Contains(s, ">") {
		s = strings.ReplaceAll(s, ">", "&gt;")
	}
	return s
}

// EscapeXMLAttribute escapes a string for use as an XML attribute value.
// In addition to the CDATA escapes, quotes become "&quot;", every line
// ending form collapses to "&#10;" and tabs become "&#09;".
func EscapeXMLAttribute(s string) string {
	s = EscapeXMLCData(s)

	if strings.Contains(s, `"`) {
		s = strings.ReplaceAll(s, `"`, "&quot;")
	}

	// No one agrees on \r, \n or \r\n, so normalize all three.
	if strings.Contains(s, "\r\n") {
		s = strings.ReplaceAll(s, "\r\n", "&#10;")
	}
	if strings.Contains(s, "\r") {
		s = strings.ReplaceAll(s, "\r", "&#10;")
	}
	if strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, "\n", "&#10;")
	}
	if strings.Contains(s, "\t") {
		s = strings.ReplaceAll(s, "\t", "&#09;")
	}
	return s
}

// SplitCommaWithQuotes splits a comma separated string, skipping commas
// that appear inside single or double quoted runs. The quotes are kept in
// the output fragments. An unterminated quote fails with ErrInvalidValue.
func SplitCommaWithQuotes(s string) ([]string, error) {
	var result []string
	var delimiter byte
	marker := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		// Backslash escapes the next character inside or outside quotes.
		if c == '\\' {
			i++
			continue
		}

		if delimiter == 0 {
			switch c {
			case ',':
				result = append(result, s[marker:i])
				marker = i + 1
			case '"', '\'':
				delimiter = c
			}
		} else if c == delimiter {
			delimiter = 0
		}
	}

	if delimiter != 0 {
		return nil, errors.Wrapf(benverrors.ErrInvalidValue, "string wasn't properly quoted: %q", s)
	}

	if tail := s[marker:]; tail != "" {
		result = append(result, tail)
	}
	return result, nil
}

// ParseCSV parses a comma separated string into entries with surrounding
// whitespace stripped and quote delimiters removed. Doubled quote
// characters inside a quoted entry collapse to one.
func ParseCSV(s string) ([]string, error) {
	fragments, err := SplitCommaWithQuotes(s)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(fragments))
	for _, item := range fragments {
		temp := strings.Trim(item, "\n\r \t")
		if temp != "" {
			if delim := temp[0]; delim == '"' || delim == '\'' {
				d := string(delim)
				if strings.HasSuffix(temp, d) && len(temp) > 1 {
					temp = temp[1 : len(temp)-1]
				}
				temp = strings.ReplaceAll(temp, d+d, d)
			}
		}
		result = append(result, temp)
	}
	return result, nil
}

// GlobsToRegexp translates shell wildcard patterns ("*.cpp", "data?.bin")
// into compiled case-insensitive matchers against whole filenames.
func GlobsToRegexp(patterns []string) ([]*regexp.Regexp, error) {
	result := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		var sb strings.Builder
		sb.WriteString("(?i)^")
		for _, r := range pattern {
			switch r {
			case '*':
				sb.WriteString(".*")
			case '?':
				sb.WriteString(".")
			default:
				sb.WriteString(regexp.QuoteMeta(string(r)))
			}
		}
		sb.WriteString("$")

		re, err := regexp.Compile(sb.String())
		if err != nil {
			return nil, errors.Wrapf(err, "translating pattern %q", pattern)
		}
		result = append(result, re)
	}
	return result, nil
}
