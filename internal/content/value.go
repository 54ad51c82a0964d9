package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var errNotText = errors.New("must be a string or a number")

// Text is a field value sent either as a JSON string or a JSON number.
// Strings are trimmed; numbers are rendered in their shortest decimal form.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errNotText
	}

	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	case isNumber(b):
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return errNotText
		}
		*t = Text(formatNumber(f))
		return nil
	default:
		return errNotText
	}
}

func isNumber(b []byte) bool {
	return len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9'))
}

func formatNumber(f float64) string {
	if f == 0 {
		// -0 prints as 0
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Amount is an optional Text where a numeric zero counts as absent.
type Amount Text

func (a *Amount) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	if isNumber(bytes.TrimSpace(b)) && t == "0" {
		t = ""
	}
	*a = Amount(t)
	return nil
}

func (t Text) String() string {
	return string(t)
}

// textOr returns def when t is empty.
func textOr(t Text, def string) string {
	if t == "" {
		return def
	}
	return string(t)
}

// escapeComponent percent-encodes s the way browsers' encodeURIComponent does.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
