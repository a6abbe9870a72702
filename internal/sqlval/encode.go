package sqlval

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Encode renders v as SQL literal text. A nil Value (absent) renders as null.
func Encode(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case String:
		return encodeString(string(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Uint:
		return strconv.FormatUint(uint64(val), 10)
	case Float:
		return encodeFloat(float64(val))
	case Bool:
		return strconv.FormatBool(bool(val))
	case Time:
		b, err := json.Marshal(time.Time(val))
		if err != nil {
			// Years outside [0,9999] have no RFC 3339 form.
			return "null"
		}
		return string(b)
	default:
		return "null"
	}
}

// Identifier wraps a field or table name in backticks. The wildcard * is
// returned unquoted. The name is not validated or escaped.
func Identifier(name string) string {
	if name == "*" {
		return name
	}
	return "`" + name + "`"
}

// encodeFloat uses the JSON number form: no exponent for ordinary
// magnitudes, integral values without a fraction.
func encodeFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "null"
	}
	return string(b)
}

// encodeString produces a double-quoted JSON string.
// <, > and & are left as is, and U+2028/U+2029 are emitted raw rather
// than as \u escapes.
func encodeString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encoding a string cannot fail.
		return "null"
	}

	// json.Encoder adds trailing newline, remove it
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return string(unescapeLineSeparators(out))
}

// unescapeLineSeparators turns \u2028 and \u2029 escapes back into the raw
// characters. An escape preceded by an odd number of backslashes is
// literal text and is kept.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	backslashes := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c == '\\' && backslashes%2 == 0 && i+5 < len(data) &&
			data[i+1] == 'u' && data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			backslashes = 0
			continue
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		out = append(out, c)
	}
	return out
}
