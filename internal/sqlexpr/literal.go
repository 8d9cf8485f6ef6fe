package sqlexpr

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the text layout used when a time.Time literal is inlined.
const TimeLayout = "2006-01-02 15:04:05"

type literal struct{ v any }

// Lit returns a literal value expression.
func Lit(v any) Expr { return literal{v: v} }

func (l literal) AppendSQL(b *strings.Builder, args *[]any) {
	if args != nil {
		*args = append(*args, l.v)
		b.WriteByte('?')
		return
	}
	b.WriteString(InlineValue(l.v))
}

// InlineValue renders v as SQLite literal text.
//
//   - nil           -> NULL
//   - bool          -> 1 or 0
//   - integers      -> decimal
//   - floats        -> shortest decimal that round-trips; NaN is NULL and
//     infinities are 9e999 or -9e999
//   - json.Number   -> its numeric text
//   - string        -> single-quoted, ' doubled
//   - []byte        -> X'hex'
//   - time.Time     -> quoted UTC text in TimeLayout
//   - fmt.Stringer  -> quoted String()
func InlineValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case json.Number:
		// Kept as text so integers beyond 2^53 survive; anything that is not
		// a number is quoted like other strings.
		if _, err := strconv.ParseFloat(string(x), 64); err == nil {
			return string(x)
		}
		return quoteString(string(x))
	case string:
		return quoteString(x)
	case []byte:
		return "X'" + strings.ToUpper(hex.EncodeToString(x)) + "'"
	case time.Time:
		return quoteString(x.UTC().Format(TimeLayout))
	case fmt.Stringer:
		return quoteString(x.String())
	default:
		return quoteString(fmt.Sprintf("%v", x))
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NULL"
	case math.IsInf(f, 1):
		return "9e999"
	case math.IsInf(f, -1):
		return "-9e999"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
