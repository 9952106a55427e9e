package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Formatos de fecha aceptados, en orden. El último cubre celdas fecha-hora exportadas por Excel/MySQL.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006年1月2日",
	"20060102",
	"2006-1-2 15:04:05",
}

// TrimIdentifier convierte un identificador a texto recortado.
// Los números enteros se escriben sin parte decimal (123.0 → "123") para que coincidan
// con el mismo código leído como texto desde otra fuente.
func TrimIdentifier(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s = x
	case []byte:
		s = string(x)
	case int:
		s = strconv.Itoa(x)
	case int32:
		s = strconv.FormatInt(int64(x), 10)
	case int64:
		s = strconv.FormatInt(x, 10)
	case float32:
		s = formatFloat(float64(x))
	case float64:
		s = formatFloat(x)
	case decimal.Decimal:
		s = x.String()
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsBlank indica celda vacía (nil o solo espacios).
func IsBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []byte:
		return strings.TrimSpace(string(x)) == ""
	}
	return false
}

// ParseInt intenta convertir a entero. Un fallo se traduce en ausencia, nunca en pánico.
// Acepta flotantes con valor entero ("5.0", 5.0) porque las hojas de cálculo los exportan así.
func ParseInt(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float32:
		return integralFloat(float64(x))
	case float64:
		return integralFloat(x)
	case decimal.Decimal:
		if !x.Equal(x.Truncate(0)) {
			return 0, false
		}
		return x.IntPart(), true
	}
	s, ok := TrimIdentifier(v)
	if !ok {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return integralFloat(f)
}

func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// ParseDecimal intenta convertir a decimal.
func ParseDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float32:
		return parseFloatDecimal(float64(x))
	case float64:
		return parseFloatDecimal(x)
	}
	s, ok := TrimIdentifier(v)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseFloatDecimal(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// ParseDate prueba los formatos aceptados en orden y devuelve el primero que funcione,
// normalizado a medianoche UTC.
func ParseDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(x), true
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(*x), true
	}
	s, ok := TrimIdentifier(v)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var descriptionNoise = regexp.MustCompile(`[^\p{Han}a-zA-Z0-9]`)

// CleanDescription deja solo caracteres Han, letras latinas y dígitos.
func CleanDescription(desc string) string {
	return descriptionNoise.ReplaceAllString(desc, "")
}
