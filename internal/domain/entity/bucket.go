package entity

import (
	"fmt"
	"sort"
	"time"
)

// Bucket clave de mes calendario. Su forma textual es siempre "YYYY-MM" con mes a dos dígitos,
// por eso el orden lexicográfico de String() coincide con el cronológico.
type Bucket struct {
	year  int
	month int
}

// BucketOf construye el bucket de (year, month).
func BucketOf(year, month int) (Bucket, error) {
	if year < 1 || year > 9999 {
		return Bucket{}, fmt.Errorf("año fuera de rango: %d", year)
	}
	if month < 1 || month > 12 {
		return Bucket{}, fmt.Errorf("mes fuera de rango: %d", month)
	}
	return Bucket{year: year, month: month}, nil
}

// BucketOfDate extrae el bucket de una fecha.
func BucketOfDate(t time.Time) Bucket {
	return Bucket{year: t.Year(), month: int(t.Month())}
}

// ParseBucket interpreta "YYYY-MM".
func ParseBucket(s string) (Bucket, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Bucket{}, fmt.Errorf("bucket inválido %q: %w", s, err)
	}
	return BucketOfDate(t), nil
}

func (b Bucket) Year() int  { return b.year }
func (b Bucket) Month() int { return b.month }

// IsZero indica si el bucket no fue inicializado.
func (b Bucket) IsZero() bool { return b.year == 0 && b.month == 0 }

// FirstDay devuelve el primer día del mes a medianoche UTC.
func (b Bucket) FirstDay() time.Time {
	return time.Date(b.year, time.Month(b.month), 1, 0, 0, 0, 0, time.UTC)
}

// Before compara cronológicamente.
func (b Bucket) Before(o Bucket) bool {
	if b.year != o.year {
		return b.year < o.year
	}
	return b.month < o.month
}

func (b Bucket) String() string {
	return fmt.Sprintf("%04d-%02d", b.year, b.month)
}

// SortBuckets ordena cronológicamente por (año, mes), no por texto.
func SortBuckets(buckets []Bucket) {
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })
}
