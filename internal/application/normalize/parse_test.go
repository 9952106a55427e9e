package normalize_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/repair-rate/internal/application/normalize"
)

func TestTrimIdentifier(t *testing.T) {
	cases := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{"  M1 ", "M1", true},
		{"", "", false},
		{"   ", "", false},
		{nil, "", false},
		{12345, "12345", true},
		{float64(40301234), "40301234", true},
		{12.5, "12.5", true},
		{[]byte(" B7 "), "B7", true},
	}
	for _, tc := range cases {
		got, ok := normalize.TrimIdentifier(tc.in)
		assert.Equal(t, tc.wantOK, ok, "in=%v", tc.in)
		assert.Equal(t, tc.want, got, "in=%v", tc.in)
	}
}

func TestParseInt_NuncaFallaConPanico(t *testing.T) {
	cases := []struct {
		in     any
		want   int64
		wantOK bool
	}{
		{"5", 5, true},
		{" 12 ", 12, true},
		{"5.0", 5, true},
		{5.0, 5, true},
		{"5.7", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{decimal.NewFromInt(9), 9, true},
	}
	for _, tc := range cases {
		got, ok := normalize.ParseInt(tc.in)
		assert.Equal(t, tc.wantOK, ok, "in=%v", tc.in)
		assert.Equal(t, tc.want, got, "in=%v", tc.in)
	}
}

func TestParseDate_FormatosAceptados(t *testing.T) {
	want := time.Date(2023, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, in := range []any{
		"2023-03-07",
		"2023/03/07",
		"2023年03月07日",
		"20230307",
		"2023-3-7",
		"2023年3月7日",
		" 2023-03-07 ",
		"2023-03-07 00:00:00",
		time.Date(2023, 3, 7, 15, 4, 5, 0, time.UTC),
	} {
		got, ok := normalize.ParseDate(in)
		assert.True(t, ok, "in=%v", in)
		assert.Equal(t, want, got, "in=%v", in)
	}
}

func TestParseDate_NoInterpretable(t *testing.T) {
	for _, in := range []any{"", nil, "07/03/2023", "2023-13-01", "ayer", time.Time{}} {
		_, ok := normalize.ParseDate(in)
		assert.False(t, ok, "in=%v", in)
	}
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "主控板V2rev3", normalize.CleanDescription("主控板 V2-(rev.3)"))
	assert.Equal(t, "", normalize.CleanDescription("  ---  "))
}
