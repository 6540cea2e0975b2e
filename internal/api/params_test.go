package api

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC), "20240307"},
		{time.Date(2024, time.November, 1, 15, 30, 0, 0, time.UTC), "20241101"},
		{time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC), "19991231"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.date); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFormatDate_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	d := time.Date(2024, time.January, 1, 22, 0, 0, 0, loc)
	if got := FormatDate(d); got != "20240101" {
		t.Errorf("FormatDate() = %q, want 20240101", got)
	}
}

func TestCoerceParams(t *testing.T) {
	d := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	var nilDate *time.Time
	in := Params{
		"fromdate": d,
		"todate":   &d,
		"unset":    nilDate,
		"page":     2,
		"status":   "active",
	}

	out := coerceParams(in)

	if out["fromdate"] != "20240307" {
		t.Errorf("fromdate = %v", out["fromdate"])
	}
	if out["todate"] != "20240307" {
		t.Errorf("todate = %v", out["todate"])
	}
	if out["unset"] != nil {
		t.Errorf("unset = %v, want nil", out["unset"])
	}
	if out["page"] != 2 || out["status"] != "active" {
		t.Errorf("non-date values changed: %v", out)
	}
	if _, ok := in["fromdate"].(time.Time); !ok {
		t.Error("coerceParams mutated its input")
	}
}

func TestCoerceParams_Empty(t *testing.T) {
	if out := coerceParams(nil); out != nil {
		t.Errorf("coerceParams(nil) = %v, want nil", out)
	}
}

func TestEncodeQuery(t *testing.T) {
	got := encodeQuery(Params{
		"status":      "active",
		"page":        2,
		"responsible": []int{1, 2},
		"skip":        nil,
		"tags":        []string{"a", "b"},
		"complete":    true,
	})
	want := "complete=true&page=2&responsible=1%2C2&status=active&tags=a%2Cb"
	if got != want {
		t.Errorf("encodeQuery() = %q, want %q", got, want)
	}
}
