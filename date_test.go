package fatmod

import (
	"testing"
	"time"
)

func TestPackDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want uint16
	}{
		{
			name: "epoch",
			t:    time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 0<<9 | 1<<5 | 1,
		},
		{
			name: "regular date",
			t:    time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
			want: 41<<9 | 3<<5 | 4,
		},
		{
			name: "last representable year",
			t:    time.Date(2107, 12, 31, 0, 0, 0, 0, time.UTC),
			want: 127<<9 | 12<<5 | 31,
		},
		{
			name: "before 1980 clamps to the epoch year",
			t:    time.Date(1975, 6, 15, 0, 0, 0, 0, time.UTC),
			want: 0<<9 | 6<<5 | 15,
		},
		{
			name: "after 2107 clamps to the last year",
			t:    time.Date(2200, 6, 15, 0, 0, 0, 0, time.UTC),
			want: 127<<9 | 6<<5 | 15,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackDate(tt.t); got != tt.want {
				t.Errorf("PackDate() = %#04x, want %#04x", got, tt.want)
			}
		})
	}
}

func TestPackTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want uint16
	}{
		{
			name: "midnight",
			t:    time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "even second",
			t:    time.Date(2021, 3, 4, 13, 37, 42, 0, time.UTC),
			want: 13<<11 | 37<<5 | 21,
		},
		{
			name: "odd second is rounded down",
			t:    time.Date(2021, 3, 4, 13, 37, 43, 0, time.UTC),
			want: 13<<11 | 37<<5 | 21,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackTime(tt.t); got != tt.want {
				t.Errorf("PackTime() = %#04x, want %#04x", got, tt.want)
			}
		})
	}
}

func TestPackTimeTenth(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want byte
	}{
		{
			name: "even second",
			t:    time.Date(2021, 3, 4, 13, 37, 42, 0, time.UTC),
			want: 0,
		},
		{
			name: "odd second carries 100 centiseconds",
			t:    time.Date(2021, 3, 4, 13, 37, 43, 0, time.UTC),
			want: 100,
		},
		{
			name: "odd second with fraction",
			t:    time.Date(2021, 3, 4, 13, 37, 43, 150000000, time.UTC),
			want: 115,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackTimeTenth(tt.t); got != tt.want {
				t.Errorf("PackTimeTenth() = %v, want %v", got, tt.want)
			}
		})
	}
}
