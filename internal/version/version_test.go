package version

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Tuple
	}{
		{
			name:  "visual studio product version",
			input: "16.8.30907.101",
			want:  Tuple{16, 8, 30907, 101},
		},
		{
			name:  "windows sdk version",
			input: "10.0.19041.0",
			want:  Tuple{10, 0, 19041, 0},
		},
		{
			name:  "release candidate suffix",
			input: "1.0.5rc",
			want:  Tuple{1, 0, 5},
		},
		{
			name:  "digits embedded mid member",
			input: "2.0beta1.4",
			want:  Tuple{2, 0, 4},
		},
		{
			name:  "non numeric member stops parse",
			input: "1.0.final.2",
			want:  Tuple{1, 0},
		},
		{
			name:  "single component",
			input: "7",
			want:  Tuple{7},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "no digits at all",
			input: "banana",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Tuple
		want int
	}{
		{"equal", Tuple{16, 8}, Tuple{16, 8}, 0},
		{"lesser major", Tuple{15, 9}, Tuple{16, 0}, -1},
		{"greater minor", Tuple{16, 9}, Tuple{16, 8}, 1},
		{"shorter is less", Tuple{16, 8}, Tuple{16, 8, 0}, -1},
		{"longer is greater", Tuple{16, 8, 1}, Tuple{16, 8}, 1},
		{"both empty", nil, nil, 0},
		{"empty vs any", nil, Tuple{1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := tt.a.Less(tt.b); got != (tt.want < 0) {
				t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want < 0)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		tuple Tuple
		want  string
	}{
		{Tuple{16, 8, 30907, 101}, "16.8.30907.101"},
		{Tuple{7}, "7"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := tt.tuple.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.tuple, got, tt.want)
		}
	}
}

func TestMajor(t *testing.T) {
	if got := Parse("16.8.30907.101").Major(); got != 16 {
		t.Errorf("Major() = %d, want 16", got)
	}
	if got := (Tuple)(nil).Major(); got != 0 {
		t.Errorf("empty Major() = %d, want 0", got)
	}
}
