package props

import (
	"errors"
	"testing"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
)

func TestNewBool(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    bool
		wantSet bool
		wantErr bool
	}{
		{name: "nil unset", value: nil, wantSet: false},
		{name: "bool true", value: true, want: true, wantSet: true},
		{name: "string on", value: "on", want: true, wantSet: true},
		{name: "string No", value: "No", want: false, wantSet: true},
		{name: "string numeric", value: "2", want: true, wantSet: true},
		{name: "int nonzero", value: 55, want: true, wantSet: true},
		{name: "int zero", value: 0, want: false, wantSet: true},
		{name: "float", value: 1.5, want: true, wantSet: true},
		{name: "garbage string", value: "sideways", wantErr: true},
		{name: "garbage type", value: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBool(tt.value)
			if tt.wantErr {
				if !errors.Is(err, benverrors.ErrInvalidValue) {
					t.Fatalf("NewBool(%v) error = %v, want ErrInvalidValue", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBool(%v) error = %v", tt.value, err)
			}
			if got.IsSet() != tt.wantSet || got.Value() != tt.want {
				t.Errorf("NewBool(%v) = (set=%v, value=%v), want (set=%v, value=%v)",
					tt.value, got.IsSet(), got.Value(), tt.wantSet, tt.want)
			}
		})
	}
}

func TestNewInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantSet bool
		wantErr bool
	}{
		{name: "nil unset", value: nil, wantSet: false},
		{name: "int", value: 55, want: 55, wantSet: true},
		{name: "bool true", value: true, want: 1, wantSet: true},
		{name: "decimal string", value: "55", want: 55, wantSet: true},
		{name: "hex string", value: "0x20", want: 32, wantSet: true},
		{name: "float string truncates", value: "99.00", want: 99, wantSet: true},
		{name: "negative", value: "-12", want: -12, wantSet: true},
		{name: "float", value: 1.0, want: 1, wantSet: true},
		{name: "garbage", value: "not a number", wantErr: true},
		{name: "huge uint64", value: uint64(0xffffffffffffffff), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInt(tt.value)
			if tt.wantErr {
				if !errors.Is(err, benverrors.ErrInvalidValue) {
					t.Fatalf("NewInt(%v) error = %v, want ErrInvalidValue", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewInt(%v) error = %v", tt.value, err)
			}
			if got.IsSet() != tt.wantSet || got.Value() != tt.want {
				t.Errorf("NewInt(%v) = (set=%v, value=%d), want (set=%v, value=%d)",
					tt.value, got.IsSet(), got.Value(), tt.wantSet, tt.want)
			}
		})
	}
}

func TestNewBoundedInt(t *testing.T) {
	got, err := NewBoundedInt("0x10", 0, 100)
	if err != nil {
		t.Fatalf("NewBoundedInt() error = %v", err)
	}
	if got.Value() != 16 {
		t.Errorf("Value() = %d, want 16", got.Value())
	}

	if _, err := NewBoundedInt(101, 0, 100); !errors.Is(err, benverrors.ErrInvalidValue) {
		t.Errorf("NewBoundedInt(101, 0, 100) error = %v, want ErrInvalidValue", err)
	}
	if _, err := NewBoundedInt(-1, 0, 100); !errors.Is(err, benverrors.ErrInvalidValue) {
		t.Errorf("NewBoundedInt(-1, 0, 100) error = %v, want ErrInvalidValue", err)
	}
}

func TestNewStr(t *testing.T) {
	if got := NewStr(nil); got.IsSet() {
		t.Error("NewStr(nil) reports set")
	}
	if got := NewStr("hello"); got.Value() != "hello" {
		t.Errorf("NewStr(hello) = %q", got.Value())
	}
	if got := NewStr(42); got.Value() != "42" {
		t.Errorf("NewStr(42) = %q, want rendered number", got.Value())
	}
	// The empty string is a set value, distinct from nil.
	if got := NewStr(""); !got.IsSet() || got.Value() != "" {
		t.Error("NewStr(\"\") should be set and empty")
	}
}

func TestNewStrList(t *testing.T) {
	got, err := NewStrList("foo")
	if err != nil {
		t.Fatalf("NewStrList(foo) error = %v", err)
	}
	if got.Len() != 1 || got.Values()[0] != "foo" {
		t.Errorf("NewStrList(foo) = %v, want one element list", got.Values())
	}

	got, err = NewStrList([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewStrList(slice) error = %v", err)
	}
	if got.String() != "a,b,c" {
		t.Errorf("String() = %q, want %q", got.String(), "a,b,c")
	}

	got, err = NewStrList(nil)
	if err != nil {
		t.Fatalf("NewStrList(nil) error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("NewStrList(nil).Len() = %d, want 0", got.Len())
	}

	if _, err := NewStrList(42); !errors.Is(err, benverrors.ErrInvalidValue) {
		t.Errorf("NewStrList(42) error = %v, want ErrInvalidValue", err)
	}
}

func TestStrListCopies(t *testing.T) {
	source := []string{"a", "b"}
	got, err := NewStrList(source)
	if err != nil {
		t.Fatal(err)
	}

	source[0] = "mutated"
	if got.Values()[0] != "a" {
		t.Error("StrList aliases its input slice")
	}

	out := got.Values()
	out[1] = "mutated"
	if got.Values()[1] != "b" {
		t.Error("Values() exposes internal storage")
	}
}

func TestNewEnum(t *testing.T) {
	members := []string{"debug", "internal", "release"}

	got, err := NewEnum(members, "internal")
	if err != nil {
		t.Fatalf("NewEnum(internal) error = %v", err)
	}
	if got.Index() != 1 || got.Value() != "internal" {
		t.Errorf("NewEnum(internal) = (%d, %q)", got.Index(), got.Value())
	}

	got, err = NewEnum(members, 2)
	if err != nil {
		t.Fatalf("NewEnum(2) error = %v", err)
	}
	if got.Value() != "release" {
		t.Errorf("NewEnum(2).Value() = %q, want release", got.Value())
	}

	got, err = NewEnum(members, nil)
	if err != nil {
		t.Fatalf("NewEnum(nil) error = %v", err)
	}
	if got.IsSet() {
		t.Error("NewEnum(nil) reports set")
	}

	if _, err := NewEnum(members, "profile"); !errors.Is(err, benverrors.ErrInvalidValue) {
		t.Errorf("NewEnum(profile) error = %v, want ErrInvalidValue", err)
	}
	if _, err := NewEnum(members, 3); !errors.Is(err, benverrors.ErrInvalidValue) {
		t.Errorf("NewEnum(3) error = %v, want ErrInvalidValue", err)
	}
	if _, err := NewEnum(members, -1); !errors.Is(err, benverrors.ErrInvalidValue) {
		t.Errorf("NewEnum(-1) error = %v, want ErrInvalidValue", err)
	}
	if _, err := NewEnum(nil, "x"); !errors.Is(err, benverrors.ErrInvalidValue) {
		t.Errorf("NewEnum(no members) error = %v, want ErrInvalidValue", err)
	}
}
