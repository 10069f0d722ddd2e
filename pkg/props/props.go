// Package props provides validated value types for build settings.
//
// Build descriptions accept loosely typed input: booleans written as
// "on", integers written as "0x20" or "55", single strings where a
// list is expected. Each type here normalizes that input once, at
// construction, and fails fast on garbage instead of carrying it into
// a build. The zero value of every type is a valid "not set".
package props

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	benverrors "github.com/thoreinstein/buildenv/internal/errors"
	"github.com/thoreinstein/buildenv/pkg/strutil"
)

// Bool is an optional boolean setting.
type Bool struct {
	value bool
	set   bool
}

// NewBool builds a Bool from a bool, a string using build-file
// conventions ("on", "yes", "1", ...) or a number (nonzero is true).
// nil produces the unset value.
func NewBool(value any) (Bool, error) {
	switch v := value.(type) {
	case nil:
		return Bool{}, nil
	case bool:
		return Bool{value: v, set: true}, nil
	case string:
		b, err := strutil.ToBool(v)
		if err != nil {
			return Bool{}, err
		}
		return Bool{value: b, set: true}, nil
	default:
		n, err := toInt64(value)
		if err != nil {
			return Bool{}, errors.Wrapf(benverrors.ErrInvalidValue,
				"cannot convert %v (%T) to bool", value, value)
		}
		return Bool{value: n != 0, set: true}, nil
	}
}

// IsSet reports whether a value was provided.
func (b Bool) IsSet() bool { return b.set }

// Value returns the boolean, false when unset.
func (b Bool) Value() bool { return b.value }

func (b Bool) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

// Int is an optional integer setting.
type Int struct {
	value int64
	set   bool
}

// NewInt builds an Int from any integer or float type, a bool (0 or 1),
// or a string. Strings accept decimal, hex with a "0x" prefix, octal
// with a "0" prefix, and floating point forms, which truncate.
func NewInt(value any) (Int, error) {
	return NewBoundedInt(value, -0x8000000000000000, 0x7fffffffffffffff)
}

// NewBoundedInt is NewInt with an inclusive range check.
func NewBoundedInt(value any, min, max int64) (Int, error) {
	if value == nil {
		return Int{}, nil
	}
	n, err := toInt64(value)
	if err != nil {
		return Int{}, err
	}
	if n < min || n > max {
		return Int{}, errors.Wrapf(benverrors.ErrInvalidValue,
			"value %d is outside [%d, %d]", n, min, max)
	}
	return Int{value: n, set: true}, nil
}

// IsSet reports whether a value was provided.
func (i Int) IsSet() bool { return i.set }

// Value returns the integer, 0 when unset.
func (i Int) Value() int64 { return i.value }

func (i Int) String() string {
	if !i.set {
		return ""
	}
	return strconv.FormatInt(i.value, 10)
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > 0x7fffffffffffffff {
			return 0, errors.Wrapf(benverrors.ErrInvalidValue,
				"value %d does not fit in signed 64 bits", v)
		}
		return int64(v), nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		if n, err := strconv.ParseInt(v, 0, 64); err == nil {
			return n, nil
		}
		// "99.00" style input truncates.
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(f), nil
		}
		return 0, errors.Wrapf(benverrors.ErrInvalidValue, "%q is not a number", v)
	default:
		return 0, errors.Wrapf(benverrors.ErrInvalidValue,
			"%v (%T) is not a number", value, value)
	}
}

// Str is an optional string setting. Non-string input is rendered
// with its default format.
type Str struct {
	value string
	set   bool
}

// NewStr builds a Str. nil produces the unset value.
func NewStr(value any) Str {
	switch v := value.(type) {
	case nil:
		return Str{}
	case string:
		return Str{value: v, set: true}
	default:
		return Str{value: fmt.Sprint(v), set: true}
	}
}

// IsSet reports whether a value was provided.
func (s Str) IsSet() bool { return s.set }

// Value returns the string, "" when unset.
func (s Str) Value() string { return s.value }

func (s Str) String() string { return s.value }

// StrList is a list-of-strings setting. A bare string becomes a
// one element list.
type StrList struct {
	values []string
}

// NewStrList builds a StrList from nil, a string, a []string or a
// []any of printable values.
func NewStrList(value any) (StrList, error) {
	switch v := value.(type) {
	case nil:
		return StrList{}, nil
	case string:
		return StrList{values: []string{v}}, nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return StrList{values: out}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return StrList{values: out}, nil
	default:
		return StrList{}, errors.Wrapf(benverrors.ErrInvalidValue,
			"cannot convert %v (%T) to a string list", value, value)
	}
}

// Values returns a copy of the list, empty when unset.
func (l StrList) Values() []string {
	out := make([]string, len(l.values))
	copy(out, l.values)
	return out
}

// Len returns the number of entries.
func (l StrList) Len() int { return len(l.values) }

func (l StrList) String() string { return strings.Join(l.values, ",") }

// Enum is a setting restricted to a fixed member list. The stored
// value is the member's index.
type Enum struct {
	members []string
	index   int
	set     bool
}

// NewEnum builds an Enum over members. value may be nil (unset), a
// member name, or a numeric index into the member list.
func NewEnum(members []string, value any) (Enum, error) {
	if len(members) == 0 {
		return Enum{}, errors.Wrap(benverrors.ErrInvalidValue, "enum needs at least one member")
	}
	owned := make([]string, len(members))
	copy(owned, members)
	e := Enum{members: owned}

	if value == nil {
		return e, nil
	}

	if name, ok := value.(string); ok {
		for i, member := range owned {
			if member == name {
				e.index = i
				e.set = true
				return e, nil
			}
		}
		return Enum{}, errors.Wrapf(benverrors.ErrInvalidValue,
			"%q is not one of %v", name, owned)
	}

	n, err := toInt64(value)
	if err != nil {
		return Enum{}, err
	}
	if n < 0 || n >= int64(len(owned)) {
		return Enum{}, errors.Wrapf(benverrors.ErrInvalidValue,
			"index %d is outside the %d enum members", n, len(owned))
	}
	e.index = int(n)
	e.set = true
	return e, nil
}

// IsSet reports whether a value was provided.
func (e Enum) IsSet() bool { return e.set }

// Index returns the selected member index, 0 when unset.
func (e Enum) Index() int { return e.index }

// Value returns the selected member name, "" when unset.
func (e Enum) Value() string {
	if !e.set {
		return ""
	}
	return e.members[e.index]
}

func (e Enum) String() string { return e.Value() }
