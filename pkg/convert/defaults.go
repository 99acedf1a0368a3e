package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultExecutors returns string converters for the common scalar types.
func DefaultExecutors() []ConversionExecutor {
	return []ConversionExecutor{
		NewExecutor(func(s string) (int, error) {
			n, err := parseInteger(s, strconv.IntSize)
			return int(n), err
		}),
		NewExecutor(func(s string) (int64, error) { return parseInteger(s, 64) }),
		NewExecutor(func(s string) (float64, error) { return cast.ToFloat64E(strings.TrimSpace(s)) }),
		NewExecutor(func(s string) (bool, error) { return cast.ToBoolE(strings.TrimSpace(s)) }),
		NewExecutor(func(s string) (time.Duration, error) { return cast.ToDurationE(strings.TrimSpace(s)) }),
		NewExecutor(func(s string) (time.Time, error) { return cast.ToTimeE(strings.TrimSpace(s)) }),
		NewExecutor(func(s string) ([]string, error) {
			var parts []string
			for _, p := range strings.Split(s, ",") {
				if p = strings.TrimSpace(p); p != "" {
					parts = append(parts, p)
				}
			}
			return cast.ToStringSliceE(parts)
		}),
	}
}

// parseInteger reads decimal text. Hexadecimal needs an explicit 0x or #
// prefix, so leading zeros never switch to octal.
func parseInteger(text string, bitSize int) (int64, error) {
	s := strings.TrimSpace(text)
	sign := ""
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	}
	if s == "" || s[0] == '-' || s[0] == '+' {
		return 0, fmt.Errorf("invalid integer %q", text)
	}

	n, err := strconv.ParseInt(sign+s, base, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", text, err)
	}
	return n, nil
}

// RegisterDefaults installs editors for DefaultExecutors into registry.
func RegisterDefaults(registry EditorRegistry) error {
	for _, exec := range DefaultExecutors() {
		registrar, err := NewConverterEditorRegistrar(exec)
		if err != nil {
			return err
		}
		registrar.RegisterCustomEditors(registry)
	}
	return nil
}

// typeAliases maps the type names accepted in flow documents to Go types.
var typeAliases = map[string]reflect.Type{
	"string":   stringType,
	"int":      reflect.TypeFor[int](),
	"integer":  reflect.TypeFor[int](),
	"long":     reflect.TypeFor[int64](),
	"int64":    reflect.TypeFor[int64](),
	"double":   reflect.TypeFor[float64](),
	"float":    reflect.TypeFor[float64](),
	"float64":  reflect.TypeFor[float64](),
	"boolean":  reflect.TypeFor[bool](),
	"bool":     reflect.TypeFor[bool](),
	"duration": reflect.TypeFor[time.Duration](),
	"date":     reflect.TypeFor[time.Time](),
	"time":     reflect.TypeFor[time.Time](),
	"list":     reflect.TypeFor[[]string](),
}

// LookupType resolves a type name used in flow documents (case-insensitive).
func LookupType(name string) (reflect.Type, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}
