package convert

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ParseAs(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, RegisterDefaults(registry))

	tests := []struct {
		typeName string
		text     string
		want     any
		wantErr  bool
	}{
		{"int", "42", 42, false},
		{"integer", " 7 ", 7, false},
		{"long", "9000000000", int64(9000000000), false},
		{"double", "2.5", 2.5, false},
		{"boolean", "true", true, false},
		{"bool", "nope", nil, true},
		{"duration", "1m30s", 90 * time.Second, false},
		{"list", "a, b,,c", []string{"a", "b", "c"}, false},
		{"int", "forty-two", nil, true},
		{"int", "010", 10, false},
		{"int", "08", 8, false},
		{"int", "-007", -7, false},
		{"long", "0755", int64(755), false},
		{"int", "0x1F", 31, false},
		{"long", "#ff", int64(255), false},
		{"int", "0x", nil, true},
		{"int", "0x-5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.typeName+"/"+tt.text, func(t *testing.T) {
			typ, ok := LookupType(tt.typeName)
			require.True(t, ok)

			got, err := registry.ParseAs(typ, tt.text)
			if tt.wantErr {
				var convErr *ConversionError
				assert.True(t, errors.As(err, &convErr), "expected ConversionError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ParseAs_NoEditor(t *testing.T) {
	_, err := NewRegistry().ParseAs(reflect.TypeFor[int](), "1")
	assert.ErrorIs(t, err, ErrNoEditor)
}

// legacyEditor only implements the stateful Editor contract.
type legacyEditor struct{ v any }

func (e *legacyEditor) SetAsText(text string) error {
	n, err := strconv.Atoi(text)
	e.v = n * 2
	return err
}
func (e *legacyEditor) AsText() (string, error) { return "", errors.ErrUnsupported }
func (e *legacyEditor) SetValue(v any)          { e.v = v }
func (e *legacyEditor) Value() any              { return e.v }

func TestRegistry_ParseAs_LegacyEditor(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterCustomEditor(reflect.TypeFor[int](), &legacyEditor{})

	got, err := registry.ParseAs(reflect.TypeFor[int](), "21")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestRegistry_TypesSorted(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, RegisterDefaults(registry))

	types := registry.Types()
	assert.Len(t, types, len(DefaultExecutors()))
	for i := 1; i < len(types); i++ {
		assert.LessOrEqual(t, types[i-1].String(), types[i].String())
	}
}

func TestLookupType_Unknown(t *testing.T) {
	_, ok := LookupType("com.example.Money")
	assert.False(t, ok)
}

func TestConverterEditor_ConcurrentParse(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, RegisterDefaults(registry))
	intType := reflect.TypeFor[int]()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := registry.ParseAs(intType, strconv.Itoa(n))
			assert.NoError(t, err)
			assert.Equal(t, n, got)
		}(i)
	}
	wg.Wait()
}
