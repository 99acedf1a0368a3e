/*
Package convert adapts one-directional converters to the legacy text editor
contract used when binding configuration values.

A ConversionExecutor turns a value of a fixed source type into a fixed target
type. ConverterEditorRegistrar wraps an executor whose source type is string
and installs a ConverterEditor for its target type into an EditorRegistry:

	exec := convert.NewExecutor(func(s string) (int, error) { return strconv.Atoi(s) })
	registrar, err := convert.NewConverterEditorRegistrar(exec)
	if err != nil {
		return err
	}
	registry := convert.NewRegistry()
	registrar.RegisterCustomEditors(registry)

	v, err := registry.ParseAs(reflect.TypeFor[int](), "42") // 42

Only text-to-value conversion is supported through this bridge. Asking a
ConverterEditor for its text form fails with an error wrapping
errors.ErrUnsupported; formatting needs a formatter-based editor instead.
*/
package convert
