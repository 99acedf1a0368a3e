/*
Package dsl provides a Go DSL for programmatically constructing flow definitions.

It allows developers to define flows, including inheritance between them, with a
fluent builder instead of YAML or JSON documents. This is particularly useful
for generated flows and unit tests.

Example usage:

	base := dsl.New("base").Abstract()
	base.End("cancelled")
	base.Global("cancel", "cancelled")

	booking := dsl.New("booking").Parent("base")
	booking.View("enter").Render("booking/enter").On("submit", "confirm")
	booking.Action("confirm").
		Evaluate("bookingService.confirm(booking)").
		On("success", "done")
	booking.End("done").Commit(true)

	// The builders can be served by an in-memory ports.FlowLoader.
	loader, err := dsl.Build(base, booking)
	// ... pass loader to webflow.New("", webflow.WithLoader(loader))
*/
package dsl
