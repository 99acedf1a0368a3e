/*
Package webflow assembles flow definitions that inherit from one another.

A flow definition is a graph of states (action, view, decision and end
states) plus flow-level attributes, inputs, outputs and actions. A flow may
name one or more parent flows; the Assembler resolves that chain and folds
each parent into one effective definition, child last, before validating it.

# Merging

Every element of the model is a node from a closed set (see package model).
Lists of nodes merge in one of two ways:

  - Additive: elements that identify the same thing (same state ID, same
    attribute name, same transition event) are merged recursively; the rest
    of the overlay is appended.
  - Replace: a non-empty overlay list replaces the base list, as for
    entry and exit actions.

Merging a state into a state of a different kind fails with a
*model.KindMismatchError; no half-merged flow is returned.

# Usage

	asm, err := webflow.New("./flows")
	if err != nil {
		log.Fatal(err)
	}

	flow, err := asm.Assemble(ctx, "booking")
	if err != nil {
		for _, problem := range webflow.ValidationErrors(err) {
			log.Println(problem)
		}
		log.Fatal(err)
	}

Definitions are read through a ports.FlowLoader. The default loader reads a
Loam repository (markdown front matter, YAML or JSON files); memory and Redis
adapters live under pkg/adapters.
*/
package webflow
