package webflow_test

import (
	"context"
	"fmt"
	"log"

	webflow "github.com/mpoindexter/spring-webflow"
	"github.com/mpoindexter/spring-webflow/pkg/adapters/memory"
)

func ExampleAssembler_Assemble() {
	loader := memory.NewLoader(map[string]string{
		"base": `
id: base
abstract: true
states:
  - id: cancelled
    type: end
`,
		"booking": `
id: booking
parent: base
start-state: enter
states:
  - id: enter
    type: view
    transitions:
      - on: cancel
        to: cancelled
`,
	})

	asm, err := webflow.New("", webflow.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	flow, err := asm.Assemble(context.Background(), "booking")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("start:", flow.StartStateID())
	for _, s := range flow.States {
		fmt.Println(s.StateID(), s.Kind())
	}
	// Output:
	// start: enter
	// cancelled end-state
	// enter view-state
}
