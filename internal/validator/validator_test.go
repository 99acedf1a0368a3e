package validator

import (
	"errors"
	"testing"

	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *model.Flow {
	t.Helper()
	flow, err := compiler.NewParser().Parse([]byte(src))
	require.NoError(t, err)
	return flow
}

func keys(err error) []string {
	var out []string
	for _, e := range ValidationErrors(err) {
		var ve *ValidationError
		if errors.As(e, &ve) {
			out = append(out, ve.Key)
		}
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	flow := parse(t, `
id: booking
start-state: enter
attributes:
  - name: timeout
    type: duration
    value: 30s
states:
  - id: enter
    type: view
    view: enter.html
    transitions:
      - on: submit
        to: route
      - on: dynamic
        to: ${flowScope.next}
  - id: route
    type: decision
    if:
      - test: booking.nights > 3 && booking.vip
        then: review
        else: done
  - id: review
    type: action
    actions:
      - evaluate: reviewService.check(booking)
    transitions:
      - on: success
        to: done
  - id: done
    type: end
`)

	assert.NoError(t, Validate(flow, WithReachability()))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	flow := parse(t, `
id: broken
start-state: missing
attributes:
  - name: retries
    type: integer
    value: many
  - name: color
    type: colour
    value: red
states:
  - id: a
    type: view
    transitions:
      - on: next
        to: ghost
  - id: a
    type: end
  - id: route
    type: decision
    if:
      - test: "x >"
        then: nowhere
global-transitions:
  - on: cancel
    to: limbo
`)

	err := Validate(flow)
	require.Error(t, err)

	var aggr *AggregateError
	require.True(t, errors.As(err, &aggr))
	assert.Equal(t, "broken", aggr.Flow)

	assert.ElementsMatch(t, []string{
		"states[a]",
		"start-state",
		"attributes[retries].value",
		"attributes[color].type",
		"global-transitions[0].to",
		"states[a].transitions[0].to",
		"states[route].if[0].test",
		"states[route].if[0].then",
	}, keys(err))
}

func TestValidate_NoStates(t *testing.T) {
	err := Validate(model.NewFlow("empty"))
	require.Error(t, err)
	assert.Equal(t, []string{"states"}, keys(err))
	assert.Contains(t, err.Error(), `flow "empty"`)
}

func TestValidate_Reachability(t *testing.T) {
	flow := parse(t, `
id: orphans
states:
  - id: start
    type: action
    transitions:
      - on: ok
        to: done
  - id: orphan
    type: view
  - id: done
    type: end
`)

	assert.NoError(t, Validate(flow))

	err := Validate(flow, WithReachability())
	require.Error(t, err)
	assert.Equal(t, []string{"states[orphan]"}, keys(err))
}

func TestValidate_GlobalTransitionsReachEverywhere(t *testing.T) {
	flow := parse(t, `
id: global
states:
  - id: start
    type: view
  - id: cancelled
    type: end
global-transitions:
  - on: cancel
    to: cancelled
`)

	assert.NoError(t, Validate(flow, WithReachability()))
}

func TestValidate_ActionsAndMappings(t *testing.T) {
	flow := parse(t, `
id: actions
inputs:
  - name: id
    type: long
  - name: when
    type: someday
states:
  - id: start
    type: action
    actions:
      - set:
          name: flowScope.count
          value: 1
          type: wholenumber
    transitions:
      - on: ok
        to: done
  - id: done
    type: end
`)

	err := Validate(flow)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{
		"inputs[when].type",
		"states[start].actions[0].type",
	}, keys(err))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Key: "start-state", Reason: "names no state", Value: "x"}
	assert.Equal(t, "start-state: names no state (got x)", err.Error())

	err = &ValidationError{Key: "states", Reason: "flow declares no states"}
	assert.Equal(t, "states: flow declares no states", err.Error())

	assert.Nil(t, ValidationErrors(errors.New("plain")))
}
