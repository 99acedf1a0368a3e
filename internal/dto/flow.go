package dto

// Flow is the document form of a flow definition.
// Tags are shared by the YAML parser, JSON encoding and front-matter decoding (mapstructure).
type Flow struct {
	ID                string             `json:"id" yaml:"id" mapstructure:"id"`
	Parent            string             `json:"parent,omitempty" yaml:"parent,omitempty" mapstructure:"parent"`
	Abstract          bool               `json:"abstract,omitempty" yaml:"abstract,omitempty" mapstructure:"abstract"`
	StartState        string             `json:"start-state,omitempty" yaml:"start-state,omitempty" mapstructure:"start-state"`
	Attributes        []Attribute        `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
	Secured           *Secured           `json:"secured,omitempty" yaml:"secured,omitempty" mapstructure:"secured"`
	Inputs            []Mapping          `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs"`
	Outputs           []Mapping          `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs"`
	OnStart           []Action           `json:"on-start,omitempty" yaml:"on-start,omitempty" mapstructure:"on-start"`
	States            []State            `json:"states,omitempty" yaml:"states,omitempty" mapstructure:"states"`
	GlobalTransitions []Transition       `json:"global-transitions,omitempty" yaml:"global-transitions,omitempty" mapstructure:"global-transitions"`
	OnEnd             []Action           `json:"on-end,omitempty" yaml:"on-end,omitempty" mapstructure:"on-end"`
	ExceptionHandlers []ExceptionHandler `json:"exception-handlers,omitempty" yaml:"exception-handlers,omitempty" mapstructure:"exception-handlers"`
}

// State is the document form of every state kind; Type selects which fields apply.
type State struct {
	ID                string             `json:"id" yaml:"id" mapstructure:"id"`
	Type              string             `json:"type" yaml:"type" mapstructure:"type"`
	Attributes        []Attribute        `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
	Secured           *Secured           `json:"secured,omitempty" yaml:"secured,omitempty" mapstructure:"secured"`
	OnEntry           []Action           `json:"on-entry,omitempty" yaml:"on-entry,omitempty" mapstructure:"on-entry"`
	ExceptionHandlers []ExceptionHandler `json:"exception-handlers,omitempty" yaml:"exception-handlers,omitempty" mapstructure:"exception-handlers"`

	// action states
	Actions []Action `json:"actions,omitempty" yaml:"actions,omitempty" mapstructure:"actions"`

	// view states
	View     string   `json:"view,omitempty" yaml:"view,omitempty" mapstructure:"view"`
	Redirect *bool    `json:"redirect,omitempty" yaml:"redirect,omitempty" mapstructure:"redirect"`
	Popup    *bool    `json:"popup,omitempty" yaml:"popup,omitempty" mapstructure:"popup"`
	Model    string   `json:"model,omitempty" yaml:"model,omitempty" mapstructure:"model"`
	OnRender []Action `json:"on-render,omitempty" yaml:"on-render,omitempty" mapstructure:"on-render"`

	// decision states
	Ifs []If `json:"if,omitempty" yaml:"if,omitempty" mapstructure:"if"`

	// end states
	Commit  *bool     `json:"commit,omitempty" yaml:"commit,omitempty" mapstructure:"commit"`
	Outputs []Mapping `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs"`

	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty" mapstructure:"transitions"`
	OnExit      []Action     `json:"on-exit,omitempty" yaml:"on-exit,omitempty" mapstructure:"on-exit"`
}

type Attribute struct {
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Value string `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
}

type Secured struct {
	Attributes string `json:"attributes" yaml:"attributes" mapstructure:"attributes"`
	Match      string `json:"match,omitempty" yaml:"match,omitempty" mapstructure:"match"`
}

type Mapping struct {
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Required *bool  `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
}

type ExceptionHandler struct {
	Bean string `json:"bean" yaml:"bean" mapstructure:"bean"`
}

type If struct {
	Test string `json:"test" yaml:"test" mapstructure:"test"`
	Then string `json:"then" yaml:"then" mapstructure:"then"`
	Else string `json:"else,omitempty" yaml:"else,omitempty" mapstructure:"else"`
}

type Transition struct {
	On          string      `json:"on,omitempty" yaml:"on,omitempty" mapstructure:"on"`
	OnException string      `json:"on-exception,omitempty" yaml:"on-exception,omitempty" mapstructure:"on-exception"`
	To          string      `json:"to,omitempty" yaml:"to,omitempty" mapstructure:"to"`
	Bind        *bool       `json:"bind,omitempty" yaml:"bind,omitempty" mapstructure:"bind"`
	Validate    *bool       `json:"validate,omitempty" yaml:"validate,omitempty" mapstructure:"validate"`
	History     string      `json:"history,omitempty" yaml:"history,omitempty" mapstructure:"history"`
	Attributes  []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
	Secured     *Secured    `json:"secured,omitempty" yaml:"secured,omitempty" mapstructure:"secured"`
	Actions     []Action    `json:"actions,omitempty" yaml:"actions,omitempty" mapstructure:"actions"`
}

// Action is a single-key map naming the action kind, e.g.
//
//	- evaluate: {expression: "orderService.save(order)", result: "flowScope.id"}
//	- evaluate: "orderService.save(order)"
type Action map[string]any

// Evaluate is the decoded body of an "evaluate" action.
type Evaluate struct {
	Expression string      `json:"expression" yaml:"expression" mapstructure:"expression"`
	Result     string      `json:"result,omitempty" yaml:"result,omitempty" mapstructure:"result"`
	ResultType string      `json:"result-type,omitempty" yaml:"result-type,omitempty" mapstructure:"result-type"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
}

// Set is the decoded body of a "set" action.
type Set struct {
	Name       string      `json:"name" yaml:"name" mapstructure:"name"`
	Value      string      `json:"value" yaml:"value" mapstructure:"value"`
	Type       string      `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
}

// Render is the decoded body of a "render" action.
type Render struct {
	Fragments  string      `json:"fragments" yaml:"fragments" mapstructure:"fragments"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
}
