package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/mpoindexter/spring-webflow/internal/dto"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"gopkg.in/yaml.v3"
)

// State type names used in documents.
const (
	StateTypeAction   = "action"
	StateTypeView     = "view"
	StateTypeDecision = "decision"
	StateTypeEnd      = "end"
)

// Action keys used in documents.
const (
	ActionEvaluate = "evaluate"
	ActionSet      = "set"
	ActionRender   = "render"
)

// ErrInvalidDocument wraps every error returned by Parser.Parse.
var ErrInvalidDocument = errors.New("invalid flow document")

// Parser is responsible for converting raw flow documents into the flow model.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML (or JSON) flow document. Unknown keys are rejected.
func (p *Parser) Parse(data []byte) (*model.Flow, error) {
	flow, err := p.parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return flow, nil
}

func (p *Parser) parse(data []byte) (*model.Flow, error) {
	var doc dto.Flow
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse flow: empty document")
		}
		return nil, fmt.Errorf("failed to parse flow: %w", err)
	}
	return FromDocument(&doc)
}

// FromDocument builds the flow model from its document form.
func FromDocument(doc *dto.Flow) (*model.Flow, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("flow missing id")
	}

	flow := model.NewFlow(doc.ID)
	flow.Parents = model.ParseParents(doc.Parent)
	flow.Abstract = doc.Abstract
	flow.StartState = doc.StartState
	flow.Attributes = attributes(doc.Attributes)
	flow.Secured = secured(doc.Secured)
	for _, m := range doc.Inputs {
		flow.Inputs = append(flow.Inputs, &model.Input{Mapping: mapping(m)})
	}
	for _, m := range doc.Outputs {
		flow.Outputs = append(flow.Outputs, &model.Output{Mapping: mapping(m)})
	}
	flow.ExceptionHandlers = handlers(doc.ExceptionHandlers)

	var err error
	if flow.OnStart, err = actions(doc.OnStart); err != nil {
		return nil, fmt.Errorf("flow %s: on-start: %w", doc.ID, err)
	}
	if flow.OnEnd, err = actions(doc.OnEnd); err != nil {
		return nil, fmt.Errorf("flow %s: on-end: %w", doc.ID, err)
	}
	if flow.GlobalTransitions, err = transitions(doc.GlobalTransitions); err != nil {
		return nil, fmt.Errorf("flow %s: global-transitions: %w", doc.ID, err)
	}

	for i, sd := range doc.States {
		s, err := state(sd)
		if err != nil {
			return nil, fmt.Errorf("flow %s: state %d (%s): %w", doc.ID, i, sd.ID, err)
		}
		flow.AddState(s)
	}

	return flow, nil
}

func state(sd dto.State) (model.State, error) {
	base := model.StateBase{
		ID:                sd.ID,
		Attributes:        attributes(sd.Attributes),
		Secured:           secured(sd.Secured),
		ExceptionHandlers: handlers(sd.ExceptionHandlers),
	}
	var err error
	if base.OnEntry, err = actions(sd.OnEntry); err != nil {
		return nil, fmt.Errorf("on-entry: %w", err)
	}
	onExit, err := actions(sd.OnExit)
	if err != nil {
		return nil, fmt.Errorf("on-exit: %w", err)
	}
	trans, err := transitions(sd.Transitions)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(sd.Type) {
	case StateTypeAction:
		s := &model.ActionState{StateBase: base, Transitions: trans, OnExit: onExit}
		if s.Actions, err = actions(sd.Actions); err != nil {
			return nil, fmt.Errorf("actions: %w", err)
		}
		return s, nil
	case StateTypeView:
		s := &model.ViewState{
			StateBase:   base,
			View:        sd.View,
			Redirect:    sd.Redirect,
			Popup:       sd.Popup,
			Model:       sd.Model,
			Transitions: trans,
			OnExit:      onExit,
		}
		if s.OnRender, err = actions(sd.OnRender); err != nil {
			return nil, fmt.Errorf("on-render: %w", err)
		}
		return s, nil
	case StateTypeDecision:
		if len(trans) > 0 {
			return nil, fmt.Errorf("decision states route with 'if', not transitions")
		}
		s := &model.DecisionState{StateBase: base, OnExit: onExit}
		for _, i := range sd.Ifs {
			s.AddIf(model.NewIf(i.Test, i.Then, i.Else))
		}
		return s, nil
	case StateTypeEnd:
		if len(trans) > 0 || len(onExit) > 0 {
			return nil, fmt.Errorf("end states cannot declare transitions or exit actions")
		}
		s := &model.EndState{StateBase: base, View: sd.View, Commit: sd.Commit}
		for _, m := range sd.Outputs {
			s.Outputs = append(s.Outputs, &model.Output{Mapping: mapping(m)})
		}
		return s, nil
	case "":
		return nil, fmt.Errorf("state type is required")
	default:
		return nil, fmt.Errorf("unknown state type %q", sd.Type)
	}
}

func transitions(docs []dto.Transition) ([]*model.Transition, error) {
	var out []*model.Transition
	for _, td := range docs {
		acts, err := actions(td.Actions)
		if err != nil {
			return nil, fmt.Errorf("transition on %q: %w", td.On, err)
		}
		out = append(out, &model.Transition{
			On:          td.On,
			OnException: td.OnException,
			To:          td.To,
			Bind:        td.Bind,
			Validate:    td.Validate,
			History:     td.History,
			Attributes:  attributes(td.Attributes),
			Secured:     secured(td.Secured),
			Actions:     acts,
		})
	}
	return out, nil
}

// actions decodes single-key action maps. The short form "evaluate: expr" is
// accepted for evaluate actions.
func actions(docs []dto.Action) ([]model.Action, error) {
	var out []model.Action
	for i, ad := range docs {
		if len(ad) != 1 {
			return nil, fmt.Errorf("action %d: expected exactly one of evaluate, set, render", i)
		}
		for kind, body := range ad {
			a, err := action(kind, body)
			if err != nil {
				return nil, fmt.Errorf("action %d: %w", i, err)
			}
			out = append(out, a)
		}
	}
	return out, nil
}

func action(kind string, body any) (model.Action, error) {
	switch kind {
	case ActionEvaluate:
		var ed dto.Evaluate
		if expr, ok := body.(string); ok {
			ed.Expression = expr
		} else if err := decode(body, &ed); err != nil {
			return nil, err
		}
		if ed.Expression == "" {
			return nil, fmt.Errorf("evaluate: expression is required")
		}
		return &model.Evaluate{
			Expression: ed.Expression,
			Result:     ed.Result,
			ResultType: ed.ResultType,
			Attributes: attributes(ed.Attributes),
		}, nil
	case ActionSet:
		var sd dto.Set
		if err := decode(body, &sd); err != nil {
			return nil, err
		}
		if sd.Name == "" {
			return nil, fmt.Errorf("set: name is required")
		}
		return &model.Set{Name: sd.Name, Value: sd.Value, Type: sd.Type, Attributes: attributes(sd.Attributes)}, nil
	case ActionRender:
		var rd dto.Render
		if fragments, ok := body.(string); ok {
			rd.Fragments = fragments
		} else if err := decode(body, &rd); err != nil {
			return nil, err
		}
		return &model.Render{Fragments: rd.Fragments, Attributes: attributes(rd.Attributes)}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", kind)
	}
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func attributes(docs []dto.Attribute) []*model.Attribute {
	var out []*model.Attribute
	for _, a := range docs {
		out = append(out, &model.Attribute{Name: a.Name, Type: a.Type, Value: a.Value})
	}
	return out
}

func secured(doc *dto.Secured) *model.Secured {
	if doc == nil {
		return nil
	}
	return &model.Secured{Attributes: doc.Attributes, Match: doc.Match}
}

func mapping(m dto.Mapping) model.Mapping {
	return model.Mapping{Name: m.Name, Value: m.Value, Type: m.Type, Required: m.Required}
}

func handlers(docs []dto.ExceptionHandler) []*model.ExceptionHandler {
	var out []*model.ExceptionHandler
	for _, h := range docs {
		out = append(out, &model.ExceptionHandler{Bean: h.Bean})
	}
	return out
}
