package compiler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mpoindexter/spring-webflow/internal/dto"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"gopkg.in/yaml.v3"
)

// Encode renders a flow as a YAML document that Parse accepts.
func Encode(flow *model.Flow) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(flow)); err != nil {
		return nil, fmt.Errorf("failed to encode flow %s: %w", flow.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToDocument converts the flow model to its document form.
func ToDocument(flow *model.Flow) *dto.Flow {
	doc := &dto.Flow{
		ID:                flow.ID,
		Parent:            strings.Join(flow.Parents, ", "),
		Abstract:          flow.Abstract,
		StartState:        flow.StartState,
		Attributes:        attributeDocs(flow.Attributes),
		Secured:           securedDoc(flow.Secured),
		OnStart:           actionDocs(flow.OnStart),
		GlobalTransitions: transitionDocs(flow.GlobalTransitions),
		OnEnd:             actionDocs(flow.OnEnd),
		ExceptionHandlers: handlerDocs(flow.ExceptionHandlers),
	}
	for _, in := range flow.Inputs {
		doc.Inputs = append(doc.Inputs, mappingDoc(in.Mapping))
	}
	for _, out := range flow.Outputs {
		doc.Outputs = append(doc.Outputs, mappingDoc(out.Mapping))
	}
	for _, s := range flow.States {
		doc.States = append(doc.States, stateDoc(s))
	}
	return doc
}

func stateDoc(s model.State) dto.State {
	var sd dto.State
	fill := func(b *model.StateBase) {
		sd.ID = b.ID
		sd.Attributes = attributeDocs(b.Attributes)
		sd.Secured = securedDoc(b.Secured)
		sd.OnEntry = actionDocs(b.OnEntry)
		sd.ExceptionHandlers = handlerDocs(b.ExceptionHandlers)
	}

	switch st := s.(type) {
	case *model.ActionState:
		fill(&st.StateBase)
		sd.Type = StateTypeAction
		sd.Actions = actionDocs(st.Actions)
		sd.Transitions = transitionDocs(st.Transitions)
		sd.OnExit = actionDocs(st.OnExit)
	case *model.ViewState:
		fill(&st.StateBase)
		sd.Type = StateTypeView
		sd.View = st.View
		sd.Redirect = st.Redirect
		sd.Popup = st.Popup
		sd.Model = st.Model
		sd.OnRender = actionDocs(st.OnRender)
		sd.Transitions = transitionDocs(st.Transitions)
		sd.OnExit = actionDocs(st.OnExit)
	case *model.DecisionState:
		fill(&st.StateBase)
		sd.Type = StateTypeDecision
		for _, i := range st.Ifs {
			sd.Ifs = append(sd.Ifs, dto.If{Test: i.Test, Then: i.Then, Else: i.Else})
		}
		sd.OnExit = actionDocs(st.OnExit)
	case *model.EndState:
		fill(&st.StateBase)
		sd.Type = StateTypeEnd
		sd.View = st.View
		sd.Commit = st.Commit
		for _, o := range st.Outputs {
			sd.Outputs = append(sd.Outputs, mappingDoc(o.Mapping))
		}
	}
	return sd
}

func transitionDocs(ts []*model.Transition) []dto.Transition {
	var out []dto.Transition
	for _, t := range ts {
		out = append(out, dto.Transition{
			On:          t.On,
			OnException: t.OnException,
			To:          t.To,
			Bind:        t.Bind,
			Validate:    t.Validate,
			History:     t.History,
			Attributes:  attributeDocs(t.Attributes),
			Secured:     securedDoc(t.Secured),
			Actions:     actionDocs(t.Actions),
		})
	}
	return out
}

func actionDocs(actions []model.Action) []dto.Action {
	var out []dto.Action
	for _, a := range actions {
		switch act := a.(type) {
		case *model.Evaluate:
			out = append(out, dto.Action{ActionEvaluate: dto.Evaluate{
				Expression: act.Expression,
				Result:     act.Result,
				ResultType: act.ResultType,
				Attributes: attributeDocs(act.Attributes),
			}})
		case *model.Set:
			out = append(out, dto.Action{ActionSet: dto.Set{
				Name:       act.Name,
				Value:      act.Value,
				Type:       act.Type,
				Attributes: attributeDocs(act.Attributes),
			}})
		case *model.Render:
			out = append(out, dto.Action{ActionRender: dto.Render{
				Fragments:  act.Fragments,
				Attributes: attributeDocs(act.Attributes),
			}})
		}
	}
	return out
}

func attributeDocs(attrs []*model.Attribute) []dto.Attribute {
	var out []dto.Attribute
	for _, a := range attrs {
		out = append(out, dto.Attribute{Name: a.Name, Type: a.Type, Value: a.Value})
	}
	return out
}

func securedDoc(s *model.Secured) *dto.Secured {
	if s == nil {
		return nil
	}
	return &dto.Secured{Attributes: s.Attributes, Match: s.Match}
}

func mappingDoc(m model.Mapping) dto.Mapping {
	return dto.Mapping{Name: m.Name, Value: m.Value, Type: m.Type, Required: m.Required}
}

func handlerDocs(hs []*model.ExceptionHandler) []dto.ExceptionHandler {
	var out []dto.ExceptionHandler
	for _, h := range hs {
		out = append(out, dto.ExceptionHandler{Bean: h.Bean})
	}
	return out
}
