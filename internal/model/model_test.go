package model

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/evaluator"
	"github.com/dmntk-go/dmntk/internal/parser"
	"github.com/dmntk-go/dmntk/internal/value"
)

func mustEval(t *testing.T, src string) value.Evaluator {
	t.Helper()
	e, err := parser.ParseExpression(src, nil)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	ev, err := evaluator.Build(e, src, "")
	if err != nil {
		t.Fatalf("build %q: %v", src, err)
	}
	return ev
}

// TestSimpleDependencyChain grounds a two-level decision graph: a decision
// "Greeting" depends on a business knowledge model "Salutation".
func TestSimpleDependencyChain(t *testing.T) {
	m := &Model{
		Invocables: []*Invocable{
			{
				ID: "bkm1", Name: "Salutation", OutputVariable: "Salutation",
				Kind:      KindBusinessKnowledgeModel,
				Evaluator: mustEval(t, `"Hello"`),
			},
			{
				ID: "dec1", Name: "Greeting", OutputVariable: "Greeting",
				Kind:      KindDecision,
				Requires:  []string{"bkm1"},
				Evaluator: mustEval(t, `if name = "World" then Salutation else "?"`),
			},
		},
	}
	me, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ctx := value.NewContext()
	ctx.Set("name", value.Str{V: "World"})
	v := me.EvaluateInvocable("Greeting", ctx)
	s, ok := v.(value.Str)
	if !ok || s.V != "Hello" {
		t.Fatalf("got %v", v)
	}
}

func TestEvaluateInvocableNotFound(t *testing.T) {
	m := &Model{}
	me, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	v := me.EvaluateInvocable("Nope", value.NewContext())
	n, ok := v.(value.Null)
	if !ok || n.Trace == "" {
		t.Fatalf("got %v", v)
	}
}

func TestDependencyCycleIsRejected(t *testing.T) {
	m := &Model{
		Invocables: []*Invocable{
			{ID: "a", Name: "A", Requires: []string{"b"}, Evaluator: mustEval(t, "1")},
			{ID: "b", Name: "B", Requires: []string{"a"}, Evaluator: mustEval(t, "1")},
		},
	}
	if _, err := Build(m); err == nil {
		t.Fatalf("expected cycle error")
	}
}

// TestDecisionServiceReturnsOnlyDeclaredOutputs checks that a decision
// service's result contains only its declared outputs, not every
// prerequisite it pulled in along the way.
func TestDecisionServiceReturnsOnlyDeclaredOutputs(t *testing.T) {
	m := &Model{
		Invocables: []*Invocable{
			{ID: "internal", Name: "Internal", OutputVariable: "Internal", Evaluator: mustEval(t, "1")},
			{ID: "pub", Name: "Public", OutputVariable: "Public", Requires: []string{"internal"}, Evaluator: mustEval(t, "Internal + 1")},
			{
				ID: "svc", Name: "MyService", Kind: KindDecisionService,
				Requires:       []string{"pub"},
				ServiceOutputs: []string{"pub"},
			},
		},
	}
	me, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	v := me.EvaluateInvocable("MyService", value.NewContext())
	c, ok := v.(*value.Context)
	if !ok {
		t.Fatalf("got %v", v)
	}
	if c.Len() != 1 {
		t.Fatalf("expected only declared output, got %v", c)
	}
	pub, _ := c.Get("Public")
	if pub.String() != "2" {
		t.Fatalf("got %v", pub)
	}
}

// TestAdjudicationLikeModel exercises a decision chained off a business
// knowledge model, producing a categorical result.
func TestAdjudicationLikeModel(t *testing.T) {
	m := &Model{
		Invocables: []*Invocable{
			{
				ID: "bkm", Name: "ScoreModel", OutputVariable: "Score",
				Kind:      KindBusinessKnowledgeModel,
				Evaluator: mustEval(t, "Income / 1000 - Debt / 500"),
			},
			{
				ID: "dec", Name: "Adjudication", OutputVariable: "Adjudication",
				Kind:      KindDecision,
				Requires:  []string{"bkm"},
				Evaluator: mustEval(t, `if Score >= 1 then "ACCEPT" else "DECLINE"`),
			},
		},
	}
	me, err := Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ctx := value.NewContext()
	ctx.Set("Income", value.NumberFromInt64(5000))
	ctx.Set("Debt", value.NumberFromInt64(500))
	v := me.EvaluateInvocable("Adjudication", ctx)
	s, ok := v.(value.Str)
	if !ok || s.V != "ACCEPT" {
		t.Fatalf("got %v", v)
	}
}
