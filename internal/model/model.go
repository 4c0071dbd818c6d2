// Package model implements the DMN model evaluator: it walks a model's
// dependency graph and exposes `evaluate_invocable(name, input_context) ->
// Value`. Model construction (DMN XML parsing) is out of scope; Model
// values are built directly in Go rather than decoded from XML files on
// disk.
package model

import (
	"fmt"

	"github.com/dmntk-go/dmntk/internal/value"
)

// Kind discriminates the three invocable element kinds: decision,
// business knowledge model, decision service.
type Kind uint8

const (
	KindDecision Kind = iota
	KindBusinessKnowledgeModel
	KindDecisionService
)

// Invocable is one node of the model graph: a decision, business knowledge
// model, or decision service, with its compiled evaluator and its
// information/knowledge requirements (by id).
type Invocable struct {
	ID             string
	Name           string // canonical FEEL name, looked up by evaluate_invocable
	OutputVariable string // name under which this invocable's result is inserted for dependents

	Kind     Kind
	Requires []string // IDs of prerequisite invocables (requiredDecision/requiredKnowledge)

	// Evaluator is the compiled body. nil for KindDecisionService, whose
	// result is instead assembled from ServiceOutputs below.
	Evaluator value.Evaluator

	// ServiceOutputs lists the IDs of the decisions a decision service
	// exposes as its declared output set. A decision service evaluates only
	// its declared inputs and outputs; prerequisites outside this set are
	// never returned.
	ServiceOutputs []string
}

// Model is the full graph of invocables that a ModelEvaluator compiles.
type Model struct {
	Invocables []*Invocable
}

// ModelEvaluator is the immutable, concurrency-safe compiled form of a
// Model: built once, evaluated any number of times from any number of
// goroutines sharing only immutable data.
type ModelEvaluator struct {
	byID   map[string]*Invocable
	byName map[string]*Invocable
	order  map[string]int // topological rank, for deterministic dependency walks
}

// Build compiles m into a ModelEvaluator, topologically ordering invocables
// by their requirement edges. Returns an error on a duplicate id/name or a
// dependency cycle.
func Build(m *Model) (*ModelEvaluator, error) {
	byID := make(map[string]*Invocable, len(m.Invocables))
	byName := make(map[string]*Invocable, len(m.Invocables))
	for _, inv := range m.Invocables {
		if _, dup := byID[inv.ID]; dup {
			return nil, fmt.Errorf("model: duplicate invocable id %q", inv.ID)
		}
		if _, dup := byName[inv.Name]; dup {
			return nil, fmt.Errorf("model: duplicate invocable name %q", inv.Name)
		}
		byID[inv.ID] = inv
		byName[inv.Name] = inv
	}

	order := make(map[string]int, len(m.Invocables))
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(m.Invocables))
	rank := 0
	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("model: dependency cycle at %q", id)
		}
		state[id] = visiting
		inv, ok := byID[id]
		if !ok {
			return fmt.Errorf("model: unknown required invocable %q", id)
		}
		for _, dep := range inv.Requires {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[id] = done
		order[id] = rank
		rank++
		return nil
	}
	for _, inv := range m.Invocables {
		if err := visit(inv.ID); err != nil {
			return nil, err
		}
	}

	return &ModelEvaluator{byID: byID, byName: byName, order: order}, nil
}

// EvaluateInvocable looks up name and evaluates it: copies input into a
// fresh evaluation context, runs every prerequisite in
// dependency order inserting its result under its declared output-variable
// name, then produces the target invocable's own result.
func (me *ModelEvaluator) EvaluateInvocable(name string, input *value.Context) value.Value {
	inv, ok := me.byName[name]
	if !ok {
		return value.NullOf("invocable '%s' not found", name)
	}

	ctx := value.NewContext()
	if input != nil {
		for _, k := range input.Keys() {
			v, _ := input.Get(k)
			ctx.Set(k, v)
		}
	}
	scope := value.NewRootScope(ctx)

	for _, depID := range me.orderedDeps(inv.ID) {
		dep := me.byID[depID]
		ctx.Set(dep.OutputVariable, me.evalOne(dep, scope))
	}
	return me.evalOne(inv, scope)
}

// orderedDeps returns the transitive closure of inv's requirements
// (excluding inv itself), sorted by the model's precomputed topological
// rank so every dependency is evaluated before its dependents.
func (me *ModelEvaluator) orderedDeps(id string) []string {
	seen := map[string]bool{}
	var collect func(id string)
	var deps []string
	collect = func(id string) {
		inv := me.byID[id]
		for _, dep := range inv.Requires {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			collect(dep)
			deps = append(deps, dep)
		}
	}
	collect(id)
	sortByRank(deps, me.order)
	return deps
}

func sortByRank(ids []string, order map[string]int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && order[ids[j-1]] > order[ids[j]]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

func (me *ModelEvaluator) evalOne(inv *Invocable, scope *value.Scope) value.Value {
	if inv.Kind == KindDecisionService {
		out := value.NewContext()
		for _, id := range inv.ServiceOutputs {
			d := me.byID[id]
			out.Set(d.OutputVariable, me.evalOne(d, scope))
		}
		return out
	}
	return inv.Evaluator(scope)
}
