// Package dtable compiles a parsed decision-table structure into a
// value.Evaluator honoring one of the eleven DMN hit policies. It reuses the
// evaluator builder's Scope/Evaluator shapes rather than inventing its own
// execution model: a table is just another function body, a DecisionTable
// variant alongside the other FunctionBody kinds.
package dtable

import (
	"sort"

	"github.com/dmntk-go/dmntk/internal/value"
)

// HitPolicy is the table-level attribute governing how matching rules
// combine into a result.
type HitPolicy string

const (
	Unique       HitPolicy = "U"
	AnyPolicy    HitPolicy = "A"
	Priority     HitPolicy = "P"
	First        HitPolicy = "F"
	RuleOrder    HitPolicy = "R"
	OutputOrder  HitPolicy = "O"
	Collect      HitPolicy = "C"
	CollectSum   HitPolicy = "C+"
	CollectCount HitPolicy = "C#"
	CollectMin   HitPolicy = "C<"
	CollectMax   HitPolicy = "C>"
)

// Input is one input column: a compiled expression producing the value
// tested against each rule's unary-tests cell in that column.
type Input struct {
	Name string
	Expr value.Evaluator
}

// Output is one output column. AllowedValues, when non-empty, gives the
// declared ordered priority list used by the P and O hit policies; its
// entries are compared against each value's FEEL canonical string form.
type Output struct {
	Name          string
	AllowedValues []string
}

// Rule is one row: one compiled unary-tests evaluator per input column
// (nil means the cell is the wildcard `-`, always matching) and one
// compiled value evaluator per output column.
type Rule struct {
	Tests   []value.Evaluator
	Outputs []value.Evaluator
}

// Table is a fully compiled decision table, ready to build into a single
// value.Evaluator via Build.
type Table struct {
	Inputs  []Input
	Outputs []Output
	Rules   []Rule
	Policy  HitPolicy
}

// Build returns the Scope -> Value evaluator for t. The evaluator binds the
// implicit `?` name to each input's value, column by column, while testing
// rules, exactly as a standalone unary-tests expression would expect it
// bound by its caller (pkg/ast.UnaryTests, internal/evaluator's
// buildUnaryTests).
func (t *Table) Build() value.Evaluator {
	return func(scope *value.Scope) value.Value {
		inputValues := make([]value.Value, len(t.Inputs))
		for i, in := range t.Inputs {
			inputValues[i] = in.Expr(scope)
		}

		var matched []int
		for ri, rule := range t.Rules {
			if ruleMatches(rule, inputValues, scope) {
				matched = append(matched, ri)
			}
		}

		return t.apply(matched, scope)
	}
}

func ruleMatches(rule Rule, inputValues []value.Value, scope *value.Scope) bool {
	for c, test := range rule.Tests {
		if test == nil {
			continue // wildcard `-`
		}
		frame := value.NewContext()
		frame.Set("?", inputValues[c])
		r := test(scope.Push(frame))
		b, ok := r.(value.Boolean)
		if !ok || !b.V {
			return false
		}
	}
	return true
}

// rowResult evaluates one rule's output columns into either a single Value
// (single-output table) or a *value.Context keyed by output name
// (multi-output table).
func (t *Table) rowResult(ruleIdx int, scope *value.Scope) value.Value {
	rule := t.Rules[ruleIdx]
	if len(t.Outputs) == 1 && t.Outputs[0].Name == "" {
		return rule.Outputs[0](scope)
	}
	c := value.NewContext()
	for i, out := range t.Outputs {
		c.Set(out.Name, rule.Outputs[i](scope))
	}
	return c
}

func (t *Table) apply(matched []int, scope *value.Scope) value.Value {
	switch t.Policy {
	case Unique:
		return t.applyUnique(matched, scope)
	case AnyPolicy:
		return t.applyAny(matched, scope)
	case Priority:
		return t.applyPriority(matched, scope)
	case First:
		return t.applyFirst(matched, scope)
	case RuleOrder:
		return t.applyCollectRaw(matched, scope)
	case OutputOrder:
		return t.applyOutputOrder(matched, scope)
	case Collect:
		return t.applyCollectRaw(matched, scope)
	case CollectSum, CollectCount, CollectMin, CollectMax:
		return t.applyCollectAggregate(matched, scope)
	default:
		return value.NullOf("[hit-policy] unknown hit policy %q", string(t.Policy))
	}
}

func (t *Table) applyUnique(matched []int, scope *value.Scope) value.Value {
	switch len(matched) {
	case 0:
		return value.Null{}
	case 1:
		return t.rowResult(matched[0], scope)
	default:
		return value.NullOf("[hit-policy::U] multiple rules matched: %v", matched)
	}
}

func (t *Table) applyAny(matched []int, scope *value.Scope) value.Value {
	if len(matched) == 0 {
		return value.Null{}
	}
	first := t.rowResult(matched[0], scope)
	for _, ri := range matched[1:] {
		r := t.rowResult(ri, scope)
		eq := value.Equal(first, r)
		if eq.IsNone() {
			return value.NullOf("[hit-policy::A] matching rules disagree")
		}
		if ok, _ := eq.Bool(); !ok {
			return value.NullOf("[hit-policy::A] matching rules disagree")
		}
	}
	return first
}

func (t *Table) applyFirst(matched []int, scope *value.Scope) value.Value {
	if len(matched) == 0 {
		return value.Null{}
	}
	return t.rowResult(matched[0], scope)
}

func (t *Table) applyCollectRaw(matched []int, scope *value.Scope) value.Value {
	out := make([]value.Value, len(matched))
	for i, ri := range matched {
		out[i] = t.rowResult(ri, scope)
	}
	return value.NewList(out...)
}

// priorityRank looks up v's canonical string form in allowed, returning its
// index, or len(allowed) (lowest priority) when not found.
func priorityRank(allowed []string, v value.Value) int {
	s := v.String()
	for i, a := range allowed {
		if a == s {
			return i
		}
	}
	return len(allowed)
}

func (t *Table) applyPriority(matched []int, scope *value.Scope) value.Value {
	if len(matched) == 0 {
		return value.Null{}
	}
	best := matched[0]
	bestRank := t.ruleRank(best, scope)
	for _, ri := range matched[1:] {
		rank := t.ruleRank(ri, scope)
		if rank < bestRank {
			best, bestRank = ri, rank
		}
	}
	return t.rowResult(best, scope)
}

// ruleRank computes the lexicographic priority-rank tuple for rule ri
// collapsed to a single comparable int: each output column contributes
// rank*width, most-significant (first) output column first.
func (t *Table) ruleRank(ri int, scope *value.Scope) int {
	rank := 0
	for oi, out := range t.Outputs {
		v := t.Rules[ri].Outputs[oi](scope)
		r := priorityRank(out.AllowedValues, v)
		rank = rank*1000 + r
	}
	return rank
}

func (t *Table) applyOutputOrder(matched []int, scope *value.Scope) value.Value {
	type ranked struct {
		idx  int
		rank int
	}
	rs := make([]ranked, len(matched))
	for i, ri := range matched {
		rs[i] = ranked{ri, t.ruleRank(ri, scope)}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].rank < rs[j].rank })
	out := make([]value.Value, len(rs))
	for i, r := range rs {
		out[i] = t.rowResult(r.idx, scope)
	}
	return value.NewList(out...)
}

func (t *Table) applyCollectAggregate(matched []int, scope *value.Scope) value.Value {
	if t.Policy == CollectCount {
		return value.NumberFromInt64(int64(len(matched)))
	}
	if len(matched) == 0 {
		if t.Policy == CollectSum {
			return value.NumberFromInt64(0)
		}
		return value.Null{}
	}
	values := make([]value.Value, len(matched))
	for i, ri := range matched {
		values[i] = t.rowResult(ri, scope)
	}
	switch t.Policy {
	case CollectSum:
		return aggregateNumbers(values, "+")
	case CollectMin:
		return aggregateNumbers(values, "min")
	case CollectMax:
		return aggregateNumbers(values, "max")
	}
	return value.Null{}
}

func aggregateNumbers(values []value.Value, op string) value.Value {
	acc, ok := values[0].(value.Number)
	if !ok {
		return value.NullOf("[hit-policy::collect] non-numeric output cannot be aggregated")
	}
	for _, v := range values[1:] {
		n, ok := v.(value.Number)
		if !ok {
			return value.NullOf("[hit-policy::collect] non-numeric output cannot be aggregated")
		}
		switch op {
		case "+":
			acc = value.Number{D: acc.D.Add(n.D)}
		case "min":
			if n.D.Cmp(acc.D) < 0 {
				acc = n
			}
		case "max":
			if n.D.Cmp(acc.D) > 0 {
				acc = n
			}
		}
	}
	return acc
}
