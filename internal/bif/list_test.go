package bif

import (
	"testing"

	"github.com/dmntk-go/dmntk/internal/value"
)

func nums(xs ...int64) value.List {
	elems := make([]value.Value, len(xs))
	for i, x := range xs {
		elems[i] = value.NumberFromInt64(x)
	}
	return value.NewList(elems...)
}

func TestListContains(t *testing.T) {
	got := listContainsCore([]value.Value{nums(1, 2, 3), value.NumberFromInt64(2)})
	if !got.(value.Boolean).V {
		t.Fatalf("got %v", got)
	}
}

func TestMinMaxSum(t *testing.T) {
	l := nums(3, 1, 4, 1, 5)
	if minCore([]value.Value{l}).(value.Number).D.Int64() != 1 {
		t.Fatal("min wrong")
	}
	if maxCore([]value.Value{l}).(value.Number).D.Int64() != 5 {
		t.Fatal("max wrong")
	}
	if sumCore([]value.Value{l}).(value.Number).D.Int64() != 14 {
		t.Fatal("sum wrong")
	}
}

func TestMedianEvenCount(t *testing.T) {
	got := medianCore([]value.Value{nums(1, 2, 3, 4)})
	if got.(value.Number).D.String() != "2.5" {
		t.Fatalf("got %v", got)
	}
}

func TestAppendConcatenate(t *testing.T) {
	got := appendCore([]value.Value{nums(1, 2), value.NumberFromInt64(3)})
	if len(got.(value.List).Elements) != 3 {
		t.Fatalf("got %v", got)
	}
	got = concatenateCore([]value.Value{nums(1, 2), nums(3, 4)})
	if len(got.(value.List).Elements) != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestInsertBeforeAndRemove(t *testing.T) {
	got := insertBeforeCore([]value.Value{nums(1, 2, 3), value.NumberFromInt64(1), value.NumberFromInt64(99)})
	l := got.(value.List)
	if l.Elements[0].(value.Number).D.Int64() != 99 {
		t.Fatalf("got %v", l)
	}
	got = removeCore([]value.Value{nums(1, 2, 3), value.NumberFromInt64(2)})
	l = got.(value.List)
	if len(l.Elements) != 2 || l.Elements[1].(value.Number).D.Int64() != 3 {
		t.Fatalf("got %v", l)
	}
}

func TestReverseIndexOf(t *testing.T) {
	got := reverseCore([]value.Value{nums(1, 2, 3)})
	l := got.(value.List)
	if l.Elements[0].(value.Number).D.Int64() != 3 {
		t.Fatalf("got %v", l)
	}
	got = indexOfCore([]value.Value{value.NewList(value.NumberFromInt64(1), value.NumberFromInt64(2), value.NumberFromInt64(1)), value.NumberFromInt64(1)})
	idx := got.(value.List)
	if len(idx.Elements) != 2 {
		t.Fatalf("got %v", idx)
	}
}

func TestDistinctValuesAndUnion(t *testing.T) {
	got := distinctValuesCore([]value.Value{nums(1, 1, 2, 2, 3)})
	if len(got.(value.List).Elements) != 3 {
		t.Fatalf("got %v", got)
	}
	got = unionCore([]value.Value{nums(1, 2), nums(2, 3)})
	if len(got.(value.List).Elements) != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestFlattenNested(t *testing.T) {
	nested := value.NewList(nums(1, 2), value.NumberFromInt64(3), nums(4))
	got := flattenCore([]value.Value{nested})
	if len(got.(value.List).Elements) != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestSortAscending(t *testing.T) {
	got := sortCore([]value.Value{nums(3, 1, 2)})
	l := got.(value.List)
	if l.Elements[0].(value.Number).D.Int64() != 1 || l.Elements[2].(value.Number).D.Int64() != 3 {
		t.Fatalf("got %v", l)
	}
}
