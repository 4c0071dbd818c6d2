package value

import "strings"

// TypeKind enumerates the closed set of FEEL types.
type TypeKind uint8

const (
	TAny TypeKind = iota
	TNull
	TNumber
	TBoolean
	TString
	TDate
	TTime
	TDateTime
	TYearsMonthsDuration
	TDaysTimeDuration
	TList
	TContext
	TRange
	TFunction
)

// Type is a FEEL type descriptor, including the parametric shapes
// `list<T>`, `context<k:T,...>`, and `range<T>`.
type Type struct {
	Kind   TypeKind
	Elem   *Type            // list<T>, range<T>
	Fields map[string]*Type // context<k:T,...>
}

var (
	AnyType      = &Type{Kind: TAny}
	NullType     = &Type{Kind: TNull}
	NumberType   = &Type{Kind: TNumber}
	BooleanType  = &Type{Kind: TBoolean}
	StringType   = &Type{Kind: TString}
	DateType     = &Type{Kind: TDate}
	TimeType     = &Type{Kind: TTime}
	DateTimeType = &Type{Kind: TDateTime}
	YMDurationType = &Type{Kind: TYearsMonthsDuration}
	DTDurationType = &Type{Kind: TDaysTimeDuration}
)

// ListOf builds a list<T> type.
func ListOf(elem *Type) *Type { return &Type{Kind: TList, Elem: elem} }

// ContextOf builds a context<k:T,...> type.
func ContextOf(fields map[string]*Type) *Type { return &Type{Kind: TContext, Fields: fields} }

// RangeOf builds a range<T> type.
func RangeOf(elem *Type) *Type { return &Type{Kind: TRange, Elem: elem} }

// String renders the FEEL type name.
func (t *Type) String() string {
	if t == nil {
		return "Any"
	}
	switch t.Kind {
	case TAny:
		return "Any"
	case TNull:
		return "Null"
	case TNumber:
		return "number"
	case TBoolean:
		return "boolean"
	case TString:
		return "string"
	case TDate:
		return "date"
	case TTime:
		return "time"
	case TDateTime:
		return "date and time"
	case TYearsMonthsDuration:
		return "years and months duration"
	case TDaysTimeDuration:
		return "days and time duration"
	case TList:
		return "list<" + t.Elem.String() + ">"
	case TContext:
		var b strings.Builder
		b.WriteString("context<")
		first := true
		for k, v := range t.Fields {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(k)
			b.WriteString(":")
			b.WriteString(v.String())
		}
		b.WriteString(">")
		return b.String()
	case TRange:
		return "range<" + t.Elem.String() + ">"
	case TFunction:
		return "function<...>"
	default:
		return "?"
	}
}

// IsSubtype reports whether t <= u: Any is top, Null inhabits
// every type, list<T> <= list<U> iff T <= U, context subtyping is
// structural width-and-depth (u's fields must all be present in t, with
// t's field type a subtype of u's).
func (t *Type) IsSubtype(u *Type) bool {
	if t == nil || u == nil {
		return true
	}
	if u.Kind == TAny {
		return true
	}
	if t.Kind == TNull {
		return true
	}
	if t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case TList:
		return t.Elem.IsSubtype(u.Elem)
	case TRange:
		return t.Elem.IsSubtype(u.Elem)
	case TContext:
		for k, uf := range u.Fields {
			tf, ok := t.Fields[k]
			if !ok || !tf.IsSubtype(uf) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// TypeDescriptor is a FEEL type used as a runtime value (e.g. the RHS of
// `instance of`, or the result of a type-query BIF).
type TypeDescriptor struct {
	T *Type
}

func (TypeDescriptor) Kind() Kind { return KindType }

func (d TypeDescriptor) String() string { return d.T.String() }

// TypeOf returns the FEEL type of a runtime value.
func TypeOf(v Value) *Type {
	switch val := v.(type) {
	case Null, Error:
		return NullType
	case Boolean:
		return BooleanType
	case Number:
		return NumberType
	case Str:
		return StringType
	case Date:
		return DateType
	case Time:
		return TimeType
	case DateTime:
		return DateTimeType
	case YearsMonthsDuration:
		return YMDurationType
	case DaysTimeDuration:
		return DTDurationType
	case List:
		elem := AnyType
		if len(val.Elements) > 0 {
			elem = TypeOf(val.Elements[0])
		}
		return ListOf(elem)
	case *Context:
		fields := make(map[string]*Type, val.Len())
		for _, k := range val.Keys() {
			fv, _ := val.Get(k)
			fields[k] = TypeOf(fv)
		}
		return ContextOf(fields)
	case Range:
		return RangeOf(TypeOf(val.Low))
	case Function:
		return &Type{Kind: TFunction}
	case TypeDescriptor:
		return &Type{Kind: TAny}
	default:
		return AnyType
	}
}
