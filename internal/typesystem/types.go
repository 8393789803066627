package typesystem

import "strings"

// Type is the type-kind member of the algebra: either a bare variable or
// a constructor application (Cons, §4.1). It is a closed sum — the
// concrete implementations below are the only ones that exist.
type Type interface {
	isType()
	String() string
}

func (TVar) isType()         {}
func (TNum) isType()         {}
func (TBool) isType()        {}
func (TRef) isType()         {}
func (TArray) isType()       {}
func (TFun) isType()         {}
func (TRecord) isType()      {}
func (TTuple) isType()       {}
func (TRecordTuple) isType() {}
func (TUnion) isType()       {}

// TVar is an unbound type variable.
type TVar struct{ V Var }

func (t TVar) String() string { return t.V.String() }

// TNum is the sole numeric constructor; the language has no numeric
// tower to resolve (see spec Non-goals).
type TNum struct{}

func (TNum) String() string { return "number" }

type TBool struct{}

func (TBool) String() string { return "boolean" }

// TRef is a reference with a mutability and a referent type.
type TRef struct {
	Mut  MutType
	Elem Type
}

func (t TRef) String() string { return "&" + t.Mut.String() + " " + t.Elem.String() }

type TArray struct{ Elem Type }

func (t TArray) String() string { return "[" + t.Elem.String() + "]" }

// TFun is a function from a single parameter type (typically a
// RecordTuple, see §4.1) to a result type.
type TFun struct {
	Param  Type
	Result Type
}

func (t TFun) String() string { return t.Param.String() + " -> " + t.Result.String() }

// TRecord is a row-polymorphic record: an unordered, named Keyed shape.
type TRecord struct{ Keyed Keyed }

func (t TRecord) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for name, ty := range t.Keyed.Fields {
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(ty.String())
		b.WriteString(", ")
	}
	if t.Keyed.Rest != nil {
		b.WriteByte('*')
		b.WriteString(t.Keyed.Rest.String())
	}
	b.WriteByte(')')
	return b.String()
}

// TTuple is a row-polymorphic positional tuple.
type TTuple struct{ Elems OrderedAndType }

func (t TTuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	if t.Elems.Row {
		for _, ty := range t.Elems.Left {
			b.WriteString(ty.String())
			b.WriteString(", ")
		}
		b.WriteByte('*')
		b.WriteString(t.Elems.Rest.String())
		b.WriteString(", ")
		for _, ty := range t.Elems.Right {
			b.WriteString(ty.String())
			b.WriteString(", ")
		}
	} else {
		for _, ty := range t.Elems.Seq {
			b.WriteString(ty.String())
			b.WriteString(", ")
		}
	}
	b.WriteByte(')')
	return b.String()
}

// NamedType pairs a parameter name with its type; it is the element type
// of RecordTuple's ordered sequence.
type NamedType struct {
	Name string
	Ty   Type
}

// TRecordTuple is the function-parameter-list crossover constructor: it
// is simultaneously positional (for call-site ordering) and keyed (for
// named-argument calls). See OrderedAndNamed's intoKeyed/intoOrdered for
// the total conversions unification relies on.
type TRecordTuple struct{ Elems OrderedAndNamed }

func (t TRecordTuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	write := func(nt NamedType) {
		b.WriteString(nt.Name)
		b.WriteString(" = ")
		b.WriteString(nt.Ty.String())
		b.WriteString(", ")
	}
	if t.Elems.Row {
		for _, nt := range t.Elems.Left {
			write(nt)
		}
		b.WriteByte('*')
		b.WriteString(t.Elems.Rest.String())
		b.WriteString(", ")
		for _, nt := range t.Elems.Right {
			write(nt)
		}
	} else {
		for _, nt := range t.Elems.Seq {
			write(nt)
		}
	}
	b.WriteByte(')')
	return b.String()
}

// TUnion is a row-polymorphic tagged union (sum).
type TUnion struct{ Keyed Keyed }

func (t TUnion) String() string {
	var b strings.Builder
	b.WriteString("union(")
	for tag, assoc := range t.Keyed.Fields {
		b.WriteByte('@')
		b.WriteString(tag)
		b.WriteByte(' ')
		b.WriteString(assoc.String())
		b.WriteString(", ")
	}
	if t.Keyed.Rest != nil {
		b.WriteByte('*')
		b.WriteString(t.Keyed.Rest.String())
		b.WriteString(", ")
	}
	b.WriteByte(')')
	return b.String()
}

// Unit is the type RecordTuple(NonRow []): the empty-tuple, empty-record
// crossover used as the type of statements, assignments and absent
// values.
func Unit() Type {
	return TRecordTuple{Elems: OrderedAndNamed{Row: false, Seq: nil}}
}

// IsUnit reports whether t is structurally the unit type.
func IsUnit(t Type) bool {
	rt, ok := t.(TRecordTuple)
	return ok && !rt.Elems.Row && len(rt.Elems.Seq) == 0
}
