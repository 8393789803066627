// Package prelude loads the builtin-operator prelude: the base Env
// bindings available to every inference pass before any user HIR is
// considered. It generalizes the teacher's funxy.yaml dependency
// declarations (internal/ext/config.go's Config/Dep/BindSpec) from
// "declare a Go package binding" to "declare a prelude scheme" — same
// shape (a top-level document of named, tagged entries, parsed with
// gopkg.in/yaml.v3 and validated before use), different payload.
package prelude

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neverRare/butter-typeinfer/internal/tyenv"
	"github.com/neverRare/butter-typeinfer/internal/typesystem"
)

// Doc is the top-level shape of a prelude YAML file.
type Doc struct {
	Bindings []Binding `yaml:"bindings"`
}

// Binding declares one identifier's scheme: its quantified type
// variables (ForAll) and its type, built against those variables.
type Binding struct {
	Name   string   `yaml:"name"`
	Mut    bool     `yaml:"mut,omitempty"`
	ForAll []string `yaml:"forall,omitempty"`
	Type   TypeSpec `yaml:"type"`
}

// TypeSpec is a one-of descriptor for typesystem.Type, mirroring the
// mutually-exclusive yaml tags of the teacher's ext.BindSpec
// (Type/Func/Const): exactly one field should be populated per node.
type TypeSpec struct {
	Var         string      `yaml:"var,omitempty"`
	Num         *struct{}   `yaml:"num,omitempty"`
	Bool        *struct{}   `yaml:"bool,omitempty"`
	Array       *TypeSpec   `yaml:"array,omitempty"`
	Fun         *FunSpec    `yaml:"fun,omitempty"`
	Record      []FieldSpec `yaml:"record,omitempty"`
	Tuple       []TypeSpec  `yaml:"tuple,omitempty"`
	RecordTuple []FieldSpec `yaml:"record_tuple,omitempty"`
}

type FunSpec struct {
	Param  TypeSpec `yaml:"param"`
	Result TypeSpec `yaml:"result"`
}

type FieldSpec struct {
	Name string   `yaml:"name"`
	Type TypeSpec `yaml:"type"`
}

// Load reads path and builds its bindings into a fresh Env, allocating
// quantified variables from vs. infer.Program takes no VarState and
// allocates from a new one of its own, so vs is not shared with the
// driver there.
func Load(path string, vs *typesystem.VarState) (*tyenv.Env, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prelude: reading %s: %w", path, err)
	}
	env, err := ParseInto(data, vs)
	if err != nil {
		return nil, fmt.Errorf("prelude: %s: %w", path, err)
	}
	return env, nil
}

// ParseInto parses prelude YAML content from bytes into a fresh Env.
func ParseInto(data []byte, vs *typesystem.VarState) (*tyenv.Env, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	env := tyenv.New()
	seen := make(map[string]bool, len(doc.Bindings))
	for _, b := range doc.Bindings {
		if b.Name == "" {
			return nil, fmt.Errorf("binding with empty name")
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("binding %q declared more than once", b.Name)
		}
		seen[b.Name] = true

		names := make(map[string]typesystem.Var, len(b.ForAll))
		forAll := typesystem.NewVarSet()
		for _, n := range b.ForAll {
			v := vs.NewNamed(n)
			names[n] = v
			forAll.Add(typesystem.KindType, v)
		}
		ty, err := b.Type.build(names)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b.Name, err)
		}
		env.Insert(b.Name, tyenv.SchemeMut{
			IsMut:  b.Mut,
			Scheme: tyenv.Scheme{ForAll: forAll, Ty: ty},
		})
	}
	return env, nil
}

func (t TypeSpec) build(names map[string]typesystem.Var) (typesystem.Type, error) {
	switch {
	case t.Var != "":
		v, ok := names[t.Var]
		if !ok {
			return nil, fmt.Errorf("undeclared type variable %q (add it to forall)", t.Var)
		}
		return typesystem.TVar{V: v}, nil
	case t.Num != nil:
		return typesystem.TNum{}, nil
	case t.Bool != nil:
		return typesystem.TBool{}, nil
	case t.Array != nil:
		elem, err := t.Array.build(names)
		if err != nil {
			return nil, err
		}
		return typesystem.TArray{Elem: elem}, nil
	case t.Fun != nil:
		param, err := t.Fun.Param.build(names)
		if err != nil {
			return nil, err
		}
		result, err := t.Fun.Result.build(names)
		if err != nil {
			return nil, err
		}
		return typesystem.TFun{Param: param, Result: result}, nil
	case t.Record != nil:
		fields := make(map[string]typesystem.Type, len(t.Record))
		for _, f := range t.Record {
			fty, err := f.Type.build(names)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = fty
		}
		return typesystem.TRecord{Keyed: typesystem.Keyed{Fields: fields}}, nil
	case t.Tuple != nil:
		seq := make([]typesystem.Type, len(t.Tuple))
		for i, el := range t.Tuple {
			ty, err := el.build(names)
			if err != nil {
				return nil, err
			}
			seq[i] = ty
		}
		return typesystem.TTuple{Elems: typesystem.OrderedAndType{Row: false, Seq: seq}}, nil
	case t.RecordTuple != nil:
		seq := make([]typesystem.NamedType, len(t.RecordTuple))
		for i, f := range t.RecordTuple {
			fty, err := f.Type.build(names)
			if err != nil {
				return nil, err
			}
			seq[i] = typesystem.NamedType{Name: f.Name, Ty: fty}
		}
		return typesystem.TRecordTuple{Elems: typesystem.OrderedAndNamed{Row: false, Seq: seq}}, nil
	default:
		return nil, fmt.Errorf("empty type spec")
	}
}
