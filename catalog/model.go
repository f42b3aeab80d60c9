package catalog

import (
	"github.com/sgostarter/libgrowth/curve"
)

type Family int

const (
	FamilyLog Family = iota
	FamilyNLogN
	FamilyNSquareLogN
	FamilyNPow
	FamilyN

	familyCount
)

const (
	VarCoefficient = "i"
	VarPower       = "powerVal"

	ArgTimes = "times"
	ArgPower = "powe"
)

// Binding is either a literal value or a reference to a caller supplied variable.
type Binding struct {
	Var   string
	Value any
}

func Literal(v any) Binding {
	return Binding{Value: v}
}

func Var(name string) Binding {
	return Binding{Var: name}
}

func (b Binding) IsVar() bool {
	return b.Var != ""
}

// Spec is the declarative metadata of one family.
type Spec struct {
	Key    string
	Name   string
	Suffix *Binding
	Args   map[string]Binding

	bind func(args map[string]float64) curve.Func
}

// Resolved is a family with every binding replaced by a concrete value.
type Resolved struct {
	Family Family
	Args   map[string]float64
	Name   string
	Fn     curve.Func
}
