package catalog

import (
	"fmt"
	"math"

	"github.com/sgostarter/libgrowth/curve"
	"github.com/spf13/cast"
)

var specs = [familyCount]Spec{
	FamilyLog: {
		Key:  "log",
		Name: "log(n)",
		Args: map[string]Binding{
			ArgTimes: Var(VarCoefficient),
		},
		bind: func(args map[string]float64) curve.Func {
			c := args[ArgTimes]

			return func(n int) float64 {
				return math.Log(float64(n)) * c
			}
		},
	},
	FamilyNLogN: {
		Key:  "nlogn",
		Name: "nlog(n)",
		Args: map[string]Binding{
			ArgTimes: Var(VarCoefficient),
		},
		bind: func(args map[string]float64) curve.Func {
			c := args[ArgTimes]

			return func(n int) float64 {
				x := float64(n)

				return x * math.Log(x) * c
			}
		},
	},
	FamilyNSquareLogN: {
		Key:  "nSquarelogn",
		Name: "(n^2)log(n)",
		Args: map[string]Binding{
			ArgTimes: Var(VarCoefficient),
		},
		bind: func(args map[string]float64) curve.Func {
			c := args[ArgTimes]

			return func(n int) float64 {
				x := float64(n)

				return x * x * math.Log(x) * c
			}
		},
	},
	FamilyNPow: {
		Key:    "npow",
		Name:   "n^",
		Suffix: &Binding{Var: VarPower},
		Args: map[string]Binding{
			ArgTimes: Var(VarCoefficient),
			ArgPower: Var(VarPower),
		},
		bind: func(args map[string]float64) curve.Func {
			c, p := args[ArgTimes], args[ArgPower]

			return func(n int) float64 {
				return math.Pow(float64(n), p) * c
			}
		},
	},
	FamilyN: {
		Key:  "n",
		Name: "n",
		Args: map[string]Binding{
			ArgTimes: Var(VarCoefficient),
		},
		bind: func(args map[string]float64) curve.Func {
			c := args[ArgTimes]

			return func(n int) float64 {
				return c * float64(n)
			}
		},
	},
}

func (f Family) Valid() bool {
	return f >= 0 && f < familyCount
}

func (f Family) String() string {
	if !f.Valid() {
		return fmt.Sprintf("family(%d)", int(f))
	}

	return specs[f].Key
}

func Families() []Family {
	fs := make([]Family, 0, familyCount)

	for f := Family(0); f < familyCount; f++ {
		fs = append(fs, f)
	}

	return fs
}

func ParseFamily(key string) (Family, error) {
	for f := Family(0); f < familyCount; f++ {
		if specs[f].Key == key {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, key)
}

func GetSpec(f Family) (Spec, error) {
	if !f.Valid() {
		return Spec{}, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
	}

	return specs[f], nil
}

// Resolve binds vars into family f. sweepVar names the variable rendered as the
// coefficient of the display name "<name><suffix> * <coefficient>".
func Resolve(f Family, sweepVar string, vars map[string]any) (r Resolved, err error) {
	spec, err := GetSpec(f)
	if err != nil {
		return
	}

	name := spec.Name

	if spec.Suffix != nil {
		suffix, e := renderBinding(*spec.Suffix, vars)
		if e != nil {
			err = e

			return
		}

		name += suffix
	}

	coefficient, err := renderBinding(Var(sweepVar), vars)
	if err != nil {
		return
	}

	args := make(map[string]float64, len(spec.Args))

	for key, binding := range spec.Args {
		v, e := lookupBinding(binding, vars)
		if e != nil {
			err = e

			return
		}

		fv, e := cast.ToFloat64E(v)
		if e != nil {
			err = fmt.Errorf("%w: %s=%v: %v", ErrBadBinding, key, v, e)

			return
		}

		args[key] = fv
	}

	r = Resolved{
		Family: f,
		Args:   args,
		Name:   name + " * " + coefficient,
		Fn:     spec.bind(args),
	}

	return
}

func lookupBinding(b Binding, vars map[string]any) (any, error) {
	if !b.IsVar() {
		return b.Value, nil
	}

	v, ok := vars[b.Var]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnboundVariable, b.Var)
	}

	return v, nil
}

func renderBinding(b Binding, vars map[string]any) (string, error) {
	v, err := lookupBinding(b, vars)
	if err != nil {
		return "", err
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v: %v", ErrBadBinding, v, err)
	}

	return s, nil
}

func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
	}

	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(text []byte) error {
	pf, err := ParseFamily(string(text))
	if err != nil {
		return err
	}

	*f = pf

	return nil
}
