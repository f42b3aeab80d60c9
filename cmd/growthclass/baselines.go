package main

import (
	"fmt"
	"math"

	"github.com/sgostarter/libgrowth/curve"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type baseline struct {
	Formula string
	Fn      curve.Func
}

var baselines = map[string]baseline{
	"default": {
		Formula: "(4n^3 + n^2*log(n+1) + 1) / (2n + 3)",
		Fn: func(n int) float64 {
			x := float64(n)

			return (4*x*x*x + x*x*math.Log(x+1) + 1) / (2*x + 3)
		},
	},
	"n": {
		Formula: "n",
		Fn: func(n int) float64 {
			return float64(n)
		},
	},
	"n2": {
		Formula: "n^2",
		Fn: func(n int) float64 {
			return math.Pow(float64(n), 2)
		},
	},
	"n3": {
		Formula: "n^3",
		Fn: func(n int) float64 {
			return math.Pow(float64(n), 3)
		},
	},
	"nlogn": {
		Formula: "n*log(n)",
		Fn: func(n int) float64 {
			x := float64(n)

			return x * math.Log(x)
		},
	},
	"logn": {
		Formula: "log(n)",
		Fn: func(n int) float64 {
			return math.Log(float64(n))
		},
	},
}

func baselineNames() []string {
	names := maps.Keys(baselines)
	slices.Sort(names)

	return names
}

func lookupBaseline(name string) (baseline, error) {
	b, ok := baselines[name]
	if !ok {
		return baseline{}, fmt.Errorf("unknown baseline %q, see `growthclass baselines`", name)
	}

	return b, nil
}
