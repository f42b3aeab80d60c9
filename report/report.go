package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sgostarter/libgrowth/classifier"
	"github.com/sgostarter/libgrowth/curve"
)

// BaselineColumn is the reserved column holding the baseline curve.
const BaselineColumn = "original"

// Report is the presentation form of a classification run: the baseline and every
// ranked curve as equal-length value sequences, ordered by Columns.
type Report struct {
	ID        uint64               `json:"id" yaml:"id"`
	Baseline  string               `json:"baseline" yaml:"baseline"`
	CreatedAt int64                `json:"created_at" yaml:"created_at"`
	Columns   []string             `json:"columns" yaml:"columns"`
	Values    map[string][]float64 `json:"values" yaml:"values"`
	Scores    map[string]float64   `json:"scores,omitempty" yaml:"scores,omitempty"`
	Failures  []string             `json:"failures,omitempty" yaml:"failures,omitempty"`
}

type Column struct {
	Name   string    `yaml:"name"`
	Score  *float64  `yaml:"score,omitempty"`
	Values []float64 `yaml:"values,flow"`
}

func FromResult(id uint64, name string, res *classifier.Result) *Report {
	r := &Report{
		ID:        id,
		Baseline:  name,
		CreatedAt: time.Now().Unix(),
		Values:    make(map[string][]float64),
		Scores:    make(map[string]float64),
	}

	if res == nil {
		return r
	}

	r.add(BaselineColumn, res.Baseline)

	for _, ranked := range res.Ranked {
		column := r.add(ranked.Name, ranked.Curve)
		r.Scores[column] = ranked.AvgDistance
	}

	for _, failure := range res.Failures {
		r.Failures = append(r.Failures, fmt.Sprintf("%s: %v", failure.Task.String(), failure.Err))
	}

	return r
}

// add appends a column, renaming it when the name is already taken.
func (r *Report) add(name string, c curve.Curve) string {
	column := name

	for idx := 2; ; idx++ {
		if _, ok := r.Values[column]; !ok {
			break
		}

		column = name + " #" + strconv.Itoa(idx)
	}

	r.Columns = append(r.Columns, column)
	r.Values[column] = c.Values()

	return column
}

// Table lists the columns in order.
func (r *Report) Table() []Column {
	cs := make([]Column, 0, len(r.Columns))

	for _, name := range r.Columns {
		c := Column{
			Name:   name,
			Values: r.Values[name],
		}

		if score, ok := r.Scores[name]; ok {
			s := score
			c.Score = &s
		}

		cs = append(cs, c)
	}

	return cs
}

// Length is the common length of every column.
func (r *Report) Length() int {
	if len(r.Columns) == 0 {
		return 0
	}

	return len(r.Values[r.Columns[0]])
}

func (r *Report) MarshalYAML() (interface{}, error) {
	return struct {
		ID        uint64   `yaml:"id"`
		Baseline  string   `yaml:"baseline"`
		CreatedAt int64    `yaml:"created_at"`
		Length    int      `yaml:"length"`
		Columns   []Column `yaml:"columns"`
		Failures  []string `yaml:"failures,omitempty"`
	}{
		ID:        r.ID,
		Baseline:  r.Baseline,
		CreatedAt: r.CreatedAt,
		Length:    r.Length(),
		Columns:   r.Table(),
		Failures:  r.Failures,
	}, nil
}
