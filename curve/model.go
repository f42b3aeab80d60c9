package curve

// Func is any single-argument numeric function sampled by index.
type Func func(n int) float64

// Sample is one evaluated point: V = f(N).
type Sample struct {
	V float64 `yaml:"v"`
	N int     `yaml:"n"`
}

// Curve holds samples in strictly increasing N order.
type Curve []Sample

func (c Curve) Values() []float64 {
	vs := make([]float64, len(c))

	for idx, s := range c {
		vs[idx] = s.V
	}

	return vs
}

// Truncate returns the first n samples, or the curve itself if it is not longer than n.
func (c Curve) Truncate(n int) Curve {
	if n < 0 {
		n = 0
	}

	if len(c) <= n {
		return c
	}

	return c[:n]
}

type Storage interface {
	Load(key string) (c Curve, err error)
	Save(key string, c Curve) error
}
