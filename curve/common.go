package curve

import (
	"math"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Distance is the euclidean distance between two samples.
func Distance(a, b Sample) float64 {
	return math.Hypot(float64(a.N-b.N), a.V-b.V)
}

// AVGData accumulates distances for a running mean.
type AVGData struct {
	sum   float64
	count int
}

func (o *AVGData) Combine(d float64) {
	o.sum += d
	o.count++
}

func (o *AVGData) Count() int {
	return o.count
}

func (o *AVGData) Calc() (float64, error) {
	if o.count == 0 {
		return math.NaN(), ErrEmptyAggregate
	}

	return o.sum / float64(o.count), nil
}

//
//
//

func NewCommonStorage(root string) *CommStorage {
	return &CommStorage{
		root: root,
	}
}

type CommStorage struct {
	root string
}

func (stg *CommStorage) fileNameByKey(key string) string {
	return path.Join(stg.root, key)
}

func (stg *CommStorage) Load(key string) (c Curve, err error) {
	d, err := os.ReadFile(stg.fileNameByKey(key))
	if err != nil {
		return
	}

	err = yaml.Unmarshal(d, &c)

	return
}

func (stg *CommStorage) Save(key string, c Curve) (err error) {
	_ = os.MkdirAll(stg.root, 0700)

	d, err := yaml.Marshal(c)
	if err != nil {
		return
	}

	err = os.WriteFile(stg.fileNameByKey(key), d, 0600)

	return
}
