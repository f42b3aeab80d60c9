package classifier

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sgostarter/libgrowth/catalog"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/sweep"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTopK             = 5
	DefaultBaselineCacheTTL = time.Minute * 10
)

// Config carries every tunable of a classification run.
type Config struct {
	// MaxIndex is N: functions are sampled over [1, N).
	MaxIndex int `yaml:"maxIndex" validate:"gte=2"`

	Step float64 `yaml:"step" validate:"gt=0,ltefield=Max"`
	Max  float64 `yaml:"max" validate:"gt=0"`

	SampleThreshold      int `yaml:"sampleThreshold" validate:"gte=1"`
	CoefficientThreshold int `yaml:"coefficientThreshold" validate:"gte=0"`

	TopK int `yaml:"topK" validate:"gte=1"`

	// Concurrency bounds the parallel family sweeps, 0 runs every task at once.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`

	BaselineCacheTTL time.Duration `yaml:"baselineCacheTTL"`

	Tasks []sweep.Task `yaml:"tasks,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		MaxIndex:             curve.DefaultMaxIndex,
		Step:                 sweep.DefaultStep,
		Max:                  sweep.DefaultMax,
		SampleThreshold:      curve.DefaultSampleThreshold,
		CoefficientThreshold: sweep.DefaultCoefficientThreshold,
		TopK:                 DefaultTopK,
		BaselineCacheTTL:     DefaultBaselineCacheTTL,
	}
}

// DefaultTasks sweeps every family once and npow with exponents 2 and 3.
func DefaultTasks() []sweep.Task {
	return []sweep.Task{
		{Family: catalog.FamilyLog, SweepVar: catalog.VarCoefficient},
		{Family: catalog.FamilyNLogN, SweepVar: catalog.VarCoefficient},
		{Family: catalog.FamilyNPow, SweepVar: catalog.VarCoefficient, Vars: map[string]any{catalog.VarPower: 2}},
		{Family: catalog.FamilyNPow, SweepVar: catalog.VarCoefficient, Vars: map[string]any{catalog.VarPower: 3}},
		{Family: catalog.FamilyNSquareLogN, SweepVar: catalog.VarCoefficient},
		{Family: catalog.FamilyN, SweepVar: catalog.VarCoefficient},
	}
}

func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for _, task := range cfg.Tasks {
		if !task.Family.Valid() {
			return fmt.Errorf("%w: task family %d", ErrInvalidConfig, int(task.Family))
		}
	}

	return nil
}

func (cfg *Config) SweepOptions() sweep.Options {
	return sweep.Options{
		Step:                 cfg.Step,
		Max:                  cfg.Max,
		CoefficientThreshold: cfg.CoefficientThreshold,
		Sampler:              curve.NewSampler(cfg.MaxIndex, cfg.SampleThreshold),
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(file string) (cfg *Config, err error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return
	}

	return ParseConfig(d)
}

func ParseConfig(d []byte) (cfg *Config, err error) {
	c := DefaultConfig()

	if err = yaml.Unmarshal(d, &c); err != nil {
		return
	}

	if err = c.Validate(); err != nil {
		return
	}

	cfg = &c

	return
}
