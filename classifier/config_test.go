package classifier

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sgostarter/libgrowth/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.Validate())

	opts := cfg.SweepOptions()
	assert.EqualValues(t, 200, opts.Steps())
	assert.EqualValues(t, 100000, opts.Sampler.MaxIndex)
	assert.EqualValues(t, 1000, opts.Sampler.Threshold)

	tasks := DefaultTasks()
	assert.Len(t, tasks, 6)

	for _, task := range tasks {
		assert.True(t, task.Family.Valid())
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
maxIndex: 500
step: 1
max: 10
topK: 3
baselineCacheTTL: 1m
tasks:
  - family: npow
    sweepVar: i
    vars:
      powerVal: 2
  - family: log
    sweepVar: i
`))
	require.Nil(t, err)

	assert.EqualValues(t, 500, cfg.MaxIndex)
	assert.EqualValues(t, 1, cfg.Step)
	assert.EqualValues(t, 10, cfg.Max)
	assert.EqualValues(t, 3, cfg.TopK)
	assert.EqualValues(t, time.Minute, cfg.BaselineCacheTTL)
	assert.EqualValues(t, DefaultConfig().SampleThreshold, cfg.SampleThreshold)

	require.Len(t, cfg.Tasks, 2)
	assert.EqualValues(t, catalog.FamilyNPow, cfg.Tasks[0].Family)
	assert.EqualValues(t, 2, cfg.Tasks[0].Vars[catalog.VarPower])
	assert.EqualValues(t, catalog.FamilyLog, cfg.Tasks[1].Family)
}

func TestParseConfigInvalid(t *testing.T) {
	for _, d := range []string{
		"step: 0",
		"step: 20\nmax: 10",
		"maxIndex: 1",
		"topK: 0",
		"sampleThreshold: 0",
		"concurrency: -1",
	} {
		_, err := ParseConfig([]byte(d))
		assert.ErrorIs(t, err, ErrInvalidConfig, d)
	}

	_, err := ParseConfig([]byte("tasks:\n  - family: cubic\n"))
	assert.NotNil(t, err)
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "growth.yaml")
	require.Nil(t, os.WriteFile(file, []byte("maxIndex: 2000\n"), 0600))

	cfg, err := LoadConfig(file)
	require.Nil(t, err)
	assert.EqualValues(t, 2000, cfg.MaxIndex)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.NotNil(t, err)
}
