package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/classifier"
	"github.com/sgostarter/libgrowth/curve"
	"github.com/sgostarter/libgrowth/runner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type classifyFlags struct {
	store     storeFlags
	config    string
	curves    string
	baselines []string
	maxIndex  int
	topK      int
	out       string
	verbose   bool
}

func newClassifyCommand() *cobra.Command {
	var flags classifyFlags

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify built-in baseline functions",
		Long: `Classify one or more built-in baseline functions and print a YAML report per
baseline. Reports are also saved when a store is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd.Context(), cmd.OutOrStdout(), &flags)
		},
	}

	flags.store.register(cmd)
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "YAML config file")
	cmd.Flags().StringSliceVarP(&flags.baselines, "baseline", "b", []string{"default"}, "Baseline function names")
	cmd.Flags().StringVar(&flags.curves, "curves", "", "Directory caching sampled baseline curves")
	cmd.Flags().IntVar(&flags.maxIndex, "max-index", 0, "Override the sampled domain size N")
	cmd.Flags().IntVar(&flags.topK, "top", 0, "Override the number of ranked results")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Write reports to this file instead of stdout")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log progress to the console")

	return cmd
}

func (flags *classifyFlags) loadConfig() (*classifier.Config, error) {
	cfg := classifier.DefaultConfig()

	if flags.config != "" {
		c, err := classifier.LoadConfig(flags.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		cfg = *c
	}

	if flags.maxIndex > 0 {
		cfg.MaxIndex = flags.maxIndex
	}

	if flags.topK > 0 {
		cfg.TopK = flags.topK
	}

	return &cfg, nil
}

func runClassify(ctx context.Context, w io.Writer, flags *classifyFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := l.NewNopLoggerWrapper()
	if flags.verbose {
		logger = l.NewConsoleLoggerWrapper()
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	var opts []classifier.Option
	if flags.curves != "" {
		opts = append(opts, classifier.CurveStorageOption(curve.NewCommonStorage(flags.curves)))
	}

	c, err := classifier.NewClassifier(*cfg, logger, opts...)
	if err != nil {
		return err
	}

	stg, err := flags.store.open(logger)
	if err != nil {
		return fmt.Errorf("opening report store: %w", err)
	}

	bs := make([]baseline, 0, len(flags.baselines))

	for _, name := range flags.baselines {
		b, err := lookupBaseline(name)
		if err != nil {
			return err
		}

		bs = append(bs, b)
	}

	ids := make([]uint64, 0, len(bs))

	r := runner.NewRunner(ctx, c, stg, logger, runner.QueueSizeOption(len(bs)))
	defer r.StopAndWait()

	for idx, b := range bs {
		name := flags.baselines[idx]

		id, err := r.Submit(name, b.Fn)
		if err != nil {
			return fmt.Errorf("submitting %s: %w", name, err)
		}

		ids = append(ids, id)
	}

	if flags.out != "" {
		f, err := os.Create(flags.out)
		if err != nil {
			return err
		}

		defer f.Close()

		w = f
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	for _, id := range ids {
		o, err := r.Wait(ctx, id)
		if err != nil {
			return err
		}

		if o.Err != nil {
			return fmt.Errorf("classifying %s: %w", o.Name, o.Err)
		}

		if err = enc.Encode(o.Report); err != nil {
			return err
		}
	}

	return nil
}
