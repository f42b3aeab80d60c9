package main

import (
	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libgrowth/report"
	"github.com/sgostarter/libgrowth/report/impls/fmstorage"
	"github.com/sgostarter/libgrowth/report/impls/redisimpls"
	"github.com/spf13/cobra"
)

type storeFlags struct {
	dir      string
	redisURL string
	redisKey string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "store", "", "Directory of the file report store")
	cmd.Flags().StringVar(&f.redisURL, "redis", "", "Redis URL of the report store, e.g. redis://:@127.0.0.1:6379")
	cmd.Flags().StringVar(&f.redisKey, "redis-key", "growth", "Key prefix of the redis report store")
}

// open returns nil when no store is configured.
func (f *storeFlags) open(logger l.Wrapper) (report.Storage, error) {
	if f.redisURL != "" {
		opts, err := redis.ParseURL(f.redisURL)
		if err != nil {
			return nil, err
		}

		return redisimpls.NewRedisReportStorage(f.redisKey, redis.NewClient(opts), logger), nil
	}

	if f.dir != "" {
		return fmstorage.NewFMStorageEx(f.dir, nil, "reports.json", true), nil
	}

	return nil, nil
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growthclass",
		Short: "Classify the growth rate of numeric functions",
		Long: `growthclass samples a baseline function, sweeps the coefficient of every
reference growth family against it and reports the closest fits.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newClassifyCommand())
	cmd.AddCommand(newBaselinesCommand())
	cmd.AddCommand(newShowCommand())

	return cmd
}
