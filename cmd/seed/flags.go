package main

import (
	"fmt"

	"blogseed/internal/seed"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the flags that set them.
var flagKeys = map[string]string{
	"SEED_NUMBER":       "number",
	"SEED_DELETE":       "delete",
	"SEED_MIN_COMMENTS": "min-comments",
	"SEED_MAX_COMMENTS": "max-comments",
	"SEED_RANDOM":       "seed",
	"SEED_METRICS_FILE": "metrics-file",
}

func newFlagSet(defaults seed.Options) *pflag.FlagSet {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	flags.Int("number", defaults.Number, "Number of posts to generate")
	flags.Bool("delete", defaults.Delete, "Delete existing posts and comments first")
	flags.Int("min-comments", defaults.MinComments, "Minimum comments per post")
	flags.Int("max-comments", defaults.MaxComments, "Maximum comments per post")
	flags.Int64("seed", 0, "Random seed for reproducible content (0 picks one)")
	flags.String("metrics-file", "", "Write run metrics to this Prometheus textfile")
	return flags
}

// bindFlags lets explicitly passed flags override env and config file values.
func bindFlags(flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag --%s is not defined", name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
