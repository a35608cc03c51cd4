// Command listmoves enumerates and inspects the moves of a list planning variable on a routing problem.
package main

import (
	"log/slog"
	"os"

	"github.com/limaJavier/listmoves/internal/config"
	"github.com/limaJavier/listmoves/internal/problem"
	"github.com/spf13/cobra"
)

type options struct {
	problemFile string
	configFile  string
	outFile     string
	verbose     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var shared options
	root := &cobra.Command{
		Use:          "listmoves",
		Short:        "Enumerate and inspect list variable moves",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&shared.problemFile, "problem", "p", "", "Path to the JSON problem file")
	root.PersistentFlags().StringVarP(&shared.configFile, "config", "c", "", "Path to the YAML (or JSON) move selector configuration")
	root.PersistentFlags().StringVarP(&shared.outFile, "out", "o", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	root.PersistentFlags().BoolVarP(&shared.verbose, "verbose", "v", false, "Log debug messages")
	_ = root.MarkPersistentFlagRequired("problem")
	_ = root.MarkPersistentFlagRequired("config")

	root.AddCommand(newMovesCommand(&shared), newCheckCommand(&shared))
	return root
}

func (shared *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if shared.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (shared *options) load() (*problem.Problem, config.Config, error) {
	routing, err := problem.FromJson(shared.problemFile)
	if err != nil {
		return nil, config.Config{}, err
	}
	loaded, err := config.FromFile(shared.configFile)
	if err != nil {
		return nil, config.Config{}, err
	}
	return routing, loaded, nil
}
