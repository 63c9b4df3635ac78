// Package cli is the wikisearch command line: the API server plus one-shot
// query and indexing commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/wikisearch/internal/config"
)

// NewRootCmd creates the wikisearch command tree. build wires the runtime
// for commands that touch the index.
func NewRootCmd(build Builder) *cobra.Command {
	var env string

	root := &cobra.Command{
		Use:   "wikisearch",
		Short: "Boolean term search over indexed wiki pages",
		Long: `wikisearch indexes wiki pages into a term index kept in Redis, Valkey
or SQLite, and answers boolean queries (and, or, minus) ranked by relevance.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&env, "env", config.GetEnv(), "configuration environment (config/<env>.yaml)")

	envFn := func() string { return env }
	root.AddCommand(
		newServeCmd(build, envFn),
		newQueryCmd(build, envFn),
		newIndexCmd(build, envFn),
		newVersionCmd(),
	)
	return root
}
