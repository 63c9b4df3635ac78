package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newIndexCmd(build Builder, env func() string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index <url>...",
		Short: "Download pages and add them to the index",
		Long: `Fetches each page, counts the terms of its article text and stores the
counts. Pages already in the index are skipped unless --force is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := build(cmd.Context(), env())
			if err != nil {
				return err
			}
			defer rt.Close()

			var failed []error
			for _, url := range args {
				out, err := rt.Indexer.IndexURL(cmd.Context(), url, force)
				if err != nil {
					rt.Logger.Warn("index failed", zap.String("url", url), zap.Error(err))
					cmd.PrintErrf("failed   %s: %v\n", url, err)
					failed = append(failed, err)
					continue
				}
				if out.Skipped {
					cmd.Printf("skipped  %s (already indexed)\n", out.URL)
					continue
				}
				cmd.Printf("indexed  %s (%d terms)\n", out.URL, out.Terms)
			}

			if len(failed) > 0 {
				return fmt.Errorf("%d of %d pages failed: %w", len(failed), len(args), errors.Join(failed...))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-index pages that are already indexed")
	return cmd
}
