package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/wikisearch/internal/domain/search"
	queryuc "github.com/kailas-cloud/wikisearch/internal/usecase/query"
)

// step is one operator flag occurrence, kept in command line order.
type step struct {
	op   queryuc.Op
	term string
}

// opFlag is a repeatable flag whose occurrences share one ordered list, so
// "--and a --minus b --and c" folds as ((t AND a) MINUS b) AND c.
type opFlag struct {
	op    queryuc.Op
	steps *[]step
}

func (f *opFlag) String() string { return "" }

func (f *opFlag) Set(v string) error {
	*f.steps = append(*f.steps, step{op: f.op, term: v})
	return nil
}

func (f *opFlag) Type() string { return "term" }

func newQueryCmd(build Builder, env func() string) *cobra.Command {
	var (
		steps  []step
		order  string
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "query <term>",
		Short: "Run a boolean query against the index",
		Long: `Looks up <term> and combines it with further terms, left to right, in the
order the operator flags are given:

  wikisearch query java --and programming --minus coffee`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := queryuc.ParseOrder(order)
			if err != nil {
				return err
			}
			expr, err := buildExpr(args[0], steps)
			if err != nil {
				return err
			}

			rt, err := build(cmd.Context(), env())
			if err != nil {
				return err
			}
			defer rt.Close()

			entries, err := rt.Query.Rank(cmd.Context(), expr, o)
			if err != nil {
				return fmt.Errorf("query %s: %w", expr, err)
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			if asJSON {
				return printEntriesJSON(cmd, entries)
			}
			printEntries(cmd, entries)
			return nil
		},
	}

	f := cmd.Flags()
	f.Var(&opFlag{op: queryuc.OpAnd, steps: &steps}, "and", "keep documents also relevant to term (repeatable)")
	f.Var(&opFlag{op: queryuc.OpOr, steps: &steps}, "or", "add documents relevant to term (repeatable)")
	f.Var(&opFlag{op: queryuc.OpMinus, steps: &steps}, "minus", "drop documents relevant to term (repeatable)")
	f.StringVar(&order, "order", string(queryuc.Desc), "ranking order: asc or desc")
	f.IntVarP(&limit, "limit", "n", 0, "maximum number of results (0 = all)")
	f.BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

// buildExpr folds steps onto first in the order they were given.
func buildExpr(first string, steps []step) (queryuc.Expr, error) {
	expr := queryuc.Term(first)
	for _, s := range steps {
		next, err := queryuc.Combine(s.op, expr, queryuc.Term(s.term))
		if err != nil {
			return queryuc.Expr{}, err
		}
		expr = next
	}
	return expr, expr.Validate()
}

func printEntries(cmd *cobra.Command, entries []search.Entry) {
	if len(entries) == 0 {
		cmd.PrintErrln("No results found.")
		return
	}
	for _, e := range entries {
		cmd.Printf("%s\t%d\n", e.Doc, e.Score)
	}
}

func printEntriesJSON(cmd *cobra.Command, entries []search.Entry) error {
	if entries == nil {
		entries = []search.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
