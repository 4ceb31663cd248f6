package cmd

import (
	"github.com/spf13/cobra"

	"devsurvey/internal/core/survey"
	"devsurvey/internal/services/api/survey/domain"
)

func topCmd(a *app) *cobra.Command {
	var (
		split        bool
		limit        int
		displayNames bool
	)
	cmd := &cobra.Command{
		Use:   "top <column>",
		Short: "Ranked counts for one column of the filtered records",
		Example: `  devsurvey top LanguageHaveWorkedWith --split
  devsurvey top Country --limit 5 --display-names --age "25-34 years old"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.AggregateInput{
				Filters:      a.filters.spec(),
				Column:       args[0],
				Split:        split,
				Limit:        &limit,
				DisplayNames: displayNames,
			}
			res, err := a.svc.Aggregate(cmd.Context(), in)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), a.output, res, countTable(string(res.Column), string(res.Column), res.Rows))
		},
	}
	cmd.Flags().BoolVar(&split, "split", false, "count each ; separated item of a multi valued column")
	cmd.Flags().IntVar(&limit, "limit", survey.TopN, "keep the N most frequent values, 0 keeps all")
	cmd.Flags().BoolVar(&displayNames, "display-names", false, "use short country names")
	return cmd
}
