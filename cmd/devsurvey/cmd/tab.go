package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"devsurvey/internal/core/survey"
)

func tabCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "tab [tech-used|tech-want|demographics]",
		Short:     "Render every panel of one dashboard tab",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(survey.TabTechUsed), string(survey.TabTechWant), string(survey.TabDemographics)},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			res, err := a.svc.Tab(cmd.Context(), id, a.filters.spec())
			if err != nil {
				return err
			}
			tables := make([]table, 0, len(res.Metrics))
			for _, m := range res.Metrics {
				tables = append(tables, countTable(m.Title, m.Axis, m.Rows))
			}
			if len(tables) > 0 {
				tables[0].title = fmt.Sprintf("%s (%d records)\n\n%s", res.Label, res.Records, tables[0].title)
			}
			return write(cmd.OutOrStdout(), a.output, res, tables...)
		},
	}
}

func countTable(title, axis string, rows []survey.Count) table {
	t := table{title: title, header: []string{axis, "Count"}}
	for _, r := range rows {
		t.rows = append(t.rows, []string{r.Label, strconv.Itoa(r.Count)})
	}
	return t
}
