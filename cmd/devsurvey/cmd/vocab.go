package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func vocabCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the values each filter control offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := a.svc.Filters(cmd.Context())
			v := out.Vocabulary
			list := func(title string, xs []string) table {
				t := table{title: title}
				for _, x := range xs {
					t.rows = append(t.rows, []string{x})
				}
				return t
			}
			return write(cmd.OutOrStdout(), a.output, out,
				list("Age", v.Ages),
				list("Education level", v.EdLevels),
				list("Employment", v.Employment),
				list("Developer status", v.DevStatus),
				table{title: "Years of coding", rows: [][]string{{fmt.Sprintf("%g - %g", v.Years.Min, v.Years.Max)}}},
			)
		},
	}
}
