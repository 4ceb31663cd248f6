// Package cmd holds the devsurvey command line
package cmd

import (
	"github.com/spf13/cobra"

	"devsurvey/internal/core/survey"
	"devsurvey/internal/platform/config"
	svc "devsurvey/internal/services/api/survey/service"
)

// app carries what every subcommand needs once the persistent flags are parsed
type app struct {
	data   string
	output string

	filters filterFlags
	svc     svc.Service
}

// RootCmd is the root command called from main. Subcommands are registered here
func RootCmd() *cobra.Command {
	a := &app{}
	cfg := config.New().Prefix("DEVSURVEY_")

	cmd := &cobra.Command{
		Use:           "devsurvey",
		Short:         "devsurvey prints the dashboard aggregates of the developer survey",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := parseOutput(a.output); err != nil {
				return err
			}
			tbl, err := survey.Open(a.data)
			if err != nil {
				return err
			}
			a.svc = svc.New(tbl, nil)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.data, "data", cfg.MayString("DATA_PATH", "clean_survey_data.csv"), "survey csv file")
	pf.StringVarP(&a.output, "output", "o",
		cfg.MayEnum("OUTPUT", string(formatTable), string(formatTable), string(formatJSON), string(formatYAML)),
		"output format: table | json | yaml")
	a.filters.bind(pf)

	cmd.AddCommand(
		vocabCmd(a),
		tabCmd(a),
		topCmd(a),
	)
	return cmd
}
