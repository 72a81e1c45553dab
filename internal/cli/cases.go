package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"casevault/internal/app"
)

func NewCasesCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List stored cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, func(a *app.App) error {
				cases, err := a.Service.ListCases(cmd.Context())
				if err != nil {
					return err
				}
				if len(cases) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No cases stored")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCASE NUMBER\tDOCUMENTS")
				for _, c := range cases {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.CaseNumber, len(c.AllDocuments()))
				}
				return tw.Flush()
			})
		},
	}
}
