package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"casevault/internal/organizer"
)

func NewCategorizeCommand(deps Deps) *cobra.Command {
	var description, custom string

	cmd := &cobra.Command{
		Use:   "categorize <name>",
		Short: "Show the category and file name a capture would get",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := organizer.Categorize(args[0], description)
			name := organizer.GenerateName(category, deps.Now(), custom)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Category: %s\n", category.Label())
			fmt.Fprintf(out, "Name:     %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Document description")
	cmd.Flags().StringVar(&custom, "custom", "", "Custom name suffix")

	return cmd
}
