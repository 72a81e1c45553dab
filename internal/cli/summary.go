package cli

import (
	"fmt"
	"os"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"casevault/internal/app"
)

// pdfAuto is the --pdf value when the flag is given without a path.
const pdfAuto = "auto"

func NewSummaryCommand(deps Deps) *cobra.Command {
	var (
		detailed bool
		pdfPath  string
	)

	cmd := &cobra.Command{
		Use:   "summary <caseID>",
		Short: "Print or export a case summary",
		Long: `Print the plain-text summary of a case. With --pdf the summary is written
as a PDF instead; without a path the file is named after the case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, deps, func(a *app.App) error {
				if pdfPath == "" {
					text, err := a.Service.Summary(cmd.Context(), args[0], detailed)
					if err != nil {
						return err
					}
					_, err = fmt.Fprint(cmd.OutOrStdout(), text)
					return err
				}
				return exportPDF(cmd, a, args[0], pdfPath, detailed)
			})
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "List every folder and document")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write a PDF to this path (default: <case-name>.pdf)")
	cmd.Flags().Lookup("pdf").NoOptDefVal = pdfAuto

	return cmd
}

func exportPDF(cmd *cobra.Command, a *app.App, caseID, path string, detailed bool) error {
	ctx := cmd.Context()
	if path == pdfAuto {
		c, err := a.Service.GetCase(ctx, caseID)
		if err != nil {
			return err
		}
		path = pdfFileName(c.Name, caseID)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := a.Service.ExportPDF(ctx, f, caseID, detailed); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// pdfFileName slugs the case name; names with no usable characters fall back
// to the id.
func pdfFileName(name, id string) string {
	s := slug.Make(name)
	if s == "" {
		s = id
	}
	return s + ".pdf"
}
