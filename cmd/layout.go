package cmd

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"path/filepath"
	"text/tabwriter"
)

var LayoutCmd = &cobra.Command{
	Use:          "layout file.yaml",
	Short:        "Print where the array parameters of the entry point of a scenario live in memory",
	RunE:         runLayout,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var layoutFlags *commonFlags

func init() {
	layoutFlags = addCommonFlags(LayoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	color, err := useColor(cmd.ErrOrStderr(), *layoutFlags.color)
	if err != nil {
		return err
	}
	report, err := loadReport(layoutFlags, args[0])
	if err != nil {
		return err
	}
	if report.Failed() {
		printDiagnostics(cmd.ErrOrStderr(), filepath.Base(args[0]), report.Problems.Errors(), color)
		return errors.New("cannot lay out a scenario with problems")
	}
	warnUnresolved(cmd.ErrOrStderr(), report)

	mem := report.Layout()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ARRAY\tADDRESS\tLEN\tELEMENT\tMAX\tWITNESSES")
	for _, array := range mem.Arrays() {
		witnesses := "-"
		if len(array.Values) > 0 {
			witnesses = fmt.Sprintf("%d..%d", array.Values[0], array.Values[len(array.Values)-1])
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%s\t%s\n", array.Name, array.Address, array.Len, array.Element, array.Max, witnesses)
	}
	_, _ = fmt.Fprintf(w, "total\t%d\t\t\t\t\n", mem.LastAddress)
	return errors.Wrap(w.Flush(), "could not write layout")
}
