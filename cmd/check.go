package cmd

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"path/filepath"
)

var CheckCmd = &cobra.Command{
	Use:          "check file.yaml",
	Short:        "Run the checks of a scenario and report diagnostics",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var checkFlags *commonFlags

func init() {
	checkFlags = addCommonFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	color, err := useColor(cmd.OutOrStdout(), *checkFlags.color)
	if err != nil {
		return err
	}
	report, err := loadReport(checkFlags, args[0])
	if err != nil {
		return err
	}

	name := filepath.Base(args[0])
	printDiagnostics(cmd.OutOrStdout(), name, report.Problems.Errors(), color)
	if report.Failed() {
		return errors.Errorf("%s: %d problems found", name, report.Problems.Len())
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d checks passed\n", name, len(report.Results))
	return nil
}
