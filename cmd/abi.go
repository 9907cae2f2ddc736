package cmd

import (
	"encoding/json"
	"github.com/cottand/circ/abi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"io"
	"path/filepath"
)

var AbiCmd = &cobra.Command{
	Use:          "abi file.yaml",
	Short:        "Print the ABI of the entry point of a scenario",
	RunE:         runAbi,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	abiFlags  *commonFlags
	abiFormat *string
	abiPublic *bool
)

func init() {
	abiFlags = addCommonFlags(AbiCmd)
	abiFormat = AbiCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
	abiPublic = AbiCmd.Flags().Bool("public", false, "only print the public parameters")
}

func runAbi(cmd *cobra.Command, args []string) error {
	color, err := useColor(cmd.ErrOrStderr(), *abiFlags.color)
	if err != nil {
		return err
	}
	report, err := loadReport(abiFlags, args[0])
	if err != nil {
		return err
	}
	if report.Failed() {
		printDiagnostics(cmd.ErrOrStderr(), filepath.Base(args[0]), report.Problems.Errors(), color)
		return errors.New("cannot build the ABI of a scenario with problems")
	}
	warnUnresolved(cmd.ErrOrStderr(), report)
	entryPoint := report.Abi()
	if *abiPublic {
		entryPoint = entryPoint.PublicAbi()
	}
	return writeAbi(cmd.OutOrStdout(), entryPoint, *abiFormat)
}

func writeAbi(w io.Writer, a abi.Abi, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(a), "could not encode ABI")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return errors.Wrap(err, "could not encode ABI")
		}
		return errors.Wrap(enc.Close(), "could not encode ABI")
	default:
		return errors.Errorf("unknown format '%s', expected json or yaml", format)
	}
}
