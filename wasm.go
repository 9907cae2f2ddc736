//go:build js && wasm

package main

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/cottand/circ/frontend/ilerr"
	"github.com/cottand/circ/scenario"
)

// CheckScenario runs the scenario given as YAML text and returns
// its diagnostics, or a summary of the checks if there are none
func CheckScenario(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "compiler panicked: " + fmt.Sprint(r)
		}
	}()

	report, problems := scenario.Diagnose([]byte(args[0].String()), "scenario.yaml")
	if problems.HasError() {
		sb := strings.Builder{}
		sb.WriteString("the scenario has the following problems:\n")
		for _, problem := range problems.Errors() {
			sb.WriteString(ilerr.FormatWithCode(problem))
			sb.WriteByte('\n')
		}
		return sb.String()
	}
	return fmt.Sprintf("%d checks passed", len(report.Results))
}

func main() {
	js.Global().Set("CheckScenario", CheckScenario)

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}
