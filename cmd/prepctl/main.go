// Command prepctl is the operator tool for the interview resource service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "prepctl",
	Short:         "TalentHive interview resource operator tool",
	Long:          "Operator commands for the TalentHive interview resource service.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
