package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "groupassign",
	Short: "Group assignment ILP compiler",
	Long: `groupassign compiles a declarative set of placement goals into an
integer linear program, solves it, and reports a feasible student-to-group
assignment, falling back through a priority-ordered list of goal sets when
one is infeasible.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
