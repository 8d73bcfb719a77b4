package cmd

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"groupassign/internal/api/dto"
	"groupassign/internal/config"
	"groupassign/internal/driver"
)

var solveInputPath string

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve one assignment request from a JSON file and print the result",
	Long: `Reads a dto.AssignmentRequest JSON document from --input, runs the
driver directly (no server, no cache, no audit trail), and prints the
resulting dto.AssignmentResponse as JSON on stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSolve()
	},
}

func init() {
	solveCmd.Flags().StringVarP(&solveInputPath, "input", "i", "", "path to a JSON assignment request (required)")
	solveCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(solveCmd)
}

func runSolve() {
	data, err := os.ReadFile(solveInputPath)
	if err != nil {
		log.Fatalf("failed to read input file: %v", err)
	}

	var req dto.AssignmentRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatalf("failed to parse input file: %v", err)
	}

	in, err := req.ToInput()
	if err != nil {
		log.Fatalf("invalid request: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg := config.Load()
	d := driver.New(logger, nil, cfg.Solver.PopulationCeiling, cfg.Solver.Nondeterministic)
	result, err := d.Run(in)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}

	out, err := json.MarshalIndent(dto.FromResult(result), "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.WriteString("\n")
}
