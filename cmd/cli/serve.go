package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"groupassign/internal/config"
	"groupassign/internal/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assignment API server",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() {
	log.Println("loading configuration...")
	cfg := config.Load()

	if err := config.ValidateConfig(); err != nil {
		log.Fatalf("configuration validation failed: %v", err)
	}
	config.PrintConfig()

	log.Printf("starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
	fx.Application().Run()
}
