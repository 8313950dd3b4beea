package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// rootCmd runs the API server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "sharescribe",
	Short: "PDF sharing API",
	Long: `ShareScribe serves uploaded PDFs through share links and QR codes,
records views, downloads and scans, and upgrades accounts to the pro plan.

Configuration is read from the environment (a .env file is loaded when present).`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

// @title ShareScribe API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
