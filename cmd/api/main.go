package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/studytracker/core/cmd/api/commands"
	_ "github.com/studytracker/core/docs"
)

// @title StudyTracker API
// @version 1.0
// @description Personal study task tracker with subjects, countdown timers and progress stats

// @contact.name StudyTracker Support
// @contact.url https://github.com/studytracker/core

// @license.name MIT
// @license.url https://github.com/studytracker/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "studytracker",
		Short: "StudyTracker API Server",
		Long:  `StudyTracker is a personal study planner that tracks tasks per subject, runs countdown study timers and derives progress stats.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
