package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/bettercode/todo-tasks/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todo-tasks",
		Short: "Todo tasks API server",
		Long:  `Todo tasks is a task management service with projects, an inbox and due-date scheduling.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
