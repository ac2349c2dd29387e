package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/takaishi/graphql-jump/config"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "graphql-jump",
		Short: "Jump to GraphQL definitions",
		Long: "graphql-jump finds the query, mutation, subscription, fragment or enum declaration " +
			"named by a term (or the word under the caret) in the .graphql/.gql files of a workspace " +
			"and opens it in Cursor or VS Code.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newGoCmd())
	rootCmd.AddCommand(newWordCmd())
	rootCmd.AddCommand(newLocateCmd())
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Failures inside a command were already shown as notifications
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print graphql-jump version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("graphql-jump %s\n", version)
		},
	}
}
