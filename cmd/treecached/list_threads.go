package main

import (
	"github.com/spf13/cobra"
)

var listThreadsCmd = &cobra.Command{
	Use:   "list-threads",
	Short: "List every known conversation thread",
	RunE: func(cmd *cobra.Command, args []string) error {
		threads, err := disp.ListThreads(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(threads)
	},
}

func init() {
	rootCmd.AddCommand(listThreadsCmd)
}
