package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	createThreadPrompt string
	createThreadTopic  string
)

var createThreadCmd = &cobra.Command{
	Use:   "create-thread",
	Short: "Create a new conversation thread",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := disp.CreateThread(cmd.Context(), createThreadPrompt, createThreadTopic)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"thread_id": id})
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

func init() {
	createThreadCmd.Flags().StringVar(&createThreadPrompt, "prompt", "", "initial prompt describing the thread")
	createThreadCmd.Flags().StringVar(&createThreadTopic, "topic", "", "short topic label for the thread")
	rootCmd.AddCommand(createThreadCmd)
}
