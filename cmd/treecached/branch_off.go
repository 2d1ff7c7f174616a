package main

import (
	"github.com/spf13/cobra"

	"github.com/sagan-labs/treecache/internal/dispatcher"
)

var (
	branchOffThreadID string
	branchOffMsgID    string
)

var branchOffCmd = &cobra.Command{
	Use:   "branch-off",
	Short: "Split the summary spanning an already-forked message into pre- and post-fork summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := disp.BranchOff(cmd.Context(), dispatcher.BranchOffPayload{
			ThreadID:           branchOffThreadID,
			BranchOffMessageID: branchOffMsgID,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	branchOffCmd.Flags().StringVar(&branchOffThreadID, "thread", "", "thread id")
	branchOffCmd.Flags().StringVar(&branchOffMsgID, "branch-off-message", "", "message id to fork at")
	_ = branchOffCmd.MarkFlagRequired("thread")
	_ = branchOffCmd.MarkFlagRequired("branch-off-message")
	rootCmd.AddCommand(branchOffCmd)
}
