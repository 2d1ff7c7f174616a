package main

import (
	"github.com/spf13/cobra"

	"github.com/sagan-labs/treecache/internal/dispatcher"
)

var (
	deleteBranchThreadID string
	deleteBranchStartID  string
)

var deleteBranchCmd = &cobra.Command{
	Use:   "delete-branch",
	Short: "Delete a message and every descendant, plus the summary subtree starting at that message",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := disp.DeleteBranch(cmd.Context(), dispatcher.DeleteBranchPayload{
			ThreadID:             deleteBranchThreadID,
			BranchStartMessageID: deleteBranchStartID,
		})
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"status": "deleted"})
	},
}

func init() {
	deleteBranchCmd.Flags().StringVar(&deleteBranchThreadID, "thread", "", "thread id")
	deleteBranchCmd.Flags().StringVar(&deleteBranchStartID, "branch-start-message", "", "message id at the root of the subtree to delete")
	_ = deleteBranchCmd.MarkFlagRequired("thread")
	_ = deleteBranchCmd.MarkFlagRequired("branch-start-message")
	rootCmd.AddCommand(deleteBranchCmd)
}
