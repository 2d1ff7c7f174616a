package main

import (
	"github.com/spf13/cobra"

	"github.com/sagan-labs/treecache/internal/dispatcher"
)

var (
	addMessageThreadID  string
	addMessageContent   string
	addMessagePrevID    string
	addMessageSummarize bool
	addMessageBatchSize int
)

var addMessageCmd = &cobra.Command{
	Use:   "add-message",
	Short: "Append a message to a thread, optionally triggering summarization",
	RunE: func(cmd *cobra.Command, args []string) error {
		batchSize := addMessageBatchSize
		if batchSize <= 0 {
			batchSize = cfg.DefaultSummaryBatchSize
		}
		id, err := disp.AddMessage(cmd.Context(), dispatcher.AddMessagePayload{
			ThreadID:             addMessageThreadID,
			Content:              addMessageContent,
			PrevMessageID:        addMessagePrevID,
			TriggerSummarization: addMessageSummarize,
			SummaryBatchSize:     batchSize,
		})
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"message_id": id})
	},
}

func init() {
	addMessageCmd.Flags().StringVar(&addMessageThreadID, "thread", "", "thread id")
	addMessageCmd.Flags().StringVar(&addMessageContent, "content", "", "message content")
	addMessageCmd.Flags().StringVar(&addMessagePrevID, "prev", "", "previous message id (empty makes this the thread root)")
	addMessageCmd.Flags().BoolVar(&addMessageSummarize, "trigger-summarization", false, "evaluate the summarization gates after inserting")
	addMessageCmd.Flags().IntVar(&addMessageBatchSize, "batch-size", 0, "summarization batch size (defaults to the configured default)")
	_ = addMessageCmd.MarkFlagRequired("thread")
	_ = addMessageCmd.MarkFlagRequired("content")
	rootCmd.AddCommand(addMessageCmd)
}
