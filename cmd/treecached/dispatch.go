package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// dispatchEnvelope mirrors the outermost string-keyed dispatch boundary
// (spec.md §6): an action name plus its raw JSON payload.
type dispatchEnvelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Read one {\"action\",\"payload\"} envelope from stdin and print its JSON result",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		var env dispatchEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("parsing dispatch envelope: %w", err)
		}
		result, err := disp.DispatchJSON(cmd.Context(), env.Action, env.Payload)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}
