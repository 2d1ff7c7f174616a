package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/sagan-labs/treecache/internal/cache"
	"github.com/sagan-labs/treecache/internal/config"
	"github.com/sagan-labs/treecache/internal/dispatcher"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it. printJSON writes to os.Stdout directly, so CLI
// commands are asserted this way rather than through cobra's own OutOrStdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	c := config.Default()
	c.DatabasePath = filepath.Join(t.TempDir(), "treecached.db")
	return c
}

// wire populates the package-level cfg/disp globals the way
// PersistentPreRunE would, without touching the filesystem for config
// discovery.
func wire(t *testing.T) {
	t.Helper()
	cfg = testConfig(t)
	st, err := openStore(t.Context(), cfg)
	require.NoError(t, err)
	oc, err := buildOracle(cfg.Oracle, nil)
	require.NoError(t, err)
	disp = dispatcher.New(st, cache.New(st, cfg.CacheCapacity, nil), oc, nil)

	// Bypass PersistentPreRunE's own config/store wiring: the test has
	// already wired cfg/disp directly against a per-test temp database.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }
	t.Cleanup(func() { rootCmd.PersistentPreRunE = setup })
}

func TestCLI_CreateThreadThenListThreads(t *testing.T) {
	wire(t)

	createOut := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"create-thread", "--prompt", "hello", "--topic", "greeting"})
		require.NoError(t, rootCmd.Execute())
	})
	var created map[string]string
	require.NoError(t, json.Unmarshal([]byte(createOut), &created))
	require.NotEmpty(t, created["thread_id"])

	listOut := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"list-threads"})
		require.NoError(t, rootCmd.Execute())
	})
	var threads []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(listOut), &threads))
	require.Len(t, threads, 1)
}

func TestCLI_AddMessageThenDeleteBranch(t *testing.T) {
	wire(t)

	createOut := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"create-thread"})
		require.NoError(t, rootCmd.Execute())
	})
	var created map[string]string
	require.NoError(t, json.Unmarshal([]byte(createOut), &created))
	threadID := created["thread_id"]
	require.NotEmpty(t, threadID)

	addOut := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"add-message", "--thread", threadID, "--content", "first message"})
		require.NoError(t, rootCmd.Execute())
	})
	var added map[string]string
	require.NoError(t, json.Unmarshal([]byte(addOut), &added))
	msgID := added["message_id"]
	require.NotEmpty(t, msgID)

	deleteOut := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"delete-branch", "--thread", threadID, "--branch-start-message", msgID})
		require.NoError(t, rootCmd.Execute())
	})
	var deleted map[string]string
	require.NoError(t, json.Unmarshal([]byte(deleteOut), &deleted))
	require.Equal(t, "deleted", deleted["status"])
}

func TestBuildOracle_Dummy(t *testing.T) {
	oc, err := buildOracle(config.OracleConfig{Provider: "dummy"}, nil)
	require.NoError(t, err)
	require.NotNil(t, oc)
}

func TestBuildOracle_UnknownProvider(t *testing.T) {
	_, err := buildOracle(config.OracleConfig{Provider: "does-not-exist"}, nil)
	require.Error(t, err)
}

func TestBuildOracle_AnthropicMissingAPIKey(t *testing.T) {
	t.Setenv("TREECACHE_TEST_MISSING_KEY", "")
	_, err := buildOracle(config.OracleConfig{Provider: "anthropic", ApiKeyEnv: "TREECACHE_TEST_MISSING_KEY"}, nil)
	require.Error(t, err)
}
