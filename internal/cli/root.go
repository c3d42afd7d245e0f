// Package cli provides the Cobra command-line interface for kvlru.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo carries the build-time variables set via ldflags in main.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var (
	buildInfo = BuildInfo{Version: "dev", Commit: "unknown", BuildDate: "unknown"}

	// serverURL is the target for the client subcommands.
	serverURL string

	rootCmd = &cobra.Command{
		Use:   "kvlru",
		Short: "A bounded in-memory LRU key/value store",
		Long: `kvlru - a bounded in-memory key/value store with LRU eviction.

The store holds at most a fixed number of distinct keys; when a new key
would exceed the capacity, the least recently used entry is evicted.
Both reads and writes refresh an entry's recency.

Run 'kvlru serve' to start the cache server, then use the client
subcommands (get, put, del, has, keys) or 'kvlru monitor' against it.`,
	}
)

// SetBuildInfo stores build metadata for the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:7600",
		"Base URL of the kvlru server")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("kvlru %s (commit %s, built %s)\n",
				buildInfo.Version, buildInfo.Commit, buildInfo.BuildDate)
		},
	})
}
