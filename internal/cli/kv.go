package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/kvlru/internal/client"
)

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch the value for a key",
		Long: `Fetch the value for a key from a running server.

A hit refreshes the key's recency; a miss exits with status 1 and leaves
the eviction order untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)
			value, err := c.Get(cmd.Context(), args[0])
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("key %q not found", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}

// NewPutCmd creates the put command.
func NewPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> <value>",
		Short: "Store a value under a key",
		Long: `Store a value under a key on a running server.

If the server is at capacity and the key is new, the least recently used
entry is evicted to make room.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)
			if err := c.Put(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
}

// NewDelCmd creates the del command.
func NewDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <key>",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)
			deleted, err := c.Del(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if deleted {
				fmt.Println("deleted")
			} else {
				fmt.Println("not found")
			}
			return nil
		},
	}
}

// NewHasCmd creates the has command.
func NewHasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has <key>",
		Short: "Check whether a key is present (no recency side effect)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)
			present, err := c.Has(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(present)
			return nil
		},
	}
}

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("refusing to clear without --force")
			}
			c := client.New(serverURL)
			if err := c.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}

// NewKeysCmd creates the keys command.
func NewKeysCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List keys from least to most recently used",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := client.New(serverURL)

			if verbose {
				entries, err := c.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Printf("%s\t%s\n", e.Key, e.Value)
				}
				return nil
			}

			keys, err := c.Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show values as well")
	return cmd
}

func init() {
	rootCmd.AddCommand(NewGetCmd())
	rootCmd.AddCommand(NewPutCmd())
	rootCmd.AddCommand(NewDelCmd())
	rootCmd.AddCommand(NewHasCmd())
	rootCmd.AddCommand(NewClearCmd())
	rootCmd.AddCommand(NewKeysCmd())
}
