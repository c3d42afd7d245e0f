package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/kvlru/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the kvlru configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config.toml",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.WriteDefaultConfig()
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			if err := config.GenerateSchemaFile(); err != nil {
				return err
			}
			return nil
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := config.SchemaJSON()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	cmd.AddCommand(schemaCmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(NewConfigCmd())
}
