package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/enroll/internal/config"
)

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write a default config file",
	Long: `Write a commented default config file.

By default the file goes to ~/.config/enroll/config.yaml. Existing files are
left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configInitPath
		if path == "" {
			path = configPath()
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		return err
	},
}

var mentorsSetCmd = &cobra.Command{
	Use:   "mentors:set <name>...",
	Short: "Replace the mentor pool in the config file",
	Long: `Replace the mentors available to inventory management trainees.

Users already matched keep their mentor; new users are matched against the new pool.

Example:
  enroll mentors:set avery jordan morgan`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if err := config.SaveMentors(path, args); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved %d mentors to %s\n", len(args), path)
		return err
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write the config file")
	rootCmd.AddCommand(configInitCmd, mentorsSetCmd)
}
