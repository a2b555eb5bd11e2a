package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/nikogura/career-roadmap/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration file",
	Long: `Create a starter configuration file at $HOME/.career-roadmap/config.json
(or the path given with --config).

Edit the file to add your Anthropic API key and the location of your profile,
or export ANTHROPIC_API_KEY instead.`,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	path := getConfigFile()
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	err = config.InitConfig(path)
	if err != nil {
		err = errors.Wrap(err, "failed to initialize config")
		return err
	}

	color.Green("Config written to %s", path)
	fmt.Println("Edit anthropic_api_key and profile_location, then run 'career-roadmap roadmap'.")

	return err
}
