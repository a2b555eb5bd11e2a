package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/nikogura/career-roadmap/pkg/config"
	"github.com/nikogura/career-roadmap/pkg/diagram"
	"github.com/nikogura/career-roadmap/pkg/plantuml"
	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	diagramProfile string
	diagramBaseURL string
	diagramDecode  string
	diagramFetch   string
	diagramToken   bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var diagramCmd = &cobra.Command{
	Use:   "diagram [source-file | -]",
	Short: "Encode PlantUML source into a renderer link",
	Long: `Encode PlantUML source into a shareable PlantUML server link.

The source is deflated, stripped of zlib framing and written with the
PlantUML 64-character alphabet. Read it from a file, from stdin ("-"), or
build it from a profile with --profile.

Use --decode to turn a token back into its PlantUML source.

Example:
  career-roadmap diagram career.puml
  cat career.puml | career-roadmap diagram -
  career-roadmap diagram --profile user_profile.json --fetch career.png
  career-roadmap diagram --decode SyfFKj2rKt3CoKnELR1Io4ZDoSa70000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagram,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(diagramCmd)
	diagramCmd.Flags().StringVar(&diagramProfile, "profile", "", "Build the diagram from this profile instead of a source file")
	diagramCmd.Flags().StringVar(&diagramBaseURL, "base-url", "", "Renderer base URL (default from config)")
	diagramCmd.Flags().StringVar(&diagramDecode, "decode", "", "Decode a token back into PlantUML source")
	diagramCmd.Flags().StringVar(&diagramFetch, "fetch", "", "Download the rendered image to this path")
	diagramCmd.Flags().BoolVar(&diagramToken, "token-only", false, "Print only the token, not the full URL")
}

func runDiagram(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.LoadOptional(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	if diagramBaseURL != "" {
		cfg.Diagram.BaseURL = diagramBaseURL
	}

	logger := newLogger(cfg.LogLevel)

	var builder plantuml.LinkBuilder
	builder, err = cfg.LinkBuilder()
	if err != nil {
		err = errors.Wrap(err, "invalid diagram configuration")
		return err
	}

	if diagramDecode != "" {
		var source string
		source, err = builder.Source(diagramDecode)
		if err != nil {
			err = errors.Wrap(err, "failed to decode token")
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), source)
		return err
	}

	var source string
	source, err = diagramSource(args)
	if err != nil {
		return err
	}

	var token string
	token, err = builder.Token(source)
	if err != nil {
		return err
	}

	url := builder.BaseURL() + "/" + token
	logger.WithField("token_length", len(token)).Debug("diagram encoded")

	if diagramToken {
		fmt.Fprintln(cmd.OutOrStdout(), token)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), url)
	}

	if diagramFetch != "" {
		ctx, cancel := context.WithTimeout(context.Background(), renderer.DefaultFetchTimeout+5*time.Second)
		defer cancel()

		_, err = renderer.FetchImage(ctx, url, diagramFetch)
		if err != nil {
			err = errors.Wrap(err, "failed to fetch diagram image")
			return err
		}
		color.Green("Diagram image saved at: %s", diagramFetch)
	}

	return err
}

// diagramSource picks the source: --profile, then the positional file or
// "-" for stdin.
func diagramSource(args []string) (source string, err error) {
	if diagramProfile != "" {
		var p profile.Profile
		p, err = profile.Load(diagramProfile)
		if err != nil {
			return source, err
		}
		source = diagram.FromProfile(p)
		return source, err
	}

	if len(args) == 0 {
		err = errors.New("no diagram source: pass a file, '-' for stdin, or --profile")
		return source, err
	}

	source, err = diagram.LoadSource(args[0], os.Stdin)
	return source, err
}
