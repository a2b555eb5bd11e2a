package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/nikogura/career-roadmap/pkg/config"
	"github.com/nikogura/career-roadmap/pkg/diagram"
	"github.com/nikogura/career-roadmap/pkg/llm"
	"github.com/nikogura/career-roadmap/pkg/plantuml"
	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/quotes"
	"github.com/nikogura/career-roadmap/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	roadmapProfile      string
	roadmapOutputDir    string
	roadmapDiagramFile  string
	roadmapSkipNarrate  bool
	roadmapSkipDiagram  bool
	roadmapFetchImage   bool
	roadmapPDF          bool
	roadmapKeepMarkdown bool
	roadmapQuote        bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate a career roadmap and diagram link from a profile",
	Long: `Generate a personalized career roadmap from a profile file.

The roadmap narrative is written by Claude and saved as
career_roadmap_for_<Name>.txt in the output directory. A PlantUML career
diagram is built from the same profile (or from --diagram-file) and printed
as a shareable link.

Example:
  career-roadmap roadmap --profile user_profile.json
  career-roadmap roadmap --skip-narrative --fetch-image
  career-roadmap roadmap --diagram-file career.puml --pdf`,
	RunE: runRoadmap,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(roadmapCmd)
	roadmapCmd.Flags().StringVar(&roadmapProfile, "profile", "", "Profile file, JSON or YAML (default from config)")
	roadmapCmd.Flags().StringVar(&roadmapOutputDir, "output-dir", "", "Output directory (default from config)")
	roadmapCmd.Flags().StringVar(&roadmapDiagramFile, "diagram-file", "", "Custom PlantUML source instead of the generated diagram")
	roadmapCmd.Flags().BoolVar(&roadmapSkipNarrate, "skip-narrative", false, "Skip roadmap text generation")
	roadmapCmd.Flags().BoolVar(&roadmapSkipDiagram, "skip-diagram", false, "Skip diagram link generation")
	roadmapCmd.Flags().BoolVar(&roadmapFetchImage, "fetch-image", false, "Download the rendered diagram into the output directory")
	roadmapCmd.Flags().BoolVar(&roadmapPDF, "pdf", false, "Also render the roadmap to PDF with pandoc")
	roadmapCmd.Flags().BoolVar(&roadmapKeepMarkdown, "keep-markdown", false, "Keep the intermediate markdown file after PDF generation")
	roadmapCmd.Flags().BoolVar(&roadmapQuote, "quote", true, "Print a motivational quote of the day")
}

func runRoadmap(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = config.LoadOptional(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	logger := newLogger(cfg.LogLevel)
	out := cmd.OutOrStdout()

	if !roadmapSkipNarrate {
		err = cfg.RequireAPIKey()
		if err != nil {
			return err
		}
	}

	profilePath := firstNonEmpty(roadmapProfile, cfg.ProfileLocation)
	if profilePath == "" {
		err = errors.New("no profile given: use --profile or set profile_location in config")
		return err
	}

	var p profile.Profile
	p, err = profile.Load(profilePath)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"profile": profilePath,
		"skills":  len(p.Skills),
		"courses": len(p.Courses),
	}).Debug("profile loaded")
	color.Green("Profile loaded for %s from %s", p.Name, profilePath)

	outDir := firstNonEmpty(roadmapOutputDir, cfg.Defaults.OutputDir)

	if !roadmapSkipNarrate {
		client := llm.NewClient(cfg.AnthropicAPIKey, cfg.Model, llm.WithLogger(logger))

		var roadmapPath string
		roadmapPath, err = generateRoadmap(ctx, client, p, outDir)
		if err != nil {
			return err
		}
		color.Green("Roadmap saved at: %s", roadmapPath)

		if roadmapPDF {
			renderRoadmapPDF(ctx, logger, roadmapPath, cfg.Pandoc.TemplatePath)
		}
	}

	if !roadmapSkipDiagram {
		err = buildDiagram(ctx, logger, out, cfg, p, outDir)
		if err != nil {
			return err
		}
	}

	if roadmapQuote {
		fmt.Fprintf(out, "\nQuote of the day: %s\n", quotes.Pick(nil))
	}

	return err
}

// generateRoadmap runs the generator on the profile prompt and writes the
// narrative. Nothing is written if generation fails.
func generateRoadmap(ctx context.Context, gen llm.Generator, p profile.Profile, outDir string) (roadmapPath string, err error) {
	prompt := llm.BuildRoadmapPrompt(p)

	var s *spinner
	if !getVerbose() {
		s = startSpinner(os.Stdout, "Generating your personalized roadmap...")
	}

	var text string
	text, err = gen.Generate(ctx, prompt)

	if s != nil {
		s.stop()
	}

	if err != nil {
		return roadmapPath, err
	}

	roadmapPath = filepath.Join(outDir, profile.RoadmapFilename(p.Name))
	err = renderer.WriteRoadmap(text+"\n", roadmapPath)
	return roadmapPath, err
}

// renderRoadmapPDF converts the narrative to PDF. Failures only warn; the
// text roadmap is already on disk.
func renderRoadmapPDF(ctx context.Context, logger *logrus.Logger, roadmapPath, templatePath string) {
	markdownPath := strings.TrimSuffix(roadmapPath, filepath.Ext(roadmapPath)) + ".md"
	pdfPath := strings.TrimSuffix(roadmapPath, filepath.Ext(roadmapPath)) + ".pdf"

	data, err := os.ReadFile(roadmapPath)
	if err != nil {
		logger.WithError(err).Warn("failed to read roadmap for PDF rendering")
		return
	}

	// LaTeX chokes on emoji
	err = renderer.WriteRoadmap(stripEmoji(string(data)), markdownPath)
	if err != nil {
		logger.WithError(err).Warn("failed to write roadmap markdown")
		return
	}

	err = renderer.RenderPDF(ctx, markdownPath, pdfPath, templatePath)
	if err != nil {
		logger.WithError(err).Warn("failed to render roadmap PDF")
		color.Yellow("Roadmap markdown saved at: %s", markdownPath)
		return
	}
	color.Green("Roadmap PDF saved at: %s", pdfPath)

	if !roadmapKeepMarkdown {
		err = renderer.Cleanup(markdownPath)
		if err != nil {
			logger.WithError(err).Warn("failed to clean up markdown")
		}
	}
}

// buildDiagram prints the diagram link and optionally downloads the image.
func buildDiagram(ctx context.Context, logger *logrus.Logger, out io.Writer, cfg config.Config, p profile.Profile, outDir string) (err error) {
	var source string
	if roadmapDiagramFile != "" {
		source, err = diagram.LoadSource(roadmapDiagramFile, os.Stdin)
		if err != nil {
			return err
		}
	} else {
		source = diagram.FromProfile(p)
	}

	var builder plantuml.LinkBuilder
	builder, err = cfg.LinkBuilder()
	if err != nil {
		err = errors.Wrap(err, "invalid diagram configuration")
		return err
	}

	var url string
	url, err = builder.URL(source)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"source_bytes": len(source),
		"url_length":   len(url),
	}).Debug("diagram link built")

	fmt.Fprintln(out, "\nVisual career map:")
	fmt.Fprintln(out, url)

	if roadmapFetchImage {
		imagePath := filepath.Join(outDir, diagramFilename(p.Name, builder.BaseURL()))

		var size int
		size, err = renderer.FetchImage(ctx, url, imagePath)
		if err != nil {
			// The link is still usable; image download is best effort
			logger.WithError(err).Warn("failed to fetch diagram image")
			err = nil
			return err
		}
		logger.WithField("bytes", size).Debug("diagram image fetched")
		color.Green("Diagram image saved at: %s", imagePath)
	}

	return err
}

// diagramFilename names the downloaded image after the person, using the
// renderer's output format (the last base URL segment) as extension.
func diagramFilename(name, baseURL string) (filename string) {
	ext := "png"
	switch format := path.Base(baseURL); format {
	case "png", "svg", "txt":
		ext = format
	}
	filename = "career_diagram_for_" + strings.ReplaceAll(name, " ", "_") + "." + ext
	return filename
}

// stripEmoji removes emoji code points along with the single space that
// usually follows them, leaving indentation alone.
func stripEmoji(text string) (stripped string) {
	result := strings.Builder{}
	dropSpace := false
	for _, r := range text {
		if isEmoji(r) {
			dropSpace = true
			continue
		}
		if dropSpace && r == ' ' {
			dropSpace = false
			continue
		}
		dropSpace = false
		result.WriteRune(r)
	}
	stripped = result.String()
	return stripped
}

func isEmoji(r rune) (ok bool) {
	ok = (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) || r == 0xFE0F || r == 0x200D
	return ok
}

func firstNonEmpty(values ...string) (result string) {
	for _, v := range values {
		if v != "" {
			result = v
			return result
		}
	}
	return result
}
