package renderer

import (
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// RenderPDF converts the markdown roadmap to PDF with pandoc. templatePath
// is optional; pandoc's default LaTeX template is used when it is empty.
func RenderPDF(ctx context.Context, markdownPath, outputPath, templatePath string) (err error) {
	// Validate pandoc exists
	err = checkPandocExists(ctx)
	if err != nil {
		return err
	}

	inputs := []string{markdownPath}
	if templatePath != "" {
		inputs = append(inputs, templatePath)
	}
	err = validateFiles(inputs...)
	if err != nil {
		return err
	}

	err = ensureDir(outputPath)
	if err != nil {
		return err
	}

	args := []string{"-f", "markdown", "-o", outputPath}
	if templatePath != "" {
		args = append(args, "--template", templatePath)
	}
	args = append(args, markdownPath)

	cmd := exec.CommandContext(ctx, "pandoc", args...)

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context) (err error) {
	cmd := exec.CommandContext(ctx, "pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to generate PDFs)")
		return err
	}
	return err
}

// validateFiles checks that required files exist.
func validateFiles(paths ...string) (err error) {
	for _, path := range paths {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	return err
}
