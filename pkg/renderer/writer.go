package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteRoadmap writes the narrative text to outputPath, creating parent
// directories as needed.
func WriteRoadmap(content, outputPath string) (err error) {
	err = ensureDir(outputPath)
	if err != nil {
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write roadmap file: %s", outputPath)
		return err
	}

	return err
}

// Cleanup removes intermediate files.
func Cleanup(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove file: %s", path)
			return err
		}
	}
	return err
}

func ensureDir(outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}
	return err
}
