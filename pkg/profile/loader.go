package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a profile from a JSON or YAML file, chosen by extension.
func Load(path string) (p Profile, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile file: %s", path)
		return p, err
	}

	p, err = Parse(fileData, filepath.Ext(path))
	if err != nil {
		err = errors.Wrapf(err, "failed to parse profile: %s", path)
		return p, err
	}

	// Validate data
	err = p.Validate()
	if err != nil {
		err = errors.Wrap(err, "profile validation failed")
		return p, err
	}

	return p, err
}

// Parse decodes profile data. ext selects the format: ".yaml" and ".yml"
// are YAML, anything else is JSON.
func Parse(data []byte, ext string) (p Profile, err error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
		if err != nil {
			err = errors.Wrap(err, "invalid profile YAML")
			return p, err
		}
	default:
		err = json.Unmarshal(data, &p)
		if err != nil {
			err = errors.Wrap(err, "invalid profile JSON")
			return p, err
		}
	}

	return p, err
}

// Validate checks that the profile is well-formed.
func (p *Profile) Validate() (err error) {
	if strings.TrimSpace(p.Name) == "" {
		err = errors.New("profile name is required")
		return err
	}

	for i, course := range p.Courses {
		if strings.TrimSpace(course.CourseName) == "" {
			err = errors.Errorf("course at index %d missing course_name", i)
			return err
		}
	}

	return err
}

// SkillLabels returns the skills in profile order.
func (p *Profile) SkillLabels() (labels []string) {
	labels = make([]string, 0, len(p.Skills))
	labels = append(labels, p.Skills...)
	return labels
}

// CourseLabels returns the course names in profile order.
func (p *Profile) CourseLabels() (labels []string) {
	labels = make([]string, 0, len(p.Courses))
	for _, course := range p.Courses {
		labels = append(labels, course.CourseName)
	}
	return labels
}

// RoadmapFilename names the narrative download for a person. Spaces become
// underscores; nothing else is touched.
func RoadmapFilename(name string) (filename string) {
	filename = "career_roadmap_for_" + strings.ReplaceAll(name, " ", "_") + ".txt"
	return filename
}
