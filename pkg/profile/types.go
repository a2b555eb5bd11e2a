package profile

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Profile is the structured personal record a roadmap is built from.
type Profile struct {
	Name        string   `json:"name" yaml:"name"`
	Education   string   `json:"education" yaml:"education"`
	Skills      []string `json:"skills" yaml:"skills"`
	Experience  string   `json:"experience" yaml:"experience"`
	Courses     []Course `json:"courses" yaml:"courses"`
	TargetRoles []string `json:"target_roles,omitempty" yaml:"target_roles,omitempty"`
}

// Course is a completed course.
type Course struct {
	CourseName string `json:"course_name" yaml:"course_name"`
	Marks      Marks  `json:"marks" yaml:"marks"`
	Date       string `json:"date" yaml:"date"`
}

// Marks holds a course result verbatim. Profiles mix numeric scores with
// grades like "A+", so both JSON numbers and strings are accepted.
type Marks string

// UnmarshalJSON accepts a JSON string or number.
func (m *Marks) UnmarshalJSON(data []byte) (err error) {
	var s string
	if json.Unmarshal(data, &s) == nil {
		*m = Marks(s)
		return err
	}

	var n json.Number
	err = json.Unmarshal(data, &n)
	if err != nil {
		err = errors.Wrapf(err, "marks must be a string or number, got %s", string(data))
		return err
	}

	*m = Marks(n.String())
	return err
}
