// Package diagram produces PlantUML career diagrams.
package diagram

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const header = `@startuml
skinparam backgroundColor #FFFFFF
skinparam defaultFontSize 14
skinparam node {
    BackgroundColor white
    BorderColor black
    FontSize 14
}
skinparam ArrowColor #4B8BBE
`

// FromProfile renders an activity diagram walking from the person's
// education through skills, courses and experience to their target roles.
func FromProfile(p profile.Profile) (source string) {
	// NoLower only touches the first letter, so SQL and JavaScript survive.
	titleCase := cases.Title(language.English, cases.NoLower)

	var sb strings.Builder
	sb.WriteString(header)
	fmt.Fprintf(&sb, "\ntitle Career Roadmap - %s\n\nstart\n\n", label(p.Name))

	fmt.Fprintf(&sb, ":🎓 Education\\n%s;\n", label(p.Education))
	sb.WriteString("note right\n\"You are here\"\nend note\n\n")

	if len(p.Skills) > 0 {
		skills := make([]string, 0, len(p.Skills))
		for _, skill := range p.SkillLabels() {
			skills = append(skills, label(titleCase.String(skill)))
		}
		fmt.Fprintf(&sb, ":🛠️ Skills\\n%s;\n\n", strings.Join(skills, "\\n"))
	}

	if len(p.Courses) > 0 {
		names := make([]string, 0, len(p.Courses))
		for _, name := range p.CourseLabels() {
			names = append(names, label(name))
		}
		fmt.Fprintf(&sb, ":📚 Completed Courses\\n%s;\n\n", strings.Join(names, ", "))
	}

	if strings.TrimSpace(p.Experience) != "" {
		fmt.Fprintf(&sb, ":💼 Experience\\n%s;\n\n", label(p.Experience))
	}

	switch len(p.TargetRoles) {
	case 0:
	case 1:
		fmt.Fprintf(&sb, ":🚀 Target Role\\n%s;\n\n", label(p.TargetRoles[0]))
	default:
		for i, role := range p.TargetRoles {
			if i == 0 {
				sb.WriteString("split\n")
			} else {
				sb.WriteString("split again\n")
			}
			fmt.Fprintf(&sb, "    :🚀 Path %d:\\n%s;\n", i+1, label(role))
		}
		sb.WriteString("endsplit\n\n")
	}

	sb.WriteString("stop\n@enduml\n")

	source = sb.String()
	return source
}

// label makes user text safe inside an activity label. A semicolon would end
// the activity early and a raw newline would break the line-oriented syntax.
func label(text string) (safe string) {
	r := strings.NewReplacer(
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
		";", ",",
	)
	safe = r.Replace(strings.TrimSpace(text))
	return safe
}

// LoadSource reads diagram source from path, or from stdin when path is "-".
func LoadSource(path string, stdin io.Reader) (source string, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			err = errors.Wrap(err, "failed to read diagram source from stdin")
			return source, err
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read diagram source: %s", path)
			return source, err
		}
	}

	source = string(data)
	return source, err
}
