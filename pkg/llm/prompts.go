package llm

import (
	"fmt"
	"strings"

	"github.com/nikogura/career-roadmap/pkg/profile"
)

// roadmapInstructions are the sections the narrative must cover, in order.
//
//nolint:gochecknoglobals // Prompt template constant
var roadmapInstructions = []string{
	"Greet the user by name.",
	"Describe their education and give a positive or neutral assessment of it.",
	"Analyze their skills and say whether they are sufficient, average, or need improvement.",
	"Discuss their work experience, optionally with real-life quotes or examples of where such experience is valued.",
	"Review the completed courses and recommend 2-3 more relevant courses they can take.",
	"Suggest a personalized career path: job roles to target, required skills or certifications, and industries.",
	"Give an approximate 6-month action plan with timelines.",
	"End with a motivational note.",
}

// BuildRoadmapPrompt renders the career-roadmap prompt for a profile.
func BuildRoadmapPrompt(p profile.Profile) (prompt string) {
	var courses strings.Builder
	for _, course := range p.Courses {
		fmt.Fprintf(&courses, "- %s (Marks: %s, Date: %s)\n", course.CourseName, course.Marks, course.Date)
	}
	if courses.Len() == 0 {
		courses.WriteString("- None yet\n")
	}

	var steps strings.Builder
	for i, instruction := range roadmapInstructions {
		fmt.Fprintf(&steps, "%d. %s\n", i+1, instruction)
	}

	prompt = fmt.Sprintf(`You are a friendly career guide assistant.

Generate a roadmap in a friendly and structured format for the following user:

Name: %s
Education: %s
Skills: %s
Experience: %s

Courses Completed:
%s
Now, do the following:

%s`, p.Name, p.Education, strings.Join(p.Skills, ", "), p.Experience, courses.String(), steps.String())

	return prompt
}
