package llm

import (
	"strings"
	"testing"

	"github.com/nikogura/career-roadmap/pkg/profile"
)

func testProfile() (p profile.Profile) {
	p = profile.Profile{
		Name:       "Asha Rao",
		Education:  "BA Sociology",
		Skills:     []string{"Communication", "Customer Service"},
		Experience: "NGO work (2 years)",
		Courses: []profile.Course{
			{CourseName: "Digital Literacy", Marks: "88", Date: "2023-03-01"},
			{CourseName: "Customer Support", Marks: "A+", Date: "2023-06-15"},
		},
	}
	return p
}

func TestBuildRoadmapPrompt(t *testing.T) {
	prompt := BuildRoadmapPrompt(testProfile())

	if prompt == "" {
		t.Fatal("Expected non-empty prompt")
	}

	// Should contain every profile field.
	for _, want := range []string{
		"Name: Asha Rao",
		"Education: BA Sociology",
		"Skills: Communication, Customer Service",
		"Experience: NGO work (2 years)",
		"- Digital Literacy (Marks: 88, Date: 2023-03-01)",
		"- Customer Support (Marks: A+, Date: 2023-06-15)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt should contain %q", want)
		}
	}
}

func TestBuildRoadmapPromptInstructions(t *testing.T) {
	prompt := BuildRoadmapPrompt(testProfile())

	if len(roadmapInstructions) != 8 {
		t.Fatalf("Expected 8 instructions, got %d", len(roadmapInstructions))
	}

	// Instructions should be numbered and in order.
	last := -1
	for i, instruction := range roadmapInstructions {
		idx := strings.Index(prompt, instruction)
		if idx == -1 {
			t.Errorf("Prompt should contain instruction %d", i+1)
			continue
		}
		if idx < last {
			t.Errorf("Instruction %d is out of order", i+1)
		}
		last = idx
	}

	for _, want := range []string{"6-month action plan", "2-3 more relevant courses", "motivational note", "1. Greet"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt should contain %q", want)
		}
	}
}

func TestBuildRoadmapPromptNoCourses(t *testing.T) {
	p := testProfile()
	p.Courses = nil

	prompt := BuildRoadmapPrompt(p)

	if !strings.Contains(prompt, "- None yet") {
		t.Error("Prompt should note that no courses were completed")
	}
}

func TestBuildRoadmapPromptKeepsCourseOrder(t *testing.T) {
	prompt := BuildRoadmapPrompt(testProfile())

	first := strings.Index(prompt, "Digital Literacy")
	second := strings.Index(prompt, "Customer Support (")
	if first == -1 || second == -1 || first > second {
		t.Error("Courses should appear in profile order")
	}
}
