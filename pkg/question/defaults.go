package question

import (
	"fmt"
	"strings"
)

const (
	// FallbackDepartment is used when a job has no departments.
	FallbackDepartment = "team"
	// FallbackOffice is used when a job has no offices.
	FallbackOffice = "our office"
)

// DefaultQuestions returns the fixed six-question schema used when upstream
// supplies no questions. Required flags: first/last/email required, the rest
// optional.
func DefaultQuestions() []Question {
	return []Question{
		{Name: NameFirstName, Label: "First Name", Type: TypeShortText, Required: true},
		{Name: NameLastName, Label: "Last Name", Type: TypeShortText, Required: true},
		{Name: NameEmail, Label: "Email", Type: TypeShortText, Required: true},
		{Name: NamePhone, Label: "Phone", Type: TypeShortText},
		{Name: NameResume, Label: "Resume", Type: TypeAttachment},
		{Name: NameCoverLetter, Label: "Cover Letter", Type: TypeAttachment},
	}
}

// DefaultContent synthesizes a display-ready description for jobs whose
// upstream record carries no content. Empty department/office names fall back
// to generic wording.
func DefaultContent(jobName, departmentName, officeName string) string {
	if strings.TrimSpace(departmentName) == "" {
		departmentName = FallbackDepartment
	}
	if strings.TrimSpace(officeName) == "" {
		officeName = FallbackOffice
	}

	var b strings.Builder
	b.WriteString("<div class=\"prose prose-sm max-w-none\">\n")
	b.WriteString("<h3>About this role</h3>\n")
	fmt.Fprintf(&b, "<p>We are looking for a talented %s to join our %s in %s. This is an exciting opportunity to make a significant impact in a growing organization.</p>\n", jobName, departmentName, officeName)
	b.WriteString("<h3>What you'll do</h3>\n<ul>\n")
	b.WriteString("<li>Collaborate with cross-functional teams to deliver high-quality solutions</li>\n")
	b.WriteString("<li>Take ownership of key projects and drive them to completion</li>\n")
	b.WriteString("<li>Contribute to the growth and success of our organization</li>\n")
	b.WriteString("<li>Participate in strategic planning and decision-making processes</li>\n")
	b.WriteString("</ul>\n")
	b.WriteString("<h3>What we're looking for</h3>\n<ul>\n")
	b.WriteString("<li>Strong technical skills and relevant experience</li>\n")
	b.WriteString("<li>Excellent communication and collaboration abilities</li>\n")
	b.WriteString("<li>Problem-solving mindset and attention to detail</li>\n")
	b.WriteString("<li>Passion for innovation and continuous learning</li>\n")
	b.WriteString("</ul>\n</div>")
	return b.String()
}
