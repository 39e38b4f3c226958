package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

const brand = "TalentHive"

type prepLink struct {
	Text string
	Href string
}

type prepEmailData struct {
	StudentName string
	JobTitle    string
	CompanyName string
	Links       []prepLink
	Year        int
	Brand       string
}

var prepEmailTmpl = template.Must(template.New("prep").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #6e48aa; padding: 20px; color: white; text-align: center;">
    <h1 style="margin: 0;">Interview Preparation Resources</h1>
  </div>
  <div style="padding: 20px; background-color: #f9f9f9;">
    <p>Dear {{.StudentName}},</p>
    <p>Here are some resources to help you prepare for your interview for <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong>:</p>
    <div style="background-color: white; border-radius: 5px; padding: 15px; margin: 15px 0;">
      <h3 style="color: #6e48aa; margin-top: 0;">Preparation Resources</h3>
      <ul style="padding-left: 20px;">
{{- range .Links}}
        <li style="margin-bottom: 10px;">{{if .Href}}<a href="{{.Href}}" style="color: #6e48aa; text-decoration: none;">{{.Text}}</a>{{else}}{{.Text}}{{end}}</li>
{{- end}}
      </ul>
    </div>
    <p style="margin-bottom: 0;">Best of luck with your interview!</p>
  </div>
  <div style="background-color: #f0f0f0; padding: 15px; text-align: center; font-size: 12px; color: #666;">
    <p>You're receiving this email because you applied for a job through {{.Brand}}.</p>
    <p>&copy; {{.Year}} {{.Brand}}. All rights reserved.</p>
  </div>
</div>
`))

// RenderPrepEmail builds the HTML body listing resources. A line containing
// a URL links to its last whitespace-separated token.
func RenderPrepEmail(studentName, jobTitle, companyName string, resources []string, now time.Time) (string, error) {
	if strings.TrimSpace(studentName) == "" {
		studentName = "Candidate"
	}
	data := prepEmailData{
		StudentName: studentName,
		JobTitle:    jobTitle,
		CompanyName: companyName,
		Year:        now.Year(),
		Brand:       brand,
	}
	for _, r := range resources {
		link := prepLink{Text: r}
		if strings.Contains(r, "http") {
			fields := strings.Fields(r)
			if len(fields) > 0 {
				link.Href = fields[len(fields)-1]
			}
		}
		data.Links = append(data.Links, link)
	}

	var buf bytes.Buffer
	if err := prepEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func PrepSubject(jobTitle, companyName string) string {
	return fmt.Sprintf("Interview Preparation Resources for %s at %s", jobTitle, companyName)
}

func ConfirmationSubject(jobTitle, companyName string) string {
	return fmt.Sprintf("Job Application : %s at %s", truncateRunes(jobTitle, 50), truncateRunes(companyName, 50))
}

func RenderConfirmationText(studentName, jobTitle, companyName string, submittedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", studentName)
	fmt.Fprintf(&b, "Thank you for applying to %s at %s.\n\n", jobTitle, companyName)
	b.WriteString("We've received your application and will review it carefully. You'll hear from us if your qualifications match our needs.\n\n")
	b.WriteString("Application details:\n")
	fmt.Fprintf(&b, "- Position: %s\n", jobTitle)
	fmt.Fprintf(&b, "- Company: %s\n\n", companyName)
	fmt.Fprintf(&b, "For your records, this application was submitted on %s.\n\n", submittedAt.Format("January 2, 2006"))
	b.WriteString("If you have any questions, please reply to this email.\n\n")
	b.WriteString("Best regards,\n" + brand)
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
