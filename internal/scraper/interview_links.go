package scraper

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Generator builds one labeled link for a single platform. An empty string
// with a nil error means the platform does not apply to the inputs.
type Generator struct {
	Platform string
	Build    func(companyName, jobTitle string) (string, error)
}

var (
	ErrInvalidEncoding = errors.New("input is not valid utf-8")

	// Separators plus the ASCII controls and BOM that count as whitespace in
	// URL slugs. RE2's \s alone misses NBSP and vertical tab.
	whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r\p{Z}\x{FEFF}]+`)

	// url.QueryEscape escapes a few marks that URI components keep literal.
	componentUnescape = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")
)

// Synthesizer turns a company name and job title into interview preparation
// links. It never fetches anything; links are built from the inputs alone.
type Synthesizer struct {
	generators []Generator
	logger     *log.Logger
}

func NewSynthesizer(logger *log.Logger, generators ...Generator) *Synthesizer {
	if len(generators) == 0 {
		generators = DefaultGenerators()
	}
	return &Synthesizer{generators: generators, logger: logger}
}

func DefaultGenerators() []Generator {
	return []Generator{
		{Platform: "glassdoor", Build: GlassdoorLink},
		{Platform: "leetcode", Build: LeetCodeLink},
		{Platform: "indeed", Build: IndeedLink},
		{Platform: "linkedin", Build: LinkedInLink},
	}
}

// Synthesize runs every generator in order and keeps the links that were
// produced. A failing generator only removes its own link.
func (s *Synthesizer) Synthesize(companyName, jobTitle string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.generators))
	for _, g := range s.generators {
		link := s.run(g, companyName, jobTitle)
		if link == "" {
			continue
		}
		out = append(out, link)
	}
	return out
}

func (s *Synthesizer) run(g Generator, companyName, jobTitle string) (link string) {
	if g.Build == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			s.logf("[Resources] %s link generation panicked company=%q title=%q err=%v", g.Platform, companyName, jobTitle, r)
			link = ""
		}
	}()

	link, err := g.Build(companyName, jobTitle)
	if err != nil {
		s.logf("[Resources] %s link generation failed company=%q title=%q err=%v", g.Platform, companyName, jobTitle, err)
		return ""
	}
	return link
}

func (s *Synthesizer) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func GlassdoorLink(companyName, jobTitle string) (string, error) {
	company, err := encodeComponent(slug(companyName))
	if err != nil {
		return "", err
	}
	job, err := encodeComponent(slug(jobTitle))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Glassdoor Interview Questions: https://www.glassdoor.com/Interview/%s-%s-interview-questions-SRCH_KE0,%d,%d.htm",
		company, job, utf8.RuneCountInString(companyName), utf8.RuneCountInString(jobTitle),
	), nil
}

func LeetCodeLink(_, jobTitle string) (string, error) {
	lower := strings.ToLower(jobTitle)
	if !strings.Contains(lower, "engineer") && !strings.Contains(lower, "developer") {
		return "", nil
	}
	fields := strings.FieldsFunc(jobTitle, isSlugSpace)
	if len(fields) == 0 {
		return "", nil
	}
	term, err := encodeComponent(fields[0])
	if err != nil {
		return "", err
	}
	return "LeetCode Problems: https://leetcode.com/problemset/all/?search=" + term, nil
}

func IndeedLink(companyName, _ string) (string, error) {
	company, err := encodeComponent(slug(companyName))
	if err != nil {
		return "", err
	}
	return "Indeed Company Info: https://www.indeed.com/cmp/" + company + "/faq", nil
}

func LinkedInLink(companyName, jobTitle string) (string, error) {
	keywords, err := encodeComponent(companyName + " " + jobTitle + " interview")
	if err != nil {
		return "", err
	}
	return "LinkedIn Search Results: https://www.linkedin.com/search/results/all/?keywords=" + keywords, nil
}

// FallbackResources is served when no specific link could be produced.
func FallbackResources() []string {
	return []string{
		"General interview preparation: https://www.themuse.com/advice/interviewing",
		"Behavioral questions: https://www.indeed.com/career-advice/interviewing/common-interview-questions",
		"Technical interview guide: https://www.interviewbit.com/technical-interview-questions/",
	}
}

func isSlugSpace(r rune) bool {
	return unicode.Is(unicode.Z, r) || strings.ContainsRune("\t\n\v\f\r\uFEFF", r)
}

func slug(s string) string {
	return whitespaceRun.ReplaceAllString(s, "-")
}

// encodeComponent percent-encodes s for use inside a URL path segment or
// query value with URI-component rules. Spaces become %20.
func encodeComponent(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", ErrInvalidEncoding
	}
	return componentUnescape.Replace(url.QueryEscape(s)), nil
}
