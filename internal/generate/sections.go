package generate

import (
	"strings"

	"resumeflow/internal/types"
)

// sectionHeaders is the lexicon of recognized resume section headers.
// A line counts as a header when its trimmed, uppercased form contains
// any of these.
var sectionHeaders = []string{
	"PROFESSIONAL SUMMARY", "SUMMARY", "OBJECTIVE",
	"EXPERIENCE", "PROFESSIONAL EXPERIENCE", "WORK EXPERIENCE",
	"EDUCATION", "SKILLS", "TECHNICAL SKILLS", "CORE SKILLS",
	"CERTIFICATIONS", "PROJECTS", "ACHIEVEMENTS", "PUBLICATIONS",
}

func isSectionHeader(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	for _, header := range sectionHeaders {
		if strings.Contains(upper, header) {
			return true
		}
	}
	return false
}

// ParseSections splits resume text into named sections.
//
// Text before the first recognized header is discarded. A header
// directly followed by another header yields an empty section. A
// trailing header with no lines after it yields no section.
func ParseSections(resumeText string) []types.ResumeSection {
	var sections []types.ResumeSection
	var currentSection string
	var currentContent []string

	for _, line := range strings.Split(resumeText, "\n") {
		switch {
		case isSectionHeader(line) && currentSection != "":
			sections = append(sections, types.ResumeSection{
				SectionName:  currentSection,
				Content:      strings.Join(currentContent, "\n"),
				KeywordsUsed: []string{},
			})
			currentSection = strings.TrimSpace(line)
			currentContent = nil
		case isSectionHeader(line):
			currentSection = strings.TrimSpace(line)
			currentContent = nil
		case currentSection != "":
			currentContent = append(currentContent, line)
		}
	}

	if currentSection != "" && len(currentContent) > 0 {
		sections = append(sections, types.ResumeSection{
			SectionName:  currentSection,
			Content:      strings.Join(currentContent, "\n"),
			KeywordsUsed: []string{},
		})
	}

	return sections
}
