package wesmaps

import (
	"strings"

	"coursecatalog-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// every extractor in this file resolves to its field's default when the page
// does not have the expected structure, none of them fail. the professor is the one
// field that can be empty: a present but nameless instructor link.

const (
	labelExaminations  = "Examinations and Assignments:"
	labelCredit        = "Credit:"
	labelPrerequisites = "Prerequisites:"
	labelInstructor    = "Instructor(s):"
	labelTimes         = "Times:"
	labelLocation      = "Location:"
)

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func bold(doc *goquery.Document, match htmlutil.TextMatcher) *goquery.Selection {
	return htmlutil.FindByText(doc.Selection, "b", match)
}

func extractTitle(doc *goquery.Document) string {
	title := doc.Find("span.title").First()
	return orDefault(strings.TrimSpace(title.Text()), DefaultCourseName)
}

// the info cell holds three lines when the term is known, ex.
// "Course Code", "Spring 2025", "1251 Spring". a text node can span several lines.
func extractSemester(doc *goquery.Document) string {
	info := doc.Find("td[valign=top]").First()
	nodes := htmlutil.TextNodes(info)
	if len(nodes) == 0 {
		return DefaultSemester
	}
	lines := strings.Split(strings.Join(nodes, "\n"), "\n")
	if len(lines) != 3 {
		return DefaultSemester
	}
	tokens := strings.Fields(lines[2])
	if len(tokens) == 0 {
		return DefaultSemester
	}
	return tokens[0]
}

func extractDescription(doc *goquery.Document) string {
	title := doc.Find("span.title").First()
	if title.Length() == 0 {
		return DefaultDescription
	}
	cell := htmlutil.FindNext(doc, title, "td[colspan='3']", nil)
	return orDefault(strings.Join(htmlutil.TextNodes(cell), " "), DefaultDescription)
}

func extractExaminations(doc *goquery.Document) string {
	label := bold(doc, htmlutil.TextEquals(labelExaminations))
	text, ok := htmlutil.NextSiblingNodeText(label)
	if !ok {
		return DefaultExaminations
	}
	text = strings.ReplaceAll(text, ":", "")
	return orDefault(strings.TrimSpace(text), DefaultExaminations)
}

func labelledText(doc *goquery.Document, match htmlutil.TextMatcher, fallback string) string {
	text, ok := htmlutil.NextSiblingText(bold(doc, match))
	if !ok {
		return fallback
	}
	return orDefault(strings.TrimSpace(text), fallback)
}

func extractCredit(doc *goquery.Document) string {
	return labelledText(doc, htmlutil.TextContains(labelCredit), DefaultCredit)
}

func extractPrerequisites(doc *goquery.Document) string {
	return labelledText(doc, htmlutil.TextContains(labelPrerequisites), DefaultPrerequisites)
}

func extractProfessor(doc *goquery.Document) string {
	label := bold(doc, htmlutil.TextEquals(labelInstructor))
	anchor := htmlutil.NextSiblingElement(label, "a")
	if anchor.Length() == 0 {
		return DefaultProfessor
	}
	// an anchor without a name yields no professor at all, ingestion creates no link for it
	return NormalizeProfessorName(anchor.Text())
}

// the times label is searched for after the instructor label so the meeting time
// belongs to the same block, a page without an instructor has no usable time.
func extractTime(doc *goquery.Document) string {
	instructor := bold(doc, htmlutil.TextEquals(labelInstructor))
	if instructor.Length() == 0 {
		return DefaultTime
	}
	times := htmlutil.FindNext(doc, instructor, "b", htmlutil.TextEquals(labelTimes))
	text, ok := htmlutil.NextSiblingText(times)
	if !ok {
		return DefaultTime
	}
	text = strings.TrimRight(strings.TrimSpace(text), ";")
	return orDefault(strings.TrimSpace(text), DefaultTime)
}

func extractLocation(doc *goquery.Document) string {
	text, ok := htmlutil.NextSiblingText(bold(doc, htmlutil.TextEquals(labelLocation)))
	if !ok {
		return DefaultLocation
	}
	var locations []string
	for _, loc := range strings.Split(text, ";") {
		loc = strings.TrimSpace(loc)
		if loc != "" {
			locations = append(locations, loc)
		}
	}
	return orDefault(strings.Join(locations, ", "), DefaultLocation)
}

// ParseCourse builds a course record out of a course detail page. courseCode and
// section come from the offerings index, section must already be normalized.
func ParseCourse(doc *goquery.Document, courseCode, section string) CourseRecord {
	return CourseRecord{
		CourseName:              extractTitle(doc),
		CourseCode:              courseCode,
		Section:                 section,
		Semester:                extractSemester(doc),
		Description:             extractDescription(doc),
		ExaminationsAssignments: extractExaminations(doc),
		Credit:                  extractCredit(doc),
		Prerequisites:           extractPrerequisites(doc),
		Professor:               extractProfessor(doc),
		Time:                    extractTime(doc),
		Location:                extractLocation(doc),
	}
}
