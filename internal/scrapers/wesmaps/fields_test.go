package wesmaps

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/course_full.html
var courseFullHtml string

//go:embed testdata/course_sparse.html
var courseSparseHtml string

//go:embed testdata/course_times.html
var courseTimesHtml string

func parseFixture(t *testing.T, contents string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseCourseFull(t *testing.T) {
	record := ParseCourse(parseFixture(t, courseFullHtml), "BIOL101", "1")

	expected := CourseRecord{
		CourseName:              "Principles of Biology I",
		CourseCode:              "BIOL101",
		Section:                 "1",
		Semester:                "1249",
		Description:             "An introduction to cell biology.",
		ExaminationsAssignments: "Final Exam",
		Credit:                  "1.00",
		Prerequisites:           "None",
		Professor:               "Jane Doe",
		Time:                    ".M.W... 10:50AM-12:10PM",
		Location:                "SCIE 121, SCIE 58",
	}
	if diff := cmp.Diff(expected, record); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestParseCourseSparse(t *testing.T) {
	record := ParseCourse(parseFixture(t, courseSparseHtml), "HIST210", "3")

	expected := CourseRecord{
		CourseName:              DefaultCourseName,
		CourseCode:              "HIST210",
		Section:                 "3",
		Semester:                DefaultSemester,
		Description:             DefaultDescription,
		ExaminationsAssignments: DefaultExaminations,
		Credit:                  DefaultCredit,
		Prerequisites:           DefaultPrerequisites,
		Professor:               DefaultProfessor,
		// the only times label comes before the instructor label
		Time:     DefaultTime,
		Location: DefaultLocation,
	}
	if diff := cmp.Diff(expected, record); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestParseCourseEmptyPage(t *testing.T) {
	record := ParseCourse(parseFixture(t, "<html><body><p>moved</p></body></html>"), "X", "1")
	require.Equal(t, CourseRecord{
		CourseName:              "Unknown",
		CourseCode:              "X",
		Section:                 "1",
		Semester:                "Not Available",
		Description:             "No description available.",
		ExaminationsAssignments: "Unavailable",
		Credit:                  "Not Available",
		Prerequisites:           "Not Available",
		Professor:               "Not Available",
		Time:                    "TBA",
		Location:                "Not Available",
	}, record)
}

func TestExtractTimeUsesInstructorBlock(t *testing.T) {
	doc := parseFixture(t, courseTimesHtml)
	require.Equal(t, "....F.. 09:00AM-09:50AM", extractTime(doc))
	require.Equal(t, "Mary O'Brien", extractProfessor(doc))
}

func TestExtractExaminations(t *testing.T) {
	table := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "text",
			body:     `<b>Examinations and Assignments: </b>Final Exam<br/>`,
			expected: "Final Exam",
		},
		{
			name:     "whitespace only",
			body:     `<b>Examinations and Assignments:</b>    <br/>`,
			expected: "Unavailable",
		},
		{
			name:     "colon only",
			body:     `<b>Examinations and Assignments:</b> : <br/>`,
			expected: "Unavailable",
		},
		{
			name:     "colons stripped",
			body:     `<b>Examinations and Assignments:</b> Midterm: 40%<br/>`,
			expected: "Midterm 40%",
		},
		{
			name:     "element sibling",
			body:     `<b>Examinations and Assignments:</b><i>Two papers</i>`,
			expected: "Two papers",
		},
		{
			name:     "label absent",
			body:     `<b>Credit:</b> 1.00`,
			expected: "Unavailable",
		},
		{
			name:     "label last",
			body:     `<p><b>Examinations and Assignments:</b></p>`,
			expected: "Unavailable",
		},
	}

	for _, row := range table {
		doc := parseFixture(t, "<html><body>"+row.body+"</body></html>")
		require.Equal(t, row.expected, extractExaminations(doc), row.name)
	}
}

func TestExtractSemester(t *testing.T) {
	table := []struct {
		cell     string
		expected string
	}{
		{cell: `A<br/>B<br/>1251 SP`, expected: "1251"},
		{cell: `A<br/>B`, expected: DefaultSemester},
		{cell: `A<br/>B<br/>C<br/>D`, expected: DefaultSemester},
		{cell: `A<br/> <br/>B<br/>  1239   FA `, expected: "1239"},
		// text nodes spanning several lines are counted line by line
		{cell: "Course<br/>Spring 2025\n(1251)<br/>1251 Spring", expected: DefaultSemester},
		{cell: "Course\nSpring 2025<br/>1249 FA", expected: "1249"},
		{cell: ``, expected: DefaultSemester},
	}
	for _, row := range table {
		doc := parseFixture(t, `<html><body><table><tr><td valign="top">`+row.cell+`</td></tr></table></body></html>`)
		require.Equal(t, row.expected, extractSemester(doc), row.cell)
	}
}

func TestExtractLocation(t *testing.T) {
	table := []struct {
		text     string
		expected string
	}{
		{text: "SCIE 121", expected: "SCIE 121"},
		{text: " SCIE 121 ;  ; PAC 001;", expected: "SCIE 121, PAC 001"},
		{text: " ;; ", expected: DefaultLocation},
	}
	for _, row := range table {
		doc := parseFixture(t, "<html><body><b>Location:</b>"+row.text+"<br/></body></html>")
		require.Equal(t, row.expected, extractLocation(doc), row.text)
	}
}

func TestExtractCreditAndPrerequisites(t *testing.T) {
	doc := parseFixture(t, `<html><body>
		<b>Credit:</b>   0.50   <br/>
		<b>Prerequisites:</b> BIOL181 or  BIOL182<br/>
	</body></html>`)
	require.Equal(t, "0.50", extractCredit(doc))
	require.Equal(t, "BIOL181 or  BIOL182", extractPrerequisites(doc))

	doc = parseFixture(t, `<html><body><b>GenEd Credit:</b> 1<br/></body></html>`)
	require.Equal(t, "1", extractCredit(doc))
	require.Equal(t, DefaultPrerequisites, extractPrerequisites(doc))
}

func TestExtractTimeWithoutInstructor(t *testing.T) {
	doc := parseFixture(t, `<html><body><table><tr><td>
		<b>Times:</b> .M.W... 10:00AM;<br/>
		<b>Location:</b> SCIE 121<br/>
	</td></tr></table></body></html>`)
	require.Equal(t, DefaultTime, extractTime(doc))
	require.Equal(t, DefaultProfessor, extractProfessor(doc))
}

func TestExtractProfessor(t *testing.T) {
	table := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "anchor",
			body:     `<b>Instructor(s):</b> <a href="p.html">Smith, John Q</a>`,
			expected: "John Smith",
		},
		{
			name:     "anchor without a name",
			body:     `<b>Instructor(s):</b> <a href="p.html">  </a>`,
			expected: "",
		},
		{
			name:     "no anchor",
			body:     `<b>Instructor(s):</b> STAFF`,
			expected: DefaultProfessor,
		},
		{
			name:     "no label",
			body:     `<a href="p.html">Smith, John</a>`,
			expected: DefaultProfessor,
		},
	}
	for _, row := range table {
		doc := parseFixture(t, "<html><body><table><tr><td>"+row.body+"</td></tr></table></body></html>")
		require.Equal(t, row.expected, extractProfessor(doc), row.name)
	}
}
