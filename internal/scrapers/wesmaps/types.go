package wesmaps

const (
	DefaultCourseName    = "Unknown"
	DefaultSemester      = "Not Available"
	DefaultDescription   = "No description available."
	DefaultExaminations  = "Unavailable"
	DefaultCredit        = "Not Available"
	DefaultPrerequisites = "Not Available"
	DefaultProfessor     = "Not Available"
	DefaultTime          = "TBA"
	DefaultLocation      = "Not Available"
)

// CourseRecord is one course section as extracted from its detail page.
// CourseCode, Section and Semester form its natural key.
type CourseRecord struct {
	CourseName              string `json:"course_name"`
	CourseCode              string `json:"course_code"`
	Section                 string `json:"section"`
	Semester                string `json:"semester"`
	Description             string `json:"description"`
	ExaminationsAssignments string `json:"examinations_assignments"`
	Credit                  string `json:"credit"`
	Prerequisites           string `json:"prerequisites"`
	Professor               string `json:"professor"`
	Time                    string `json:"time"`
	Location                string `json:"location"`
}

// Category is a subject listed on the catalog root page.
type Category struct {
	Name string
	Url  string
}

// CourseLink is a row of an offerings index. Section is the raw label text,
// it has not been normalized yet.
type CourseLink struct {
	Url        string
	CourseCode string
	Section    string
}

type CrawlStats struct {
	Categories        int
	SkippedCategories int
	Links             int
	Courses           int
	DroppedFetch      int
	DroppedSection    int
}

type CrawlResult struct {
	Courses []CourseRecord
	Stats   CrawlStats
}
