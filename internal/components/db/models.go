package db

type Course struct {
	ID                      int64
	CourseName              string
	CourseCode              string
	Section                 string
	Semester                string
	Description             string
	ExaminationsAssignments string
	Credit                  string
	Prerequisites           string
	Time                    string
	Location                string
}

type Professor struct {
	ID   int64
	Name string
}

type CourseProfessor struct {
	CourseID    int64
	ProfessorID int64
	Semester    string
}
