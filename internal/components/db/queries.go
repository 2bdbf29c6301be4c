package db

import (
	"context"
)

const countCourseProfessors = `-- name: CountCourseProfessors :one
select count(*) from course_professor
`

func (q *Queries) CountCourseProfessors(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCourseProfessors)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countCourses = `-- name: CountCourses :one
select count(*) from course
`

func (q *Queries) CountCourses(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCourses)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countProfessors = `-- name: CountProfessors :one
select count(*) from professor
`

func (q *Queries) CountProfessors(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProfessors)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createCourse = `-- name: CreateCourse :one
insert into course (
    course_name, course_code, section, semester, description,
    examinations_assignments, credit, prerequisites, time, location
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
returning id
`

type CreateCourseParams struct {
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

func (q *Queries) CreateCourse(ctx context.Context, arg CreateCourseParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createCourse,
		arg.CourseName,
		arg.CourseCode,
		arg.Section,
		arg.Semester,
		arg.Description,
		arg.ExaminationsAssignments,
		arg.Credit,
		arg.Prerequisites,
		arg.Time,
		arg.Location,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createCourseProfessor = `-- name: CreateCourseProfessor :exec
insert into course_professor (course_id, professor_id, semester)
values (?, ?, ?)
`

type CreateCourseProfessorParams struct {
	CourseID    int64
	ProfessorID int64
	Semester    string
}

func (q *Queries) CreateCourseProfessor(ctx context.Context, arg CreateCourseProfessorParams) error {
	_, err := q.db.ExecContext(ctx, createCourseProfessor, arg.CourseID, arg.ProfessorID, arg.Semester)
	return err
}

const createProfessor = `-- name: CreateProfessor :one
insert into professor (name) values (?)
returning id
`

func (q *Queries) CreateProfessor(ctx context.Context, name string) (int64, error) {
	row := q.db.QueryRowContext(ctx, createProfessor, name)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getCourseByNaturalKey = `-- name: GetCourseByNaturalKey :one
select id, course_name, course_code, section, semester, description,
    examinations_assignments, credit, prerequisites, time, location
from course
where course_code = ? and section = ? and semester = ?
limit 1
`

type GetCourseByNaturalKeyParams struct {
	CourseCode string
	Section    string
	Semester   string
}

func (q *Queries) GetCourseByNaturalKey(ctx context.Context, arg GetCourseByNaturalKeyParams) (Course, error) {
	row := q.db.QueryRowContext(ctx, getCourseByNaturalKey, arg.CourseCode, arg.Section, arg.Semester)
	var i Course
	err := row.Scan(
		&i.ID,
		&i.CourseName,
		&i.CourseCode,
		&i.Section,
		&i.Semester,
		&i.Description,
		&i.ExaminationsAssignments,
		&i.Credit,
		&i.Prerequisites,
		&i.Time,
		&i.Location,
	)
	return i, err
}

const getProfessorByName = `-- name: GetProfessorByName :one
select id, name from professor
where name = ?
limit 1
`

func (q *Queries) GetProfessorByName(ctx context.Context, name string) (Professor, error) {
	row := q.db.QueryRowContext(ctx, getProfessorByName, name)
	var i Professor
	err := row.Scan(&i.ID, &i.Name)
	return i, err
}

const getCourseProfessors = `-- name: GetCourseProfessors :many
select professor.id, professor.name from course_professor
inner join professor on professor.id = course_professor.professor_id
where course_professor.course_id = ?
order by professor.name
`

func (q *Queries) GetCourseProfessors(ctx context.Context, courseID int64) ([]Professor, error) {
	rows, err := q.db.QueryContext(ctx, getCourseProfessors, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Professor
	for rows.Next() {
		var i Professor
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCourses = `-- name: ListCourses :many
select
    course.id, course.course_code, course.section, course.semester, course.course_name,
    coalesce(group_concat(professor.name, ', '), '') as professors
from course
left join course_professor on course_professor.course_id = course.id
left join professor on professor.id = course_professor.professor_id
where (?1 = '' or course.semester = ?1)
group by course.id
order by course.course_code, cast(course.section as integer)
`

type ListCoursesRow struct {
	ID         int64
	CourseCode string
	Section    string
	Semester   string
	CourseName string
	Professors string
}

func (q *Queries) ListCourses(ctx context.Context, semester string) ([]ListCoursesRow, error) {
	rows, err := q.db.QueryContext(ctx, listCourses, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCoursesRow
	for rows.Next() {
		var i ListCoursesRow
		if err := rows.Scan(
			&i.ID,
			&i.CourseCode,
			&i.Section,
			&i.Semester,
			&i.CourseName,
			&i.Professors,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
