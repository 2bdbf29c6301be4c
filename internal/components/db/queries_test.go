package db

import (
	"context"
	"fmt"
	"testing"

	"coursecatalog-backend/pkg/migrations"

	"github.com/stretchr/testify/require"
)

func courseParams(code, section, semester string) CreateCourseParams {
	return CreateCourseParams{
		CourseName: "Course " + code,
		CourseCode: code,
		Section:    section,
		Semester:   semester,
	}
}

func TestUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := migrations.OpenAndMigrateDB(ctx, Schema, ":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()
	qry := New(sqlDB)

	courseId, err := qry.CreateCourse(ctx, courseParams("BIOL101", "1", "1249"))
	require.NoError(t, err)
	_, err = qry.CreateCourse(ctx, courseParams("BIOL101", "1", "1249"))
	require.True(t, IsUniqueViolation(err), err)
	_, err = qry.CreateCourse(ctx, courseParams("BIOL101", "2", "1249"))
	require.NoError(t, err)

	professorId, err := qry.CreateProfessor(ctx, "Jane Doe")
	require.NoError(t, err)
	_, err = qry.CreateProfessor(ctx, "Jane Doe")
	require.True(t, IsUniqueViolation(err), err)

	link := CreateCourseProfessorParams{CourseID: courseId, ProfessorID: professorId, Semester: "1249"}
	require.NoError(t, qry.CreateCourseProfessor(ctx, link))
	err = qry.CreateCourseProfessor(ctx, link)
	require.True(t, IsUniqueViolation(err), err)

	err = qry.CreateCourseProfessor(ctx, CreateCourseProfessorParams{CourseID: 999, ProfessorID: professorId})
	require.Error(t, err)
	require.False(t, IsUniqueViolation(err))

	require.False(t, IsUniqueViolation(nil))
	require.False(t, IsUniqueViolation(fmt.Errorf("database is locked")))
}

func TestListCourses(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := migrations.OpenAndMigrateDB(ctx, Schema, ":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()
	qry := New(sqlDB)

	for _, params := range []CreateCourseParams{
		courseParams("BIOL101", "10", "1249"),
		courseParams("BIOL101", "2", "1249"),
		courseParams("ARST131", "1", "1251"),
	} {
		_, err := qry.CreateCourse(ctx, params)
		require.NoError(t, err)
	}
	course, err := qry.GetCourseByNaturalKey(ctx, GetCourseByNaturalKeyParams{
		CourseCode: "BIOL101",
		Section:    "2",
		Semester:   "1249",
	})
	require.NoError(t, err)
	for _, name := range []string{"Jane Doe", "John Smith"} {
		professorId, err := qry.CreateProfessor(ctx, name)
		require.NoError(t, err)
		err = qry.CreateCourseProfessor(ctx, CreateCourseProfessorParams{
			CourseID:    course.ID,
			ProfessorID: professorId,
			Semester:    "1249",
		})
		require.NoError(t, err)
	}

	rows, err := qry.ListCourses(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "ARST131", rows[0].CourseCode)
	require.Equal(t, "", rows[0].Professors)
	require.Equal(t, "2", rows[1].Section)
	require.Contains(t, rows[1].Professors, "Jane Doe")
	require.Contains(t, rows[1].Professors, "John Smith")
	require.Equal(t, "10", rows[2].Section)

	rows, err = qry.ListCourses(ctx, "1251")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "ARST131", rows[0].CourseCode)

	professors, err := qry.GetCourseProfessors(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, professors, 2)
	require.Equal(t, "Jane Doe", professors[0].Name)
}
