package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"coursecatalog-backend/internal/components/db"
	"coursecatalog-backend/internal/components/telemetry"
	"coursecatalog-backend/internal/scrapers/wesmaps"
	"coursecatalog-backend/internal/scrapers/wesmaps/wesmapstest"
	"coursecatalog-backend/pkg/migrations"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := migrations.OpenAndMigrateDB(context.Background(), db.Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func record(code, section, semester, professor string) wesmaps.CourseRecord {
	return wesmaps.CourseRecord{
		CourseName:              "Course " + code,
		CourseCode:              code,
		Section:                 section,
		Semester:                semester,
		Description:             wesmaps.DefaultDescription,
		ExaminationsAssignments: wesmaps.DefaultExaminations,
		Credit:                  "1.00",
		Prerequisites:           wesmaps.DefaultPrerequisites,
		Professor:               professor,
		Time:                    wesmaps.DefaultTime,
		Location:                wesmaps.DefaultLocation,
	}
}

type counts struct {
	courses    int64
	professors int64
	links      int64
}

func countRows(t *testing.T, qry *db.Queries) counts {
	t.Helper()
	ctx := context.Background()
	courses, err := qry.CountCourses(ctx)
	require.NoError(t, err)
	professors, err := qry.CountProfessors(ctx)
	require.NoError(t, err)
	links, err := qry.CountCourseProfessors(ctx)
	require.NoError(t, err)
	return counts{courses: courses, professors: professors, links: links}
}

func TestIngestIdempotent(t *testing.T) {
	sqlDB := openTestDB(t)
	qry := db.New(sqlDB)
	reconciler := NewReconciler(db.NewMakeTx(sqlDB), telemetry.NewRecorder())

	records := []wesmaps.CourseRecord{
		record("BIOL101", "1", "1249", "Jane Doe"),
		record("BIOL101", "2", "1249", "Jane Doe"),
		record("HIST210", "1", "1249", ""),
	}

	summary, err := reconciler.Ingest(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, Summary{Inserted: 3, ProfessorsCreated: 1, Links: 2}, summary)
	require.Equal(t, counts{courses: 3, professors: 1, links: 2}, countRows(t, qry))

	summary, err = reconciler.Ingest(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, Summary{Skipped: 3}, summary)
	require.Equal(t, counts{courses: 3, professors: 1, links: 2}, countRows(t, qry))
}

func TestIngestNaturalKey(t *testing.T) {
	sqlDB := openTestDB(t)
	qry := db.New(sqlDB)
	reconciler := NewReconciler(db.NewMakeTx(sqlDB), telemetry.NewRecorder())

	first := record("BIOL101", "1", "1249", "Jane Doe")
	renamed := first
	renamed.CourseName = "Renamed"
	nextTerm := record("BIOL101", "1", "1251", "John Smith")

	summary, err := reconciler.Ingest(context.Background(), []wesmaps.CourseRecord{first, renamed, nextTerm})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Inserted)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, 2, summary.ProfessorsCreated)

	stored, err := qry.GetCourseByNaturalKey(context.Background(), db.GetCourseByNaturalKeyParams{
		CourseCode: "BIOL101",
		Section:    "1",
		Semester:   "1249",
	})
	require.NoError(t, err)
	require.Equal(t, "Course BIOL101", stored.CourseName)

	professors, err := qry.GetCourseProfessors(context.Background(), stored.ID)
	require.NoError(t, err)
	require.Len(t, professors, 1)
	require.Equal(t, "Jane Doe", professors[0].Name)
}

func TestIngestPlaceholderProfessor(t *testing.T) {
	sqlDB := openTestDB(t)
	qry := db.New(sqlDB)
	reconciler := NewReconciler(db.NewMakeTx(sqlDB), telemetry.NewRecorder())

	summary, err := reconciler.Ingest(context.Background(), []wesmaps.CourseRecord{
		record("ARST131", "1", "1249", wesmaps.DefaultProfessor),
		record("ARST132", "1", "1249", wesmaps.DefaultProfessor),
	})
	require.NoError(t, err)
	require.Equal(t, Summary{Inserted: 2, ProfessorsCreated: 1, Links: 2}, summary)

	professor, err := qry.GetProfessorByName(context.Background(), wesmaps.DefaultProfessor)
	require.NoError(t, err)
	require.NotZero(t, professor.ID)
}

func TestIngestRecordFailureContinues(t *testing.T) {
	sqlDB := openTestDB(t)
	qry := db.New(sqlDB)

	inner := db.NewMakeTx(sqlDB)
	calls := 0
	makeTx := func(ctx context.Context) (*db.Queries, func() error, func() error, error) {
		calls++
		if calls == 1 {
			return nil, nil, nil, fmt.Errorf("database is locked")
		}
		return inner(ctx)
	}

	tel := telemetry.NewRecorder()
	reconciler := NewReconciler(makeTx, tel)

	summary, err := reconciler.Ingest(context.Background(), []wesmaps.CourseRecord{
		record("BIOL101", "1", "1249", "Jane Doe"),
		record("BIOL102", "1", "1249", "Jane Doe"),
	})
	require.NoError(t, err)
	require.Equal(t, Summary{Inserted: 1, Failed: 1, ProfessorsCreated: 1, Links: 1}, summary)
	require.Len(t, tel.Reports(report_ingest_record), 1)
	require.Len(t, tel.Reports(report_db_query), 1)

	_, err = qry.GetCourseByNaturalKey(context.Background(), db.GetCourseByNaturalKeyParams{
		CourseCode: "BIOL101",
		Section:    "1",
		Semester:   "1249",
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.Equal(t, counts{courses: 1, professors: 1, links: 1}, countRows(t, qry))
}

func TestIngestCancelled(t *testing.T) {
	sqlDB := openTestDB(t)
	reconciler := NewReconciler(db.NewMakeTx(sqlDB), telemetry.NewRecorder())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reconciler.Ingest(ctx, []wesmaps.CourseRecord{record("BIOL101", "1", "1249", "")})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, counts{}, countRows(t, db.New(sqlDB)))
}

func TestCrawlAndIngest(t *testing.T) {
	site := &wesmapstest.Site{
		Categories: []wesmapstest.Category{
			{Name: "Anthropology", Code: "ANTH"},
			{
				Name:    "Biology",
				Code:    "BIOL",
				Offered: true,
				Courses: []wesmapstest.Course{
					{Label: "BIOL101-01"},
				},
			},
		},
	}
	srv := wesmapstest.NewServer(t, site)

	tel := telemetry.NewRecorder()
	scraper, err := wesmaps.NewScraper(wesmaps.Options{
		Client:      wesmaps.ClientOptions{BaseUrl: wesmapstest.BaseUrl(srv)},
		RootPage:    wesmapstest.RootPage,
		Concurrency: 2,
	}, tel)
	require.NoError(t, err)

	result, err := scraper.Crawl(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Courses, 1)
	require.Equal(t, "1", result.Courses[0].Section)
	require.Equal(t, "Jane Doe", result.Courses[0].Professor)

	sqlDB := openTestDB(t)
	qry := db.New(sqlDB)
	reconciler := NewReconciler(db.NewMakeTx(sqlDB), tel)

	for i := 0; i < 2; i++ {
		_, err = reconciler.Ingest(context.Background(), result.Courses)
		require.NoError(t, err)
		require.Equal(t, counts{courses: 1, professors: 1, links: 1}, countRows(t, qry))
	}

	professor, err := qry.GetProfessorByName(context.Background(), "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", professor.Name)

	rows, err := qry.ListCourses(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "BIOL101", rows[0].CourseCode)
	require.Equal(t, "Jane Doe", rows[0].Professors)
}
