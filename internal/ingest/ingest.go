package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursecatalog-backend/internal/components/assert"
	"coursecatalog-backend/internal/components/db"
	"coursecatalog-backend/internal/components/telemetry"
	"coursecatalog-backend/internal/scrapers/wesmaps"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	report_db_query      = "db.query"
	report_ingest_record = "ingest.record"
)

var tracer = otel.Tracer("coursecatalog.ingest")

// Summary counts what happened to each record of an ingestion.
type Summary struct {
	Inserted          int
	Skipped           int
	Failed            int
	ProfessorsCreated int
	Links             int
}

// RecordResult is the outcome of ingesting a single record.
type RecordResult struct {
	// the course already existed, nothing was written
	Skipped          bool
	ProfessorCreated bool
	Linked           bool
}

// Reconciler merges course records into the store without duplicating courses
// or professors, running it twice over the same records changes nothing.
type Reconciler struct {
	makeTx db.MakeTx
	tel    telemetry.API
}

func NewReconciler(makeTx db.MakeTx, tel telemetry.API) Reconciler {
	assert.NotNil(makeTx)
	assert.NotNil(tel)
	return Reconciler{
		makeTx: makeTx,
		tel:    telemetry.NewScopedAPI("ingest", tel),
	}
}

// Ingest processes records in order, each in its own transaction. A record that
// fails is rolled back and counted in Summary.Failed without stopping the rest.
// Only context cancellation stops an ingestion early.
func (r Reconciler) Ingest(ctx context.Context, records []wesmaps.CourseRecord) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Ingest")
	defer span.End()

	var summary Summary
	for _, record := range records {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		res, err := r.IngestRecord(ctx, record)
		if err != nil {
			r.tel.ReportWarning(
				report_ingest_record,
				err,
				telemetry.KV{Key: "course", Value: record.CourseCode},
				telemetry.KV{Key: "section", Value: record.Section},
				telemetry.KV{Key: "semester", Value: record.Semester},
			)
			summary.Failed++
			continue
		}

		if res.Skipped {
			summary.Skipped++
			continue
		}
		summary.Inserted++
		if res.ProfessorCreated {
			summary.ProfessorsCreated++
		}
		if res.Linked {
			summary.Links++
		}
	}

	r.tel.ReportCount("ingest.inserted", int64(summary.Inserted))
	r.tel.ReportCount("ingest.skipped", int64(summary.Skipped))
	r.tel.ReportCount("ingest.failed", int64(summary.Failed))
	span.SetAttributes(
		attribute.Int("inserted", summary.Inserted),
		attribute.Int("skipped", summary.Skipped),
		attribute.Int("failed", summary.Failed),
	)

	return summary, nil
}

// IngestRecord inserts a single course, its professor and the link between them
// in one transaction. A course whose (course code, section, semester) is already
// stored is skipped, whether that is found by lookup or by the unique constraint.
func (r Reconciler) IngestRecord(ctx context.Context, record wesmaps.CourseRecord) (RecordResult, error) {
	tx, discard, commit, err := r.makeTx(ctx)
	if err != nil {
		r.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return RecordResult{}, err
	}
	defer discard()

	_, err = tx.GetCourseByNaturalKey(ctx, db.GetCourseByNaturalKeyParams{
		CourseCode: record.CourseCode,
		Section:    record.Section,
		Semester:   record.Semester,
	})
	if err == nil {
		return RecordResult{Skipped: true}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return RecordResult{}, fmt.Errorf("GetCourseByNaturalKey: %w", err)
	}

	courseId, err := tx.CreateCourse(ctx, db.CreateCourseParams{
		CourseName:              record.CourseName,
		CourseCode:              record.CourseCode,
		Section:                 record.Section,
		Semester:                record.Semester,
		Description:             record.Description,
		ExaminationsAssignments: record.ExaminationsAssignments,
		Credit:                  record.Credit,
		Prerequisites:           record.Prerequisites,
		Time:                    record.Time,
		Location:                record.Location,
	})
	if db.IsUniqueViolation(err) {
		r.tel.ReportDebug("course inserted concurrently", record.CourseCode, record.Section, record.Semester)
		return RecordResult{Skipped: true}, nil
	}
	if err != nil {
		return RecordResult{}, fmt.Errorf("CreateCourse: %w", err)
	}

	var res RecordResult
	if record.Professor != "" {
		professorId, created, err := r.professor(ctx, tx, record.Professor)
		if err != nil {
			return RecordResult{}, err
		}
		res.ProfessorCreated = created

		err = tx.CreateCourseProfessor(ctx, db.CreateCourseProfessorParams{
			CourseID:    courseId,
			ProfessorID: professorId,
			Semester:    record.Semester,
		})
		if err != nil && !db.IsUniqueViolation(err) {
			return RecordResult{}, fmt.Errorf("CreateCourseProfessor: %w", err)
		}
		res.Linked = err == nil
	}

	err = commit()
	if err != nil {
		return RecordResult{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

// professor returns the id of the professor called `name`, creating it if needed.
func (r Reconciler) professor(ctx context.Context, tx *db.Queries, name string) (id int64, created bool, err error) {
	existing, err := tx.GetProfessorByName(ctx, name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("GetProfessorByName: %w", err)
	}

	id, err = tx.CreateProfessor(ctx, name)
	if db.IsUniqueViolation(err) {
		existing, err = tx.GetProfessorByName(ctx, name)
		if err != nil {
			return 0, false, fmt.Errorf("GetProfessorByName: %w", err)
		}
		return existing.ID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("CreateProfessor: %w", err)
	}
	return id, true, nil
}
