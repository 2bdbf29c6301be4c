package wesmaps

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Course fetches the detail page of a listed course and extracts its record.
// A section label that is not a number fails with an *ExtractionError before
// the page is requested.
func (s Scraper) Course(ctx context.Context, link CourseLink) (CourseRecord, error) {
	ctx, span := tracer.Start(ctx, "Course")
	defer span.End()
	span.SetAttributes(
		attribute.String("url", link.Url),
		attribute.String("course_code", link.CourseCode),
	)

	section, err := NormalizeSection(link.Section)
	if err != nil {
		err = &ExtractionError{
			Url:   link.Url,
			Field: "section",
			Value: link.Section,
			Err:   err,
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid section")
		return CourseRecord{}, err
	}

	doc, err := s.client.Get(ctx, link.Url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return CourseRecord{}, err
	}

	return ParseCourse(doc, link.CourseCode, section), nil
}
