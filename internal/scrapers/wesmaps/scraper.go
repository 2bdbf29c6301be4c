package wesmaps

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"coursecatalog-backend/internal/components/assert"
	"coursecatalog-backend/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	report_scraper_crawl            = "scraper.crawl"
	report_scraper_course           = "scraper.course"
	report_scraper_section_coercion = "scraper.section-coercion"
	report_scraper_skipped_category = "scraper.skipped-category"
)

var tracer = otel.Tracer("coursecatalog.scrapers.wesmaps")

type Options struct {
	Client ClientOptions
	// page of the catalog that links to every subject, relative to the base url
	RootPage string
	// maximum amount of course pages fetched at once
	Concurrency int
	// if not empty, only categories with one of these names are crawled, case insensitive
	Categories []string
}

// Scraper crawls the catalog: categories -> offerings -> course pages.
type Scraper struct {
	client      *client
	tel         telemetry.API
	rootUrl     string
	concurrency int
	categories  []string
}

func NewScraper(opts Options, tel telemetry.API) (Scraper, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.RootPage)
	tel = telemetry.NewScopedAPI("wesmaps", tel)

	if opts.Client.Burst < 1 {
		opts.Client.Burst = opts.Concurrency
	}
	c, err := newClient(opts.Client, tel)
	if err != nil {
		return Scraper{}, err
	}
	rootUrl, err := c.Resolve(opts.RootPage)
	if err != nil {
		return Scraper{}, fmt.Errorf("resolve root page: %w", err)
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return Scraper{
		client:      c,
		tel:         tel,
		rootUrl:     rootUrl,
		concurrency: concurrency,
		categories:  opts.Categories,
	}, nil
}

func (s Scraper) wanted(category Category) bool {
	return len(s.categories) == 0 || slices.ContainsFunc(s.categories, func(name string) bool {
		return strings.EqualFold(strings.TrimSpace(name), category.Name)
	})
}

type crawledCourse struct {
	category int
	link     int
	record   CourseRecord
}

// Crawl walks the whole catalog and returns every course that could be extracted,
// ordered by category and then by position on the offerings page.
//
// Only failing to list the categories fails the crawl. A category whose offerings
// cannot be found or fetched is skipped, and a course whose page cannot be fetched
// or whose section is malformed is dropped.
func (s Scraper) Crawl(ctx context.Context) (CrawlResult, error) {
	ctx, span := tracer.Start(ctx, "Crawl")
	defer span.End()

	categories, err := s.Categories(ctx)
	if err != nil {
		return CrawlResult{}, fmt.Errorf("discover categories: %w", err)
	}

	var (
		stats   CrawlStats
		mutex   sync.Mutex
		crawled []crawledCourse
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for categoryIdx, category := range categories {
		categoryIdx := categoryIdx
		if !s.wanted(category) {
			continue
		}
		if groupCtx.Err() != nil {
			break
		}
		stats.Categories++

		s.tel.ReportDebug("processing category", telemetry.KV{Key: "name", Value: category.Name})

		offeringsUrl, ok, err := s.OfferingsLink(groupCtx, category)
		if err != nil {
			stats.SkippedCategories++
			continue
		}
		if !ok {
			s.tel.ReportWarning(
				report_scraper_skipped_category,
				fmt.Errorf("no '%s' link", offeringsLabel),
				telemetry.KV{Key: "category", Value: category.Name},
			)
			stats.SkippedCategories++
			continue
		}

		links, err := s.CourseLinks(groupCtx, offeringsUrl)
		if err != nil {
			stats.SkippedCategories++
			continue
		}
		stats.Links += len(links)

		for linkIdx, link := range links {
			linkIdx, link := linkIdx, link
			group.Go(func() error {
				record, err := s.Course(groupCtx, link)
				if err != nil {
					if groupCtx.Err() != nil {
						return groupCtx.Err()
					}
					mutex.Lock()
					defer mutex.Unlock()
					s.reportDropped(link, err, &stats)
					return nil
				}

				mutex.Lock()
				defer mutex.Unlock()
				crawled = append(crawled, crawledCourse{
					category: categoryIdx,
					link:     linkIdx,
					record:   record,
				})
				return nil
			})
		}
	}

	err = group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.tel.ReportWarning(report_scraper_crawl, fmt.Errorf("crawl interrupted: %w", err))
		return CrawlResult{}, err
	}

	slices.SortFunc(crawled, func(a, b crawledCourse) int {
		if a.category != b.category {
			return a.category - b.category
		}
		return a.link - b.link
	})

	courses := make([]CourseRecord, len(crawled))
	for i, c := range crawled {
		courses[i] = c.record
	}
	stats.Courses = len(courses)

	s.tel.ReportCount("crawl.categories", int64(stats.Categories))
	s.tel.ReportCount("crawl.skipped-categories", int64(stats.SkippedCategories))
	s.tel.ReportCount("crawl.links", int64(stats.Links))
	s.tel.ReportCount("crawl.courses", int64(stats.Courses))
	s.tel.ReportCount("crawl.dropped-fetch", int64(stats.DroppedFetch))
	s.tel.ReportCount("crawl.dropped-section", int64(stats.DroppedSection))

	span.SetAttributes(
		attribute.Int("categories", stats.Categories),
		attribute.Int("courses", stats.Courses),
	)

	return CrawlResult{Courses: courses, Stats: stats}, nil
}

// reportDropped must be called with the stats lock held.
func (s Scraper) reportDropped(link CourseLink, err error, stats *CrawlStats) {
	var extractErr *ExtractionError
	if errors.As(err, &extractErr) {
		stats.DroppedSection++
		s.tel.ReportWarning(
			report_scraper_section_coercion,
			err,
			telemetry.KV{Key: "course", Value: link.CourseCode},
			telemetry.KV{Key: "url", Value: link.Url},
		)
		return
	}
	stats.DroppedFetch++
	s.tel.ReportWarning(
		report_scraper_course,
		err,
		telemetry.KV{Key: "course", Value: link.String()},
		telemetry.KV{Key: "url", Value: link.Url},
	)
}
