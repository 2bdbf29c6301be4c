package wesmaps

import (
	"context"
	"fmt"
	"strings"

	"coursecatalog-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_scraper_categories   = "scraper.categories"
	report_scraper_offerings    = "scraper.offerings-link"
	report_scraper_course_links = "scraper.course-links"
)

const (
	subjectPageMarker = "subj_page"
	offeringsLabel    = "Courses Offered"
)

// Categories lists the subject categories linked from the catalog root page.
func (s Scraper) Categories(ctx context.Context) ([]Category, error) {
	doc, err := s.client.Get(ctx, s.rootUrl)
	if err != nil {
		s.tel.ReportBroken(report_scraper_categories, err, s.rootUrl)
		return nil, err
	}
	return categoriesFromDocument(s.client, doc), nil
}

func categoriesFromDocument(c *client, doc *goquery.Document) []Category {
	anchors := htmlutil.GetAnchors(c.BaseUrl, doc.Find("a[href]"))

	var categories []Category
	for _, a := range anchors {
		if !strings.Contains(a.Url.String(), subjectPageMarker) {
			continue
		}
		categories = append(categories, Category{
			Name: a.Name,
			Url:  a.Url.String(),
		})
	}
	return categories
}

// OfferingsLink finds the "Courses Offered" page of a category. ok is false when
// the category does not list any offerings, that is not an error.
func (s Scraper) OfferingsLink(ctx context.Context, category Category) (link string, ok bool, err error) {
	doc, err := s.client.Get(ctx, category.Url)
	if err != nil {
		s.tel.ReportBroken(report_scraper_offerings, err, category.Name)
		return "", false, err
	}

	for _, a := range htmlutil.GetAnchors(s.client.BaseUrl, doc.Find("a[href]")) {
		if strings.Contains(a.Name, offeringsLabel) {
			return a.Url.String(), true, nil
		}
	}
	return "", false, nil
}

// CourseLinks enumerates the course sections listed on an offerings page.
func (s Scraper) CourseLinks(ctx context.Context, offeringsUrl string) ([]CourseLink, error) {
	doc, err := s.client.Get(ctx, offeringsUrl)
	if err != nil {
		s.tel.ReportBroken(report_scraper_course_links, err, offeringsUrl)
		return nil, err
	}
	return courseLinksFromDocument(s.client, doc), nil
}

func courseLinksFromDocument(c *client, doc *goquery.Document) []CourseLink {
	var links []CourseLink
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		anchors := htmlutil.GetAnchors(c.BaseUrl, cells.First().Find("a").First())
		if len(anchors) == 0 {
			return
		}
		link := anchors[0]

		// without a "-" the section stays empty and is rejected once the course is assembled
		code, section, _ := strings.Cut(link.Name, "-")
		links = append(links, CourseLink{
			Url:        link.Url.String(),
			CourseCode: strings.TrimSpace(code),
			Section:    strings.TrimSpace(section),
		})
	})
	return links
}

func (l CourseLink) String() string {
	return fmt.Sprintf("%s-%s", l.CourseCode, l.Section)
}
