// Package wesmapstest serves a small, configurable copy of the catalog over
// httptest so crawls can run end to end without the network.
package wesmapstest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const RootPage = "!wesmaps_page.html"

type Course struct {
	// anchor text on the offerings page, ex. "BIOL101-01"
	Label string
	// when not 0 or 200 the course page answers with this status
	Status int
	// detail page, CoursePage is used when empty
	Body  string
	Delay time.Duration
}

type Category struct {
	Name string
	Code string
	// categories without offerings have no "Courses Offered" link
	Offered bool
	Courses []Course
}

type Site struct {
	Categories []Category
	// when not 0 or 200 the root page answers with this status
	RootStatus int

	requests atomic.Int64
}

// Requests returns the amount of requests the site has served.
func (s *Site) Requests() int64 {
	return s.requests.Load()
}

// CoursePage renders a minimal detail page.
func CoursePage(title, semester, instructor string) string {
	return fmt.Sprintf(`<html><body><table>
<tr><td valign="top">Course<br/>Term<br/>%s FA</td><td><span class="title">%s</span></td></tr>
<tr><td colspan="3">About %s.</td></tr>
<tr><td>
<b>Credit:</b> 1.00<br/>
<b>Instructor(s):</b> <a href="!wesmaps_page.html?prof=1">%s</a><br/>
<b>Times:</b> .M.W... 10:50AM-12:10PM;<br/>
<b>Location:</b> SCIE 121<br/>
</td></tr>
</table></body></html>`,
		html.EscapeString(semester),
		html.EscapeString(title),
		html.EscapeString(title),
		html.EscapeString(instructor),
	)
}

// NewServer starts serving `site`, the catalog is rooted at BaseUrl(server).
func NewServer(t testing.TB, site *Site) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.requests.Add(1)
		site.serve(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func BaseUrl(srv *httptest.Server) string {
	return srv.URL + "/reg/"
}

func writeStatus(w http.ResponseWriter, status int) bool {
	if status == 0 || status == http.StatusOK {
		return false
	}
	w.WriteHeader(status)
	return true
}

func (s *Site) category(code string) (Category, bool) {
	for _, c := range s.Categories {
		if c.Code == code {
			return c, true
		}
	}
	return Category{}, false
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/reg/"+RootPage {
		http.NotFound(w, r)
		return
	}
	query := r.URL.Query()
	w.Header().Set("content-type", "text/html; charset=utf-8")

	switch {
	case query.Has("subj_page"):
		category, ok := s.category(query.Get("subj_page"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.serveSubject(w, category)
	case query.Has("crse_list"):
		category, ok := s.category(query.Get("crse_list"))
		if !ok || !category.Offered {
			http.NotFound(w, r)
			return
		}
		s.serveOfferings(w, category)
	case query.Has("crse"):
		s.serveCourse(w, r, query.Get("crse"))
	default:
		if writeStatus(w, s.RootStatus) {
			return
		}
		s.serveRoot(w)
	}
}

func (s *Site) serveRoot(w http.ResponseWriter) {
	var sb strings.Builder
	sb.WriteString(`<html><body><a href="!wesmaps_page.html?page=search">Search</a><ul>`)
	for _, c := range s.Categories {
		fmt.Fprintf(
			&sb,
			`<li><a href="!wesmaps_page.html?stuid=&amp;subj_page=%s">%s</a></li>`,
			c.Code, html.EscapeString(c.Name),
		)
	}
	sb.WriteString(`</ul></body></html>`)
	w.Write([]byte(sb.String()))
}

func (s *Site) serveSubject(w http.ResponseWriter, category Category) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<html><body><h1>%s</h1>`, html.EscapeString(category.Name))
	sb.WriteString(`<a href="!wesmaps_page.html?crse_list=none&amp;offered=N">Courses Not Offered</a>`)
	if category.Offered {
		fmt.Fprintf(
			&sb,
			`<br/><a href="!wesmaps_page.html?crse_list=%s&amp;offered=Y">Courses Offered</a>`,
			category.Code,
		)
	}
	sb.WriteString(`</body></html>`)
	w.Write([]byte(sb.String()))
}

func (s *Site) serveOfferings(w http.ResponseWriter, category Category) {
	var sb strings.Builder
	sb.WriteString(`<html><body><table>`)
	sb.WriteString(`<tr><th>Course</th><th>Title</th><th>Term</th></tr>`)
	sb.WriteString(`<tr><td colspan="2">Fall 2024</td></tr>`)
	for i, course := range category.Courses {
		fmt.Fprintf(
			&sb,
			`<tr><td><a href="!wesmaps_page.html?crse=%s-%d">%s</a></td><td>Title</td><td>FA</td></tr>`,
			category.Code, i, html.EscapeString(course.Label),
		)
	}
	sb.WriteString(`</table></body></html>`)
	w.Write([]byte(sb.String()))
}

func (s *Site) serveCourse(w http.ResponseWriter, r *http.Request, key string) {
	code, idxStr, found := strings.Cut(key, "-")
	if !found {
		http.NotFound(w, r)
		return
	}
	category, ok := s.category(code)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var idx int
	if _, err := fmt.Sscanf(idxStr, "%d", &idx); err != nil || idx < 0 || idx >= len(category.Courses) {
		http.NotFound(w, r)
		return
	}
	course := category.Courses[idx]

	if course.Delay > 0 {
		select {
		case <-time.After(course.Delay):
		case <-r.Context().Done():
			return
		}
	}
	if writeStatus(w, course.Status) {
		return
	}
	body := course.Body
	if body == "" {
		body = CoursePage(course.Label, "1249", "Doe, Jane")
	}
	w.Write([]byte(body))
}
