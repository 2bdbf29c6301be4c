// client.go contains the logic for fetching catalog pages, it knows nothing about
// how those pages are laid out.

package wesmaps

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"coursecatalog-backend/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_get = "client.get"
)

const defaultUserAgent = "coursecatalog-backend/1.0 (+catalog crawler)"

type ClientOptions struct {
	BaseUrl string
	// maximum amount of requests sent per second, 0 or less means unlimited
	RequestsPerSecond float64
	// maximum amount of requests allowed to be sent at once above the rate
	Burst     int
	Timeout   time.Duration
	UserAgent string
}

type client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func newClient(opts ClientOptions, tel telemetry.API) (*client, error) {
	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsedBaseUrl.Scheme == "" || parsedBaseUrl.Host == "" {
		return nil, fmt.Errorf("base url '%s' must be absolute", opts.BaseUrl)
	}

	httpClient := resty.New()
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(limit, burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	c := &client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		tel:     tel,
	}
	return c, nil
}

// Resolve turns a link found on a catalog page into an absolute url.
func (c *client) Resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return c.BaseUrl.ResolveReference(ref).String(), nil
}

// Get fetches and parses a single page. Any failure is returned as a *FetchError.
func (c *client) Get(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, &FetchError{Url: link, Err: err}
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return nil, &FetchError{Url: link, StatusCode: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_client_get, fmt.Errorf("parse: %w", err), link)
		return nil, &FetchError{Url: link, StatusCode: res.StatusCode(), Err: err}
	}
	return doc, nil
}
