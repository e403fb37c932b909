package legislature

import (
	"bytes"
	"context"
	"fmt"
	"legiscraper/lib/restyutil"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Fetcher retrieves and parses a remote document.
type Fetcher interface {
	Fetch(ctx context.Context, link string) (*goquery.Document, error)
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	// 0 means 30 seconds
	Timeout time.Duration
	// retries after the first attempt, negative disables retrying, 0 means 2
	RetryCount int
	UserAgent  string
	// wraps the transport so requests look like they come from a browser
	CloudflareBypass bool
	// when > 0, fetched documents are kept in memory for this long so
	// repeated fetches of the same url don't hit the network
	CacheTTL  time.Duration
	CacheSize int
}

type Client struct {
	Http  *resty.Client
	cache *expirable.LRU[string, []byte]
}

func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RetryCount == 0 {
		opts.RetryCount = 2
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 512
	}

	client := resty.New()
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(time.Millisecond * 500)
	client.SetRetryMaxWaitTime(time.Second * 5)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		return res != nil && res.StatusCode() >= http.StatusInternalServerError
	})
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	c := &Client{Http: client}
	if opts.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, []byte](opts.CacheSize, nil, opts.CacheTTL)
	}
	return c
}

func (c *Client) Fetch(ctx context.Context, link string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("url", link))

	if c.cache != nil {
		body, hit := c.cache.Get(link)
		if hit {
			span.SetStatus(codes.Ok, "CACHE HIT")
			return goquery.NewDocumentFromReader(bytes.NewBuffer(body))
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, fmt.Errorf("fetch %s: %w", link, err)
	}
	if res.IsError() {
		err = fmt.Errorf("fetch %s: unexpected status %d", link, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse document")
		return nil, fmt.Errorf("parse %s: %w", link, err)
	}

	if c.cache != nil {
		c.cache.Add(link, res.Body())
	}
	return doc, nil
}
