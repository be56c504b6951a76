package scraper

import (
	"SMMBoard/internal/api/config"
	"SMMBoard/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	postLinksPath  = "/get_insta_post_links"
	postDetailPath = "/get_insta_post"
)

// Client talks to the external scraping microservice. No retries: a failed
// item is picked up again by the next scheduled pass.
type Client interface {
	// FetchRecentLinks returns up to n recent post links of an Instagram username
	FetchRecentLinks(ctx context.Context, username string, n int) ([]string, error)
	// FetchPostDetail returns engagement, media and top comments of one post
	FetchPostDetail(ctx context.Context, link string, topComments int) (*PostDetail, error)
}

type clientImpl struct {
	http         *resty.Client
	postTimeout  time.Duration
	linksTimeout time.Duration
	topComments  int
}

func NewClient(cfg config.ScraperConfig) Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTransport(&logger.HTTPTransport{Service: "scraper"}).
		SetHeader("Accept", "application/json")

	c := &clientImpl{
		http:         httpClient,
		postTimeout:  cfg.PostTimeout,
		linksTimeout: cfg.LinksTimeout,
		topComments:  cfg.TopCommentsCount,
	}
	if c.postTimeout <= 0 {
		c.postTimeout = 30 * time.Second
	}
	if c.linksTimeout <= 0 {
		c.linksTimeout = 60 * time.Second
	}
	if c.topComments <= 0 {
		c.topComments = 3
	}
	return c
}

func (c *clientImpl) FetchRecentLinks(ctx context.Context, username string, n int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.linksTimeout)
	defer cancel()

	body, err := c.get(ctx, postLinksPath, map[string]string{
		"operator": username,
		"nr":       strconv.Itoa(n),
	})
	if err != nil {
		return nil, err
	}

	links, err := adaptPostLinks(body)
	if err != nil {
		return nil, &FetchError{URL: postLinksPath + "?operator=" + username, Err: fmt.Errorf("decode links: %w", err)}
	}
	return links, nil
}

func (c *clientImpl) FetchPostDetail(ctx context.Context, link string, topComments int) (*PostDetail, error) {
	if topComments <= 0 {
		topComments = c.topComments
	}

	ctx, cancel := context.WithTimeout(ctx, c.postTimeout)
	defer cancel()

	body, err := c.get(ctx, postDetailPath, map[string]string{
		"url":                link,
		"top_comments_count": strconv.Itoa(topComments),
	})
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			fe.URL = link
		}
		return nil, err
	}

	detail, err := adaptPostDetail(body)
	if err != nil {
		return nil, &FetchError{URL: link, Err: fmt.Errorf("decode post: %w", err)}
	}
	return detail, nil
}

func (c *clientImpl) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)

	target := c.http.BaseURL + path
	if resp != nil && resp.Request != nil && resp.Request.URL != "" {
		target = resp.Request.URL
	}

	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode(), Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
	return resp.Body(), nil
}
