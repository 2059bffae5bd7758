// Package extractor fetches article pages and pulls out the readable text.
// Outbound fetches are rate limited so the service stays a polite crawler
// even under a burst of analyze requests.
package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/khabarcheck/khabarcheck/internal/domain"
	"github.com/khabarcheck/khabarcheck/internal/logging"
	"github.com/khabarcheck/khabarcheck/internal/registry"
)

// Default fetch settings.
const (
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerSecond = 2
	defaultBurst             = 4

	// minBodyRunes is the smallest extraction considered usable.
	minBodyRunes = 100

	// maxBodyBytes caps how much of a response is parsed.
	maxBodyBytes = 2 << 20

	defaultUserAgent = "khabarcheck/1.0 (+https://github.com/khabarcheck/khabarcheck)"
)

// Config holds the article fetch settings.
type Config struct {
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	UserAgent         string        `yaml:"user_agent"`
}

// DefaultConfig returns the standard fetch configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:           defaultTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
		Burst:             defaultBurst,
		UserAgent:         defaultUserAgent,
	}
}

// Extractor fetches and parses article pages.
type Extractor struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logging.Logger
	userAgent  string
}

// New creates an extractor with default settings.
func New(logger logging.Logger) *Extractor {
	return NewWithConfig(logger, DefaultConfig())
}

// NewWithConfig creates an extractor with custom fetch settings.
func NewWithConfig(logger logging.Logger, config Config) *Extractor {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = defaultRequestsPerSecond
	}
	if config.Burst == 0 {
		config.Burst = defaultBurst
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}

	return &Extractor{
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		logger:     logger,
		userAgent:  config.UserAgent,
	}
}

// Extract fetches rawURL and returns the article with its text and
// best-effort metadata. All failure modes wrap ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (domain.Article, error) {
	parsed, err := validateURL(rawURL)
	if err != nil {
		return domain.Article{}, err
	}

	if waitErr := e.limiter.Wait(ctx); waitErr != nil {
		return domain.Article{}, fmt.Errorf("%w: rate limit wait: %w", domain.ErrExtractionFailed, waitErr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), http.NoBody)
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: fetch: %w", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Article{}, fmt.Errorf("%w: status %d", domain.ErrExtractionFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: parse html: %w", domain.ErrExtractionFailed, err)
	}

	article := fromDocument(doc, parsed)
	if utf8.RuneCountInString(article.BodyText) < minBodyRunes {
		return domain.Article{}, fmt.Errorf("%w: could not extract sufficient text from %s",
			domain.ErrExtractionFailed, parsed.Host)
	}

	e.logger.Debug("article extracted",
		logging.String("domain", article.Domain),
		logging.Int("body_runes", utf8.RuneCountInString(article.BodyText)))

	return article, nil
}

// mediaExtensions are file types that can never carry article text.
var mediaExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg",
	".mp3", ".mp4", ".avi", ".mov", ".pdf", ".zip",
}

// validateURL accepts absolute http(s) article URLs: a host, a non-homepage
// path and no media file extension.
func validateURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url: %w", domain.ErrExtractionFailed, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", domain.ErrExtractionFailed, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%w: url has no host", domain.ErrExtractionFailed)
	}
	if parsed.Path == "" || parsed.Path == "/" {
		return nil, fmt.Errorf("%w: %s points at a homepage, not an article", domain.ErrExtractionFailed, parsed.Host)
	}
	lowerPath := strings.ToLower(parsed.Path)
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(lowerPath, ext) {
			return nil, fmt.Errorf("%w: media file %q is not an article", domain.ErrExtractionFailed, ext)
		}
	}
	return parsed, nil
}

// fromDocument pulls title, byline, date and body paragraphs out of the page.
func fromDocument(doc *goquery.Document, pageURL *url.URL) domain.Article {
	doc.Find("script, style, nav, header, footer, aside, form, noscript").Remove()

	title := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	author := strings.TrimSpace(doc.Find(`meta[name="author"]`).AttrOr("content", ""))
	if author == "" {
		author = strings.TrimSpace(doc.Find(`[rel="author"]`).First().Text())
	}

	date := strings.TrimSpace(doc.Find(`meta[property="article:published_time"]`).AttrOr("content", ""))
	if date == "" {
		date = strings.TrimSpace(doc.Find("time[datetime]").First().AttrOr("datetime", ""))
	}

	return domain.Article{
		URL:      pageURL.String(),
		Domain:   registry.NormalizeDomain(pageURL.Hostname()),
		Title:    title,
		Author:   author,
		Date:     date,
		BodyText: bodyText(doc),
	}
}

// bodyText joins paragraph text, preferring a semantic <article> container
// when the page has one.
func bodyText(doc *goquery.Document) string {
	container := doc.Find("article")
	if container.Length() == 0 {
		container = doc.Selection
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, " ")
}
