package extractor

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"newspipe/internal/errorwrapper"
	"newspipe/internal/warc"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog"
)

// Extractor turns one raw record into an Article. A nil Article with a nil
// error means the record holds no extractable content; an error means the
// record is broken and will be counted as an extraction failure.
type Extractor interface {
	Extract(record warc.RawRecord) (*Article, error)
}

// publishDateMetaSelectors are tried in order against the document head.
var publishDateMetaSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="article:published_time"]`,
	`meta[itemprop="datePublished"]`,
	`meta[name="date"]`,
	`meta[name="pubdate"]`,
	`meta[name="publish-date"]`,
	`meta[property="og:article:published_time"]`,
}

// ReadabilityExtractor extracts articles from archived HTTP responses using
// a readability pass for title/body and document metadata for the publish
// date.
type ReadabilityExtractor struct {
	logger zerolog.Logger
}

// NewReadabilityExtractor creates a ReadabilityExtractor
func NewReadabilityExtractor(logger zerolog.Logger) *ReadabilityExtractor {
	return &ReadabilityExtractor{
		logger: logger.With().Str("component", "ReadabilityExtractor").Logger(),
	}
}

// Extract implements Extractor. Non-response records and documents without
// extractable text yield (nil, nil).
func (e *ReadabilityExtractor) Extract(record warc.RawRecord) (*Article, error) {
	if !record.IsResponse() {
		return nil, nil
	}

	body, err := splitResponseBody(record.Payload)
	if err != nil {
		return nil, err
	}

	pageURL, err := url.Parse(record.TargetURI)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "invalid record target URI")
	}

	doc, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "readability pass failed")
	}

	text := strings.TrimSpace(doc.TextContent)
	if text == "" {
		return nil, nil
	}

	article := &Article{
		URL:          record.TargetURI,
		SourceDomain: strings.ToLower(pageURL.Hostname()),
		Title:        strings.TrimSpace(doc.Title),
		Description:  strings.TrimSpace(doc.Excerpt),
		MainText:     text,
		PublishDate:  e.parsePublishDate(body),
		DownloadDate: parseRecordDate(record.Date),
		Filename:     DeriveFilename(record.TargetURI),
	}
	return article, nil
}

// parsePublishDate scans document metadata for a publish date. A date that
// cannot be determined is nil, which the filter resolves via the strict-date
// policy rather than an error here.
func (e *ReadabilityExtractor) parsePublishDate(body []byte) *time.Time {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	for _, selector := range publishDateMetaSelectors {
		content, exists := doc.Find(selector).First().Attr("content")
		if !exists || strings.TrimSpace(content) == "" {
			continue
		}
		if parsed, err := dateparse.ParseAny(strings.TrimSpace(content)); err == nil {
			return &parsed
		}
	}

	if datetime, exists := doc.Find("time[datetime]").First().Attr("datetime"); exists {
		if parsed, err := dateparse.ParseAny(strings.TrimSpace(datetime)); err == nil {
			return &parsed
		}
	}

	return nil
}

// parseRecordDate parses the WARC-Date header value
func parseRecordDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// splitResponseBody strips the archived HTTP status line and headers,
// returning the document bytes.
func splitResponseBody(payload []byte) ([]byte, error) {
	if idx := bytes.Index(payload, []byte("\r\n\r\n")); idx >= 0 {
		return payload[idx+4:], nil
	}
	if idx := bytes.Index(payload, []byte("\n\n")); idx >= 0 {
		return payload[idx+2:], nil
	}
	return nil, errorwrapper.NewError("no header/body separator in response payload")
}
