package filter

import (
	"strings"
	"time"

	"newspipe/internal/config"
	"newspipe/internal/errorwrapper"
	"newspipe/internal/extractor"
)

// Discard reasons; every rejected article is attributable to one of these.
const (
	ReasonHostNotAllowed  = "host not in valid hosts"
	ReasonMissingDate     = "publish date missing under strict date policy"
	ReasonBeforeStartDate = "publish date before start of window"
	ReasonAfterEndDate    = "publish date after end of window"
)

// Criteria is the immutable filter configuration for one crawl run.
type Criteria struct {
	validHosts map[string]struct{}
	startDate  *time.Time
	endDate    *time.Time
	strictDate bool
}

// NewCriteria builds Criteria from the filter configuration. Host names are
// compared case-insensitively; the end date bound is inclusive for the whole
// configured day.
func NewCriteria(cfg config.FilterConfig) (Criteria, error) {
	criteria := Criteria{strictDate: cfg.StrictDate}

	if len(cfg.ValidHosts) > 0 {
		criteria.validHosts = make(map[string]struct{}, len(cfg.ValidHosts))
		for _, host := range cfg.ValidHosts {
			criteria.validHosts[strings.ToLower(strings.TrimSpace(host))] = struct{}{}
		}
	}

	if cfg.StartDate != "" {
		parsed, err := time.Parse(config.DateLayout, cfg.StartDate)
		if err != nil {
			return Criteria{}, errorwrapper.NewValidationError("start_date", cfg.StartDate, "expected yyyy-mm-dd")
		}
		criteria.startDate = &parsed
	}

	if cfg.EndDate != "" {
		parsed, err := time.Parse(config.DateLayout, cfg.EndDate)
		if err != nil {
			return Criteria{}, errorwrapper.NewValidationError("end_date", cfg.EndDate, "expected yyyy-mm-dd")
		}
		endOfDay := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		criteria.endDate = &endOfDay
	}

	return criteria, nil
}

// Accept evaluates the conjunction of all filter rules against an article.
// It is a pure predicate: no side effects and no failure mode; missing
// fields resolve to "does not pass". The returned reason attributes a
// rejection to a specific rule, and is empty when the article passes.
// The cheap host check runs before any date work.
func (c Criteria) Accept(article *extractor.Article) (bool, string) {
	if len(c.validHosts) > 0 {
		if _, ok := c.validHosts[strings.ToLower(article.SourceDomain)]; !ok {
			return false, ReasonHostNotAllowed
		}
	}

	if article.PublishDate == nil {
		if c.strictDate {
			return false, ReasonMissingDate
		}
		return true, ""
	}

	if c.startDate != nil && article.PublishDate.Before(*c.startDate) {
		return false, ReasonBeforeStartDate
	}
	if c.endDate != nil && article.PublishDate.After(*c.endDate) {
		return false, ReasonAfterEndDate
	}

	return true, ""
}
