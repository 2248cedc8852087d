package filter

import (
	"testing"
	"time"

	"newspipe/internal/config"
	"newspipe/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateOf(value string) *time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func article(host string, publishDate *time.Time) *extractor.Article {
	return &extractor.Article{
		URL:          "https://" + host + "/story",
		SourceDomain: host,
		PublishDate:  publishDate,
	}
}

func mustCriteria(t *testing.T, cfg config.FilterConfig) Criteria {
	t.Helper()
	criteria, err := NewCriteria(cfg)
	require.NoError(t, err)
	return criteria
}

func TestAccept_HostFilter(t *testing.T) {
	criteria := mustCriteria(t, config.FilterConfig{
		ValidHosts: []string{"example.com"},
		StrictDate: false,
	})

	tests := []struct {
		name       string
		host       string
		wantPass   bool
		wantReason string
	}{
		{"allowed host", "example.com", true, ""},
		{"allowed host case-insensitive", "EXAMPLE.com", true, ""},
		{"other host", "other.org", false, ReasonHostNotAllowed},
		{"empty host", "", false, ReasonHostNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass, reason := criteria.Accept(article(tt.host, dateOf("2016-06-15T12:00:00Z")))
			assert.Equal(t, tt.wantPass, pass)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestAccept_EmptyHostListAcceptsAll(t *testing.T) {
	criteria := mustCriteria(t, config.FilterConfig{StrictDate: false})
	pass, _ := criteria.Accept(article("anything.example", nil))
	assert.True(t, pass)
}

func TestAccept_StrictDatePolicy(t *testing.T) {
	strict := mustCriteria(t, config.FilterConfig{StrictDate: true})
	lenient := mustCriteria(t, config.FilterConfig{StrictDate: false})

	pass, reason := strict.Accept(article("example.com", nil))
	assert.False(t, pass)
	assert.Equal(t, ReasonMissingDate, reason)

	pass, _ = lenient.Accept(article("example.com", nil))
	assert.True(t, pass)
}

func TestAccept_DateWindow(t *testing.T) {
	criteria := mustCriteria(t, config.FilterConfig{
		StartDate:  "2016-01-01",
		EndDate:    "2016-12-31",
		StrictDate: true,
	})

	tests := []struct {
		name       string
		date       string
		wantPass   bool
		wantReason string
	}{
		{"inside window", "2016-06-15T12:00:00Z", true, ""},
		{"before window", "2015-12-31T23:59:59Z", false, ReasonBeforeStartDate},
		{"after window", "2017-01-01T00:00:00Z", false, ReasonAfterEndDate},
		{"start bound inclusive", "2016-01-01T00:00:00Z", true, ""},
		{"end bound inclusive for whole day", "2016-12-31T18:00:00Z", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass, reason := criteria.Accept(article("example.com", dateOf(tt.date)))
			assert.Equal(t, tt.wantPass, pass)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestAccept_OpenBounds(t *testing.T) {
	onlyStart := mustCriteria(t, config.FilterConfig{StartDate: "2016-01-01"})
	pass, _ := onlyStart.Accept(article("example.com", dateOf("2030-01-01T00:00:00Z")))
	assert.True(t, pass, "unset end bound imposes no constraint")

	onlyEnd := mustCriteria(t, config.FilterConfig{EndDate: "2016-12-31"})
	pass, _ = onlyEnd.Accept(article("example.com", dateOf("1999-01-01T00:00:00Z")))
	assert.True(t, pass, "unset start bound imposes no constraint")
}

func TestNewCriteria_BadDates(t *testing.T) {
	_, err := NewCriteria(config.FilterConfig{StartDate: "01/01/2016"})
	assert.Error(t, err)

	_, err = NewCriteria(config.FilterConfig{EndDate: "yesterday"})
	assert.Error(t, err)
}
