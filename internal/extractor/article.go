package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article is the structured extraction result for one archived response.
// Instances are immutable after extraction: downstream stages only filter
// and serialize them.
type Article struct {
	URL          string     `json:"url" parquet:"url,zstd"`
	SourceDomain string     `json:"source_domain" parquet:"source_domain,zstd"`
	Title        string     `json:"title" parquet:"title,zstd"`
	Description  string     `json:"description,omitempty" parquet:"description,zstd,optional"`
	MainText     string     `json:"maintext" parquet:"maintext,zstd"`
	PublishDate  *time.Time `json:"date_publish,omitempty" parquet:"date_publish,optional"`
	DownloadDate *time.Time `json:"date_download,omitempty" parquet:"date_download,optional"`
	Filename     string     `json:"filename" parquet:"filename,zstd"`
}

// DeriveFilename returns a stable identifier for the article: the hex SHA-256
// of its URL plus a .json suffix, short enough for any filesystem.
func DeriveFilename(articleURL string) string {
	sum := sha256.Sum256([]byte(articleURL))
	return hex.EncodeToString(sum[:]) + ".json"
}
