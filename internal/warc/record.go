package warc

// Record type tags as they appear in the WARC-Type header
const (
	RecordTypeResponse = "response"
	RecordTypeRequest  = "request"
	RecordTypeInfo     = "warcinfo"
	RecordTypeMetadata = "metadata"
)

// RawRecord is one fully materialized transaction entry from an archive file.
// The payload is read eagerly so no reference to the underlying stream
// survives past parsing.
type RawRecord struct {
	Type      string
	TargetURI string
	Date      string
	Headers   map[string]string
	Payload   []byte
}

// IsResponse reports whether the record holds an archived HTTP response,
// the only record type articles can be extracted from.
func (r *RawRecord) IsResponse() bool {
	return r.Type == RecordTypeResponse
}
