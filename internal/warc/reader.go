package warc

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"

	"newspipe/internal/errorwrapper"
)

const warcVersionPrefix = "WARC/"

// ReadAll parses an archive file and returns all of its records fully
// materialized in memory. The file and decompression handles are closed
// before returning, so the result can be revisited freely at the cost of
// peak memory proportional to the total record bytes.
func ReadAll(path string) ([]RawRecord, error) {
	var records []RawRecord
	err := Stream(path, func(record RawRecord) error {
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Stream parses an archive file and calls visit for every record exactly
// once, in original order, keeping only one record in memory at a time.
// A non-nil error from visit stops the iteration and is returned as-is.
func Stream(path string, visit func(RawRecord) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errorwrapper.NewArchiveParseError(path, err)
	}
	defer file.Close()

	var source io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return errorwrapper.NewArchiveParseError(path, err)
		}
		defer gzReader.Close()
		source = gzReader
	}

	reader := bufio.NewReader(source)
	for {
		record, err := readRecord(reader)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errorwrapper.NewArchiveParseError(path, err)
		}
		if err := visit(record); err != nil {
			return err
		}
	}
}

// readRecord reads one record: a WARC version line, header lines up to a
// blank line, then Content-Length payload bytes. Returns io.EOF once the
// stream is cleanly exhausted.
func readRecord(reader *bufio.Reader) (RawRecord, error) {
	versionLine, err := skipToVersionLine(reader)
	if err != nil {
		return RawRecord{}, err
	}
	if !strings.HasPrefix(versionLine, warcVersionPrefix) {
		return RawRecord{}, errorwrapper.NewError("expected WARC version line, got %q", versionLine)
	}

	headers, err := readHeaders(reader)
	if err != nil {
		return RawRecord{}, errorwrapper.WrapError(err, "could not read record headers")
	}

	contentLength, err := strconv.Atoi(headers["Content-Length"])
	if err != nil {
		return RawRecord{}, errorwrapper.NewError("missing or invalid Content-Length: %q", headers["Content-Length"])
	}

	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, payload); err != nil {
		return RawRecord{}, errorwrapper.WrapError(err, "truncated record payload")
	}

	return RawRecord{
		Type:      headers["WARC-Type"],
		TargetURI: headers["WARC-Target-URI"],
		Date:      headers["WARC-Date"],
		Headers:   headers,
		Payload:   payload,
	}, nil
}

// skipToVersionLine consumes the blank lines separating records and returns
// the first non-blank line. io.EOF means the archive ended cleanly.
func skipToVersionLine(reader *bufio.Reader) (string, error) {
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if err == io.EOF {
			if trimmed == "" {
				return "", io.EOF
			}
			return trimmed, nil
		}
		if err != nil {
			return "", err
		}
		if trimmed != "" {
			return trimmed, nil
		}
	}
}

// readHeaders reads "Key: Value" lines until the blank line that separates
// headers from the payload.
func readHeaders(reader *bufio.Reader) (map[string]string, error) {
	headers := make(map[string]string)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return headers, nil
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
}
