package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseDataURI decodes a base64 data URI (the form live camera captures
// arrive in) into its MIME type and raw bytes.
func ParseDataURI(uri string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return "", nil, fmt.Errorf("malformed data URI: missing comma")
	}
	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding: %q", meta)
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return contentType, data, nil
}
