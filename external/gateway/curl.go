package gateway

import (
	"slices"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// buildCurlPreview renders a request as a copy-pasteable curl command with
// the bearer token masked.
func buildCurlPreview(method, target string, headers map[string]string, body []byte, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	appendHeader := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl")
	appendPart("-X")
	appendPart(method)
	appendPart(shellQuote(target))
	if withToken {
		appendHeader("Authorization: Bearer ***")
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		appendHeader(k + ": " + headers[k])
	}

	if len(body) > 0 {
		appendHeader("Content-Type: application/json")
		appendPart("-d")
		appendPart(shellQuote(truncateForLog(string(body), maxLoggedBodySize)))
	}

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "...(truncated)"
}
