package batch

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// buildMultipartBody serializes the requests into a multipart/mixed body.
// Each part carries an application/http payload: the raw request line
// followed by the optional JSON body with its own entity headers.
func buildMultipartBody(requests []Request, boundary string) string {
	var body strings.Builder

	for _, req := range requests {
		body.WriteString("--" + boundary + "\r\n")
		body.WriteString("Content-Type: application/http\r\n")
		body.WriteString("Content-ID: <" + req.ID + ">\r\n")
		body.WriteString("\r\n")

		body.WriteString(req.Method + " " + req.Path + " HTTP/1.1\r\n")

		if req.Body != nil {
			payload := string(req.Body)
			body.WriteString("Content-Type: application/json\r\n")
			body.WriteString("Content-Length: " + strconv.Itoa(len(payload)) + "\r\n")
			body.WriteString("\r\n")
			body.WriteString(payload)
		} else {
			body.WriteString("\r\n")
		}

		body.WriteString("\r\n")
	}

	body.WriteString("--" + boundary + "--\r\n")
	return body.String()
}

// parseMultipartResponse splits the response body on the boundary and
// parses each non-empty part. Parts without a recognizable embedded HTTP
// status line are silently skipped.
func parseMultipartResponse(body, boundary string) []Response {
	parts := strings.Split(body, "--"+boundary)

	return lo.FilterMap(parts, func(part string, _ int) (Response, bool) {
		part = strings.TrimSpace(part)
		if part == "" || part == "--" {
			return Response{}, false
		}
		return parsePart(part)
	})
}

// parsePart parses one multipart part: the part headers (Content-ID),
// then the embedded HTTP response.
func parsePart(part string) (Response, bool) {
	sections := strings.SplitN(part, "\r\n\r\n", 2)
	partHeaders := sections[0]

	id := extractContentID(partHeaders)

	rest := ""
	if len(sections) > 1 {
		rest = sections[1]
	}

	lines := strings.Split(rest, "\n")
	statusLine := strings.TrimRight(lines[0], "\r")
	if !strings.HasPrefix(statusLine, "HTTP/") {
		return Response{}, false
	}

	status := 0
	if fields := strings.Fields(statusLine); len(fields) >= 2 {
		status, _ = strconv.Atoi(fields[1])
	}

	var headers []Header
	var bodyLines []string
	inBody := false

	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		switch {
		case inBody:
			bodyLines = append(bodyLines, line)
		case line == "":
			inBody = true
		default:
			if name, value, found := strings.Cut(line, ":"); found {
				headers = append(headers, Header{
					Name:  strings.TrimSpace(name),
					Value: strings.TrimSpace(value),
				})
			}
		}
	}

	// Body defaults to null on parse failure rather than failing the batch.
	var body json.RawMessage
	raw := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if raw != "" && json.Valid([]byte(raw)) {
		body = json.RawMessage(raw)
	}

	return Response{
		ID:      id,
		Status:  status,
		Headers: headers,
		Body:    body,
	}, true
}

// extractContentID pulls the Content-ID from part headers, stripping the
// angle brackets and Google's "response-" prefix.
func extractContentID(partHeaders string) string {
	for _, line := range strings.Split(partHeaders, "\r\n") {
		if !strings.HasPrefix(strings.ToLower(line), "content-id:") {
			continue
		}
		_, value, _ := strings.Cut(line, ":")
		id := strings.Trim(strings.TrimSpace(value), "<> ")
		return strings.TrimPrefix(id, "response-")
	}
	return ""
}

// extractBoundary pulls the boundary parameter from a Content-Type header.
// Both quoted and bare forms are accepted.
func extractBoundary(contentType string) (string, bool) {
	for _, param := range strings.Split(contentType, ";") {
		param = strings.TrimSpace(param)
		if !strings.HasPrefix(param, "boundary=") {
			continue
		}
		boundary := strings.TrimPrefix(param, "boundary=")
		boundary = strings.Trim(boundary, `"'`)
		if boundary == "" {
			return "", false
		}
		return boundary, true
	}
	return "", false
}
