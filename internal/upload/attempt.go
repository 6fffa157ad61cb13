package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	snippetLimit        = 180
	payloadSnippetLimit = 360

	// maxDrainBytes bounds how much of a discarded response body is read.
	maxDrainBytes = 64 << 10
)

// strategy describes one transport attempt in the fallback chain.
type strategy struct {
	method  string
	url     string
	headers http.Header
	// tag is appended to the URL in attempt descriptions.
	tag string
	// traceKey prefixes the status/body trace lines on success; empty skips them.
	traceKey string
	message  func(filename, deviceFilename, url string) string
}

// Attempt is the outcome of a single strategy.
type Attempt struct {
	Method     string `json:"method"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code,omitempty"`
	Status     string `json:"status,omitempty"`
	Snippet    string `json:"snippet,omitempty"`
	Error      string `json:"error,omitempty"`
	Succeeded  bool   `json:"succeeded"`

	tag string
}

// Describe renders the attempt the way failure reports list it.
func (a Attempt) Describe() string {
	target := a.Method + " " + a.URL + a.tag
	if a.Error != "" {
		return fmt.Sprintf("%s -> %s", target, a.Error)
	}
	return fmt.Sprintf("%s -> HTTP %s (%s)", target, a.Status, a.Snippet)
}

func (o *Orchestrator) attempt(ctx context.Context, s strategy, body []byte) Attempt {
	result := Attempt{Method: s.method, URL: s.url, tag: s.tag}

	req, err := http.NewRequestWithContext(ctx, s.method, s.url, bytes.NewReader(body))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := o.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	text := string(data)
	result.StatusCode = resp.StatusCode
	result.Status = statusText(resp)
	result.Snippet = truncate(text, snippetLimit)
	result.Succeeded = accepted(resp.StatusCode, text)
	return result
}

// accepted is the uniform success predicate: a 2xx status whose body is not
// an HTML page.
func accepted(status int, body string) bool {
	return status >= 200 && status < 300 && !LooksLikeHTML(body)
}

// LooksLikeHTML reports whether body appears to be an HTML document. Firmware
// variants answer bad requests with a 200 error page. JSON that merely
// contains "<html" in a string value is misread as HTML.
func LooksLikeHTML(body string) bool {
	lower := strings.ToLower(strings.TrimSpace(body))
	return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html")
}

func statusText(resp *http.Response) string {
	if status := strings.TrimSpace(resp.Status); status != "" {
		return status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// truncate keeps at most limit characters of s.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
