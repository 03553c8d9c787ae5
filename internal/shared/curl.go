// Utilities for parsing cURL commands.
package shared

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// CurlRequest represents the URL, headers and cookies parsed from a cURL
// command copied out of a browser's network inspector.
type CurlRequest struct {
	URL     string
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts the request.
func ParseCurlFile(filepath string) (*CurlRequest, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts the request
// URL, headers and cookies.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	headerRegex := regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)

	for _, match := range matches {
		var headerLine string
		if match[1] != "" {
			headerLine = match[1]
		} else {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if strings.ToLower(key) != "cookie" {
				headers[key] = value
			}
		}
	}

	cookieRegex := regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
	cookieMatches := cookieRegex.FindStringSubmatch(curlCmd)
	if len(cookieMatches) > 1 {
		if cookieMatches[1] != "" {
			cookie = cookieMatches[1]
		} else {
			cookie = cookieMatches[2]
		}
	}

	if cookie == "" {
		for _, match := range matches {
			var headerLine string
			if match[1] != "" {
				headerLine = match[1]
			} else {
				headerLine = match[2]
			}

			if strings.HasPrefix(strings.ToLower(headerLine), "cookie:") {
				parts := strings.SplitN(headerLine, ":", 2)
				if len(parts) == 2 {
					cookie = strings.TrimSpace(parts[1])
				}
				break
			}
		}
	}

	// Header values may themselves contain URLs, so the request URL is
	// matched only after the flag segments are stripped.
	stripped := headerRegex.ReplaceAllString(curlCmd, "")
	stripped = cookieRegex.ReplaceAllString(stripped, "")
	requestURL := regexp.MustCompile(`https?://[^'"\s]+`).FindString(stripped)

	if len(headers) == 0 && cookie == "" && requestURL == "" {
		return nil, fmt.Errorf("no URL or headers found in curl command")
	}

	return &CurlRequest{
		URL:     requestURL,
		Headers: headers,
		Cookie:  cookie,
	}, nil
}

// BearerToken extracts the token from the Authorization header. Returns an
// empty string when the header is missing or uses another scheme.
func (c *CurlRequest) BearerToken() string {
	for key, value := range c.Headers {
		if strings.EqualFold(key, "authorization") {
			if token, ok := strings.CutPrefix(value, "Bearer "); ok {
				return strings.TrimSpace(token)
			}
		}
	}

	return ""
}

// BaseURL returns the scheme and host of the request URL with the path and
// query stripped. Returns an empty string when no usable URL was parsed.
func (c *CurlRequest) BaseURL() string {
	if c.URL == "" {
		return ""
	}

	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host
}
