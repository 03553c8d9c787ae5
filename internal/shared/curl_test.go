package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	tt := []struct {
		name        string
		curlCmd     string
		wantURL     string
		wantHeaders map[string]string
		wantCookie  string
		wantErr     bool
	}{
		{
			name:    "single header with single quotes",
			curlCmd: `curl -H 'Authorization: Bearer token123' https://reel.example.com/api/videos`,
			wantURL: "https://reel.example.com/api/videos",
			wantHeaders: map[string]string{
				"Authorization": "Bearer token123",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "single header with double quotes",
			curlCmd: `curl -H "Authorization: Bearer token123" https://reel.example.com/api/videos`,
			wantURL: "https://reel.example.com/api/videos",
			wantHeaders: map[string]string{
				"Authorization": "Bearer token123",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "multiple headers",
			curlCmd: `curl -H 'Content-Type: application/json' -H 'Authorization: Bearer token' https://reel.example.com/api/playlists`,
			wantURL: "https://reel.example.com/api/playlists",
			wantHeaders: map[string]string{
				"Content-Type":  "application/json",
				"Authorization": "Bearer token",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:        "cookie in -b flag with single quotes",
			curlCmd:     `curl -b 'session=abc123' https://reel.example.com`,
			wantURL:     "https://reel.example.com",
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123",
			wantErr:     false,
		},
		{
			name:        "cookie in -H header",
			curlCmd:     `curl -H 'Cookie: session=abc123; token=xyz' https://reel.example.com`,
			wantURL:     "https://reel.example.com",
			wantHeaders: map[string]string{},
			wantCookie:  "session=abc123; token=xyz",
			wantErr:     false,
		},
		{
			name:    "cookie header is excluded from regular headers",
			curlCmd: `curl -H 'Cookie: session=abc123' -H 'Authorization: Bearer token' https://reel.example.com`,
			wantURL: "https://reel.example.com",
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
			},
			wantCookie: "session=abc123",
			wantErr:    false,
		},
		{
			name: "multiline curl with backslashes",
			curlCmd: `curl -H 'Authorization: Bearer token' \
-H 'Content-Type: application/json' \
https://reel.example.com/api/videos`,
			wantURL: "https://reel.example.com/api/videos",
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
				"Content-Type":  "application/json",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "headers with spaces around colon",
			curlCmd: `curl -H 'Authorization : Bearer token' https://reel.example.com`,
			wantURL: "https://reel.example.com",
			wantHeaders: map[string]string{
				"Authorization": "Bearer token",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:        "-b cookie takes precedence over -H cookie",
			curlCmd:     `curl -H 'Cookie: old=value' -b 'new=value' https://reel.example.com`,
			wantURL:     "https://reel.example.com",
			wantHeaders: map[string]string{},
			wantCookie:  "new=value",
			wantErr:     false,
		},
		{
			name:        "bare URL with no headers",
			curlCmd:     `curl https://reel.example.com/api/videos`,
			wantURL:     "https://reel.example.com/api/videos",
			wantHeaders: map[string]string{},
			wantCookie:  "",
			wantErr:     false,
		},
		{
			name:    "URL inside a header does not become the request URL",
			curlCmd: `curl -H 'Referer: https://other.example.com/page' 'https://reel.example.com/api/videos?limit=20'`,
			wantURL: "https://reel.example.com/api/videos?limit=20",
			wantHeaders: map[string]string{
				"Referer": "https://other.example.com/page",
			},
			wantCookie: "",
			wantErr:    false,
		},
		{
			name:    "no URL or headers",
			curlCmd: `curl --compressed`,
			wantErr: true,
		},
		{
			name:    "empty command",
			curlCmd: "",
			wantErr: true,
		},
		{
			name: "complex real-world example",
			curlCmd: `curl 'https://reel.example.com/api/videos?limit=20' \
  -H 'accept: */*' \
  -H 'accept-language: en-US,en;q=0.9' \
  -H 'authorization: Bearer tok_abc123' \
  -H 'content-type: application/json' \
  -H 'cookie: session=xyz; consent=yes' \
  --compressed`,
			wantURL: "https://reel.example.com/api/videos?limit=20",
			wantHeaders: map[string]string{
				"accept":          "*/*",
				"accept-language": "en-US,en;q=0.9",
				"authorization":   "Bearer tok_abc123",
				"content-type":    "application/json",
			},
			wantCookie: "session=xyz; consent=yes",
			wantErr:    false,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCurlCommand([]byte(tc.curlCmd))

			if (err != nil) != tc.wantErr {
				t.Errorf("ParseCurlCommand() error = %v, wantErr %v", err, tc.wantErr)
				return
			}

			if tc.wantErr {
				return
			}

			if result == nil {
				t.Fatal("ParseCurlCommand() returned nil result")
			}

			if result.URL != tc.wantURL {
				t.Errorf("ParseCurlCommand() URL = %v, want %v", result.URL, tc.wantURL)
			}

			if len(result.Headers) != len(tc.wantHeaders) {
				t.Errorf("ParseCurlCommand() headers count = %v, want %v", len(result.Headers), len(tc.wantHeaders))
			}

			for key, want := range tc.wantHeaders {
				if got := result.Headers[key]; got != want {
					t.Errorf("ParseCurlCommand() header[%s] = %v, want %v", key, got, want)
				}
			}

			if result.Cookie != tc.wantCookie {
				t.Errorf("ParseCurlCommand() cookie = %v, want %v", result.Cookie, tc.wantCookie)
			}
		})
	}
}

func TestParseCurlFile(t *testing.T) {
	t.Run("successful file parse", func(t *testing.T) {
		tmpDir := t.TempDir()
		curlFile := filepath.Join(tmpDir, "curl.sh")

		curlCmd := `curl -H 'Authorization: Bearer token123' -H 'Content-Type: application/json' https://reel.example.com/api/videos`
		if err := os.WriteFile(curlFile, []byte(curlCmd), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		result, err := ParseCurlFile(curlFile)
		if err != nil {
			t.Fatalf("ParseCurlFile() error = %v", err)
		}

		if len(result.Headers) != 2 {
			t.Errorf("ParseCurlFile() headers count = %v, want 2", len(result.Headers))
		}

		if result.Headers["Authorization"] != "Bearer token123" {
			t.Errorf("ParseCurlFile() Authorization = %v, want %v", result.Headers["Authorization"], "Bearer token123")
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		_, err := ParseCurlFile("/nonexistent/file.sh")
		if err == nil {
			t.Error("ParseCurlFile() expected error for nonexistent file")
		}
	})
}

func TestCurlRequest_BearerToken(t *testing.T) {
	tt := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "capitalized header",
			headers: map[string]string{"Authorization": "Bearer tok_abc123"},
			want:    "tok_abc123",
		},
		{
			name:    "lowercase header name",
			headers: map[string]string{"authorization": "Bearer tok_abc123"},
			want:    "tok_abc123",
		},
		{
			name:    "non-bearer scheme",
			headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			want:    "",
		},
		{
			name:    "missing header",
			headers: map[string]string{"Content-Type": "application/json"},
			want:    "",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			req := &CurlRequest{Headers: tc.headers}
			if got := req.BearerToken(); got != tc.want {
				t.Errorf("BearerToken() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCurlRequest_BaseURL(t *testing.T) {
	tt := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "strips path and query",
			url:  "https://reel.example.com/api/videos?limit=20",
			want: "https://reel.example.com",
		},
		{
			name: "keeps the port",
			url:  "http://localhost:3000/api/playlists",
			want: "http://localhost:3000",
		},
		{
			name: "bare origin",
			url:  "https://reel.example.com",
			want: "https://reel.example.com",
		},
		{
			name: "empty URL",
			url:  "",
			want: "",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			req := &CurlRequest{URL: tc.url}
			if got := req.BaseURL(); got != tc.want {
				t.Errorf("BaseURL() = %q, want %q", got, tc.want)
			}
		})
	}
}
