// Utilities for extracting a session token from a browser-copied cURL command.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// sessionCookieName is the cookie the backend sets on login.
const sessionCookieName = "access_token"

// CurlSession holds the session token parsed from a cURL command.
type CurlSession struct {
	Token   string
	Headers map[string]string
}

// ParseCurlFile reads a .sh file containing a cURL command ("Copy as cURL"
// from browser devtools) and extracts the session token.
func ParseCurlFile(filepath string) (*CurlSession, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts the access_token
// cookie plus any remaining headers.
func ParseCurlCommand(data []byte) (*CurlSession, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	headerRegex := regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)

	for _, match := range matches {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if strings.EqualFold(key, "cookie") {
			cookie = value
		} else {
			headers[key] = value
		}
	}

	cookieRegex := regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
	if cookieMatches := cookieRegex.FindStringSubmatch(curlCmd); len(cookieMatches) > 1 {
		if cookieMatches[1] != "" {
			cookie = cookieMatches[1]
		} else {
			cookie = cookieMatches[2]
		}
	}

	token := sessionTokenFromCookie(cookie)
	if token == "" {
		return nil, fmt.Errorf("no %s cookie found in curl command", sessionCookieName)
	}

	return &CurlSession{Token: token, Headers: headers}, nil
}

// sessionTokenFromCookie pulls the access_token value out of a Cookie header.
func sessionTokenFromCookie(cookie string) string {
	for _, pair := range strings.Split(cookie, ";") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) == 2 && parts[0] == sessionCookieName {
			return parts[1]
		}
	}
	return ""
}
