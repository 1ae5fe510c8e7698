package fetch

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// nonHTMLExtensions are paths that never serve an HTML page.
var nonHTMLExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true, ".json": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// CheckURL validates rawURL for fetching and returns it without its fragment.
// Only absolute http(s) URLs that may serve HTML are accepted.
func CheckURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}
	if ext := strings.ToLower(path.Ext(parsed.Path)); nonHTMLExtensions[ext] {
		return "", fmt.Errorf("%s does not point to an HTML page (%s)", rawURL, ext)
	}

	parsed.Fragment = ""
	return parsed.String(), nil
}
