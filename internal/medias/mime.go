package medias

import (
	"path/filepath"
	"regexp"
	"strings"
)

var mimeTypes = map[string]string{
	// See https://developer.mozilla.org/en-US/docs/Web/HTTP/Basics_of_HTTP/MIME_types/Common_types
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".ico":  "image/vnd.microsoft.icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".pdf":  "application/pdf",
}

var reImage = regexp.MustCompile(`!\[[^\]]*\]\(\s*<?([^)\s>]+)>?`)

// MimeType returns the mime type for common file extensions.
func MimeType(extension string) string {
	mime, ok := mimeTypes[strings.ToLower(extension)]
	if !ok {
		// RFC 2046: arbitrary binary data
		return "application/octet-stream"
	}
	return mime
}

// ReferencedPath returns the path of the first image of the Markdown,
// or the whole trimmed text when it contains no image.
func ReferencedPath(md string) string {
	if match := reImage.FindStringSubmatch(md); match != nil {
		return match[1]
	}
	return strings.TrimSpace(md)
}

// IsImage returns if the path designates an image file.
func IsImage(path string) bool {
	return strings.HasPrefix(MimeType(filepath.Ext(path)), "image/")
}
