package utils

import (
	"mime"
	"path/filepath"
	"strings"
)

const fallbackExtension = ".bin"

// extensions maps the MIME types the service reads or writes to their
// canonical file extension.
var extensions = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/rtf":    ".rtf",
	"application/zip":    ".zip",

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",

	"application/vnd.oasis.opendocument.text": ".odt",

	"image/bmp":  ".bmp",
	"image/gif":  ".gif",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/tiff": ".tif",
	"image/webp": ".webp",
	"text/plain": ".txt",
}

var aliases = map[string]string{
	".jpeg": ".jpg",
	".tiff": ".tif",
}

// ExtensionForMimeType returns the canonical extension of mimeType. Parameters
// such as charset are ignored; unknown types map to ".bin".
func ExtensionForMimeType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	}

	if ext, ok := extensions[mediaType]; ok {
		return ext
	}

	return fallbackExtension
}

// MatchesMimeType reports whether the extension of filename is the one
// expected for mimeType, ignoring case and common aliases.
func MatchesMimeType(filename, mimeType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if canonical, ok := aliases[ext]; ok {
		ext = canonical
	}

	expected := ExtensionForMimeType(mimeType)

	return expected != fallbackExtension && ext == expected
}
