package utils

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// UploadName returns "<unix-ms>-<base>" where base is the uploaded name
// with path separators and control characters removed.
func UploadName(now time.Time, name string) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + SanitizeFilename(name)
}

// SanitizeFilename keeps the last path element of name and replaces
// characters that are unsafe in URLs or file systems with '-'.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base("/" + name)
	if name == "/" {
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsControl(r), r == '/', r == '?', r == '#', r == '%', r == '"', r == '<', r == '>':
			b.WriteRune('-')
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
