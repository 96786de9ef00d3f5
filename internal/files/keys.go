package files

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	keyIDSeparator = "_"
	fallbackName   = "file"
)

var (
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	separatorRuns = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with "_",
// collapses runs of "_" and trims them from both ends.
func SanitizeFilename(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	s = separatorRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Extension returns the lowercased last extension of name, dot included,
// or "" when there is none.
func Extension(name string) string {
	return strings.ToLower(path.Ext(baseName(name)))
}

// NewKeyID returns a short random identifier: the first group of a v4 UUID.
func NewKeyID() string {
	id := uuid.NewString()
	return id[:strings.IndexByte(id, '-')]
}

// DeriveKey builds the object key for an upload: "<id>_<sanitized name>".
//
// With a custom name, the extension of the original file is appended unless
// the sanitized custom name already ends with it. Without one, the sanitized
// basename of the original file is used. Directory components of the
// original name are dropped.
func DeriveKey(id, originalName, customName string) string {
	original := SanitizeFilename(baseName(originalName))
	ext := Extension(original)

	if custom := strings.TrimSpace(customName); custom != "" {
		name := SanitizeFilename(custom)
		if name == "" {
			name = fallbackName
		}
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return id + keyIDSeparator + name
		}
		return id + keyIDSeparator + name + ext
	}

	if original == "" || original == ext {
		original = fallbackName + ext
	}
	return id + keyIDSeparator + original
}

// baseName strips directory components, accepting both separators since
// some browsers send full client paths.
func baseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}
