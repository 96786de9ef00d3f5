// Package media classifies stored files as image, video, audio or other.
package media

import (
	"path"
	"strings"
)

// Type is the coarse media category shown by the dashboard filters.
type Type string

const (
	Image Type = "image"
	Video Type = "video"
	Audio Type = "audio"
	Other Type = "other"
)

var imageMIMEs = set(
	"image/jpeg", "image/png", "image/gif", "image/webp",
	"image/svg+xml", "image/x-icon", "image/bmp",
	"image/avif", "image/tiff",
)

var videoMIMEs = set(
	"video/mp4", "video/webm", "video/quicktime",
	"video/x-msvideo", "video/x-matroska",
	"video/x-flv", "video/x-ms-wmv", "video/ogg",
)

var audioMIMEs = set(
	"audio/mpeg", "audio/wav", "audio/ogg", "audio/flac",
	"audio/aac", "audio/mp4", "audio/x-ms-wma",
	"audio/opus", "audio/webm",
)

var imageExts = set(
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg",
	".ico", ".bmp", ".avif", ".tiff",
)

// .webm is listed for both video and audio; video is checked first.
var videoExts = set(
	".mp4", ".webm", ".mov", ".avi", ".mkv",
	".flv", ".wmv", ".m4v", ".ogv",
)

var audioExts = set(
	".mp3", ".wav", ".ogg", ".flac", ".aac",
	".m4a", ".wma", ".opus", ".webm",
)

// Classify returns the media type of a file. The declared MIME type wins;
// the filename extension is only consulted when the MIME type says nothing.
func Classify(filename, mimeType string) Type {
	if mimeType != "" {
		if t := FromMIME(mimeType); t != Other {
			return t
		}
	}
	return FromExtension(filename)
}

// FromMIME classifies by MIME type: exact match first, then type prefix.
// Parameters such as "; charset=utf-8" are ignored.
func FromMIME(mimeType string) Type {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}

	switch {
	case imageMIMEs[m]:
		return Image
	case videoMIMEs[m]:
		return Video
	case audioMIMEs[m]:
		return Audio
	case strings.HasPrefix(m, "image/"):
		return Image
	case strings.HasPrefix(m, "video/"):
		return Video
	case strings.HasPrefix(m, "audio/"):
		return Audio
	}
	return Other
}

// FromExtension classifies by the last extension of filename.
func FromExtension(filename string) Type {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return Other
	}

	switch {
	case imageExts[ext]:
		return Image
	case videoExts[ext]:
		return Video
	case audioExts[ext]:
		return Audio
	}
	return Other
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
