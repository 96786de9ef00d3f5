package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mime     string
		want     Type
	}{
		{"extension only, upper case", "clip.MP4", "", Video},
		{"mime beats unknown extension", "unknown.xyz", "audio/mpeg", Audio},
		{"no extension no mime", "noext", "", Other},
		{"mime beats conflicting extension", "cover.mp3", "image/png", Image},
		{"generic mime falls back to extension", "song.flac", "application/octet-stream", Audio},
		{"prefix match", "x.bin", "image/heic", Image},
		{"mime with parameters", "x", "video/mp4; codecs=avc1", Video},
		{"webm extension is video", "a.webm", "", Video},
		{"webm audio mime", "a.webm", "audio/webm", Audio},
		{"key with path segments", "2024/a1b2c3d4_photo.JPEG", "", Image},
		{"dot in directory only", "dir.v2/readme", "", Other},
		{"text", "notes.txt", "text/plain", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.filename, tt.mime))
		})
	}
}

func TestFromMIMECaseInsensitive(t *testing.T) {
	assert.Equal(t, Image, FromMIME("IMAGE/SVG+XML"))
	assert.Equal(t, Video, FromMIME("video/QuickTime"))
	assert.Equal(t, Other, FromMIME(""))
	assert.Equal(t, Other, FromMIME("application/pdf"))
}
