package files

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allowedKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"photo.png":          "photo.png",
		"My File! v2.png":    "My_File_v2.png",
		"  spaced  out  ":    "spaced_out",
		"__a__b__":           "a_b",
		"été 2024.jpg":       "t_2024.jpg",
		"weird/../path.gif":  "weird_.._path.gif",
		"!!!":                "",
		"keep-dash_and.dots": "keep-dash_and.dots",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", Extension("a.PNG"))
	assert.Equal(t, ".gz", Extension("archive.tar.gz"))
	assert.Equal(t, "", Extension("noext"))
	assert.Equal(t, "", Extension("dir.v2/noext"))
}

func TestNewKeyID(t *testing.T) {
	a, b := NewKeyID(), NewKeyID()
	assert.Len(t, a, 8)
	assert.Regexp(t, `^[0-9a-f]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestDeriveKeyCustomNameKeepsSingleExtension(t *testing.T) {
	key := DeriveKey("ab12cd34", "IMG_0001.png", "My File! v2.png")

	assert.Equal(t, "ab12cd34_My_File_v2.png", key)
	assert.False(t, strings.HasSuffix(key, ".png.png"))
	assert.Regexp(t, allowedKey, key)
}

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name     string
		original string
		custom   string
		want     string
	}{
		{"original only", "holiday photo.JPG", "", "id_holiday_photo.JPG"},
		{"custom without extension", "clip.mp4", "Summer trip", "id_Summer_trip.mp4"},
		{"custom extension case-insensitive", "clip.MP4", "trip.Mp4", "id_trip.Mp4"},
		{"custom with other extension", "clip.mp4", "trip.mov", "id_trip.mov.mp4"},
		{"custom blank uses original", "a.png", "   ", "id_a.png"},
		{"original without extension", "README", "notes", "id_notes"},
		{"client path stripped", `C:\Users\me\Desktop\cat.gif`, "", "id_cat.gif"},
		{"unix path stripped", "/home/me/cat.gif", "", "id_cat.gif"},
		{"custom sanitizes to nothing", "a.png", "???", "id_file.png"},
		{"original sanitizes to nothing", "???", "", "id_file"},
		{"original only extension", "★.png", "", "id_file.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveKey("id", tt.original, tt.custom)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, allowedKey, got)
		})
	}
}

func TestDeriveKeySameNameNeverCollides(t *testing.T) {
	a := DeriveKey(NewKeyID(), "cat.gif", "")
	b := DeriveKey(NewKeyID(), "cat.gif", "")
	assert.NotEqual(t, a, b)
}
