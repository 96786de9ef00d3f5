package files

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrEmptyFile is returned for zero-byte uploads.
var ErrEmptyFile = errors.New("file is empty")

// FileTooLargeError is returned when a single upload exceeds the per-file cap.
type FileTooLargeError struct {
	Size int64
	Max  int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: maximum size is %s", humanize.IBytes(uint64(e.Max)))
}

// QuotaError is returned when an upload would push the bucket past its limit.
type QuotaError struct {
	Limit int64
	Used  int64
	Size  int64
}

// Remaining is the free space at the time of the check, never negative.
func (e *QuotaError) Remaining() int64 {
	return max(0, e.Limit-e.Used)
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("not enough space: %s remaining, file is %s",
		humanize.IBytes(uint64(e.Remaining())), humanize.IBytes(uint64(e.Size)))
}
