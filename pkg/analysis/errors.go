package analysis

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyInput means normalization left nothing to segment.
var ErrEmptyInput = errors.New("text is empty after cleaning")

// SegmentError reports a failure inside the segmentation engine.
type SegmentError struct {
	Engine string
	Err    error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment with %s: %v", e.Engine, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// IsSegmentError reports whether err carries a *SegmentError.
func IsSegmentError(err error) bool {
	var se *SegmentError
	return errors.As(err, &se)
}
