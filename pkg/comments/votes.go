package comments

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVotes is matched by every *FormatError.
var ErrInvalidVotes = errors.New("invalid vote count")

// thousandsMarker is the suffix YouTube uses for abbreviated counts ("1.2K").
const thousandsMarker = "K"

// decimalRe is the only form accepted in front of the marker. It keeps out
// the exponent, hex, Inf and NaN spellings strconv.ParseFloat allows.
var decimalRe = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// FormatError reports a vote string that is neither an integer nor "<decimal>K".
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("comments: invalid vote count %q", e.Raw)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrInvalidVotes }

// NormalizeVotes converts a displayed vote count into an integer.
//
// "1.5K" becomes 1500 (truncated toward zero), "342" becomes 342. An empty
// string is zero: the comment downloader omits the count for unvoted comments.
func NormalizeVotes(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	if strings.Contains(s, thousandsMarker) {
		num := strings.ReplaceAll(s, thousandsMarker, "")
		if !decimalRe.MatchString(num) {
			return 0, &FormatError{Raw: raw, Err: strconv.ErrSyntax}
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, &FormatError{Raw: raw, Err: err}
		}
		v := f * 1000
		if math.IsNaN(v) || math.IsInf(v, 0) || v >= 1<<63 || v < -(1<<63) {
			return 0, &FormatError{Raw: raw, Err: strconv.ErrRange}
		}
		return int64(v), nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &FormatError{Raw: raw, Err: err}
	}
	return n, nil
}
