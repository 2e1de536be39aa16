package domain

import "time"

const (
	// SubmissionTimeLayout is M/D/YYYY, hh:mm:ss A. The backend stores the
	// string as sent and the client parses it back for display, so both sides
	// must use this layout.
	SubmissionTimeLayout = "1/2/2006, 03:04:05 PM"

	// DisplayTimeLayout is M/D/YYYY, h:mm A.
	DisplayTimeLayout = "1/2/2006, 3:04 PM"
)

// FormatSubmissionTime formats t for the summarize request.
func FormatSubmissionTime(t time.Time) string {
	return t.Format(SubmissionTimeLayout)
}

// ParseSubmissionTime parses a timestamp produced by FormatSubmissionTime,
// interpreted in the local time zone.
func ParseSubmissionTime(s string) (time.Time, error) {
	return time.ParseInLocation(SubmissionTimeLayout, s, time.Local)
}

// DisplayTime reformats a stored timestamp for display. Values that do not
// parse are returned unchanged.
func DisplayTime(s string) string {
	t, err := ParseSubmissionTime(s)
	if err != nil {
		return s
	}
	return t.Format(DisplayTimeLayout)
}
