package sink

import "errors"

// Sentinel kinds for reporter errors.
var (
	ErrReportFailed = errors.New("report failed")
)
