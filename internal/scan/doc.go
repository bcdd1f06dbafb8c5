// Package scan drives planned queries against a read-only Source and reports
// every cell whose normalized text matches the pattern.
//
// Failures are split in two tiers. Anything that makes the request invalid
// is decided before the scan starts. During the scan a failing row, cell or
// conversion is logged with its position (query id, row index, column and
// declared type) and skipped; the rest of the data is still scanned and the
// run still succeeds.
package scan
