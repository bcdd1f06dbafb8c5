// Package cell turns driver-native column values into the text the pattern
// is matched against.
package cell

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05.999999999"
)

// binaryTypes are declared type names whose []byte values are raw bytes.
var binaryTypes = []string{"BLOB", "BINARY", "BYTEA", "GEOMETRY", "POINT", "POLYGON", "LINESTRING"}

// textualTypes are fragments of declared type names whose []byte values are text.
// Drivers on the MySQL text protocol hand back numbers and temporal values this way.
var textualTypes = []string{
	"CHAR", "TEXT", "CLOB", "JSON", "XML", "ENUM", "SET", "UUID",
	"INT", "DEC", "NUMERIC", "FLOAT", "DOUBLE", "REAL",
	"DATE", "TIME", "YEAR",
}

// Normalizer converts cells to their canonical textual form.
// Safe for concurrent use.
type Normalizer struct {
	logger sqlgrep.Logger
}

// NewNormalizer creates a Normalizer that reports unknown cell types to logger.
func NewNormalizer(logger sqlgrep.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize returns (text, true, nil) for a matchable cell and ("", false, nil)
// for a cell that is deliberately excluded from matching: NULL, binary data and
// types without a textual form. A cell that should have a textual form but
// cannot be decoded returns an error wrapping sqlgrep.ErrCellConversion.
func (n *Normalizer) Normalize(c sqlgrep.Cell) (string, bool, error) {
	value := c.Value

	// A driver.Valuer such as pgtype.Numeric is judged by its driver value.
	if v, isValuer := value.(driver.Valuer); isValuer && !isKnown(value) {
		dv, err := v.Value()
		if err != nil {
			return "", false, fmt.Errorf("%w: %T: %v", sqlgrep.ErrCellConversion, value, err)
		}
		value = dv
	}

	if !isKnown(value) {
		n.logger.Warn("Unknown cell type: %T (declared %q)", c.Value, c.DatabaseType)
		return "", false, nil
	}
	return normalize(value, c.DatabaseType)
}

func normalize(value any, dbType string) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil

	case string:
		if !utf8.ValidString(v) {
			return "", false, fmt.Errorf("%w: invalid UTF-8 in text value", sqlgrep.ErrCellConversion)
		}
		return v, true, nil

	case []byte:
		if !isTextual(dbType) {
			return "", false, nil
		}
		if !utf8.Valid(v) {
			return "", false, fmt.Errorf("%w: invalid UTF-8 in text value", sqlgrep.ErrCellConversion)
		}
		return string(v), true, nil

	case int:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int8:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int16:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int32:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint64:
		return strconv.FormatUint(v, 10), true, nil

	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil

	case bool:
		return strconv.FormatBool(v), true, nil

	case time.Time:
		return formatTime(v, dbType), true, nil

	case uuid.UUID:
		return v.String(), true, nil
	case [16]byte:
		return uuid.UUID(v).String(), true, nil
	}

	return "", false, nil
}

// isKnown reports whether value belongs to one of the handled branches.
func isKnown(value any) bool {
	switch value.(type) {
	case nil, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, bool, time.Time, uuid.UUID, [16]byte:
		return true
	}
	return false
}

func formatTime(t time.Time, dbType string) string {
	upper := strings.ToUpper(strings.TrimSpace(dbType))
	switch {
	case upper == "DATE":
		return t.Format(dateLayout)
	case strings.HasPrefix(upper, "TIME") && !strings.HasPrefix(upper, "TIMESTAMP"):
		return t.Format(timeLayout)
	case isZoned(upper) || hasOffset(t):
		return t.Format(time.RFC3339Nano)
	default:
		// Zone-less values (SQLite DATETIME text, PostgreSQL timestamp, MySQL
		// DATETIME) come back as UTC; print them the way they are stored.
		return t.Format(dateTimeLayout)
	}
}

// isZoned reports whether an upper-cased declared type carries a time zone.
func isZoned(upper string) bool {
	return strings.HasSuffix(upper, "TZ") || strings.Contains(upper, "WITH TIME ZONE")
}

func hasOffset(t time.Time) bool {
	_, offset := t.Zone()
	return offset != 0
}

func isTextual(dbType string) bool {
	upper := strings.ToUpper(dbType)
	if upper == "" || upper == "BIT" {
		return false
	}
	for _, b := range binaryTypes {
		if strings.Contains(upper, b) {
			return false
		}
	}
	for _, t := range textualTypes {
		if strings.Contains(upper, t) {
			return true
		}
	}
	return false
}
