package csvdata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rajivmehta/cargoplan-go/internal/domain/planning"
)

// Naive timestamps in input files are interpreted as Indian Standard
// Time. A fixed zone avoids a runtime dependency on the tz database.
var istZone = time.FixedZone("IST", 5*3600+30*60)

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// header maps column names to positions for one CSV file.
type header map[string]int

func newHeader(fileName string, row []string) (header, error) {
	columns := make(header, len(row))
	for i, name := range row {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if len(columns) == 0 {
		return nil, planning.NewDataValidationError(fileName, "missing header row")
	}
	return columns, nil
}

func (h header) require(fileName string, names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return planning.NewDataValidationError(name, fmt.Sprintf("%s is missing required column", fileName))
		}
	}
	return nil
}

func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, planning.NewDataValidationError(field, "timestamp cannot be empty")
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, value, istZone); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, planning.NewDataValidationError(field, fmt.Sprintf("unparseable timestamp %q", value))
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, planning.NewDataValidationError(field, fmt.Sprintf("unparseable number %q", value))
	}
	return f, nil
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, planning.NewDataValidationError(field, fmt.Sprintf("unparseable integer %q", value))
	}
	return n, nil
}

func parseBool(field, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n", "":
		return false, nil
	default:
		return false, planning.NewDataValidationError(field, fmt.Sprintf("unparseable boolean %q", value))
	}
}
