// Package export serializes usage records for download.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

// Header is the fixed first line of every CSV export.
const Header = "Date,Client,Kit 1 Usage (GB),Kit 2 Usage (GB),Total Usage (GB)"

const (
	filePrefix     = "zuba-broadband-usage-"
	demoFilePrefix = "zuba-broadband-demo-"
)

// ToCSV renders records as CSV text, one line per record in input order.
// Values are written raw: embedded commas are not quoted.
func ToCSV(records []models.UsageRecord) string {
	var b strings.Builder
	b.WriteString(Header)

	for _, r := range records {
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			r.Date,
			r.DisplayClient(),
			models.FormatGB(r.Kit1Usage),
			models.FormatGB(r.Kit2Usage),
			models.FormatGB(r.TotalUsage),
		}, ","))
	}

	return b.String()
}

// Filename returns the download name for an export made at now. The date
// is taken in UTC.
func Filename(now time.Time, demo bool) string {
	prefix := filePrefix
	if demo {
		prefix = demoFilePrefix
	}
	return prefix + now.UTC().Format(models.DateLayout) + ".csv"
}

// WriteFile writes the CSV for records into dir and returns the absolute
// path of the created file.
func WriteFile(dir string, records []models.UsageRecord, now time.Time, demo bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(now, demo))
	if err := os.WriteFile(path, []byte(ToCSV(records)), 0o600); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
