package usage

import "github.com/zuba-broadband/usage-dashboard-tui/internal/models"

// ClassifyUsage maps a record total to its usage level. Both thresholds
// are inclusive upper bounds: 50 is Low and 100 is Medium.
func ClassifyUsage(totalGB float64) models.UsageLevel {
	switch {
	case totalGB > models.MediumUsageCeilingGB:
		return models.UsageHigh
	case totalGB > models.LowUsageCeilingGB:
		return models.UsageMedium
	case totalGB > 0:
		return models.UsageLow
	default:
		return models.UsageNone
	}
}

// HighUsage returns the records classified as High, preserving order.
func HighUsage(records []models.UsageRecord) []models.UsageRecord {
	var out []models.UsageRecord
	for _, r := range records {
		if ClassifyUsage(r.TotalUsage) == models.UsageHigh {
			out = append(out, r)
		}
	}
	return out
}
