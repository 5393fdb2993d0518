package models

// UsageLevel classifies a record's total usage for badge display.
type UsageLevel int

const (
	// UsageNone is exactly zero usage.
	UsageNone UsageLevel = iota
	// UsageLow is above zero and up to 50 GB.
	UsageLow
	// UsageMedium is above 50 GB and up to 100 GB.
	UsageMedium
	// UsageHigh is above 100 GB.
	UsageHigh
)

// Level thresholds in GB, both inclusive upper bounds.
const (
	LowUsageCeilingGB    = 50.0
	MediumUsageCeilingGB = 100.0
)

func (l UsageLevel) String() string {
	switch l {
	case UsageLow:
		return "Low"
	case UsageMedium:
		return "Medium"
	case UsageHigh:
		return "High"
	default:
		return "None"
	}
}

// BadgeVariant returns the badge style name for the level.
func (l UsageLevel) BadgeVariant() string {
	switch l {
	case UsageLow:
		return "secondary"
	case UsageMedium:
		return "default"
	case UsageHigh:
		return "destructive"
	default:
		return "outline"
	}
}
