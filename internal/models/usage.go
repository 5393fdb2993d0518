package models

import (
	"fmt"
	"strconv"
	"time"
)

// UnknownClient is shown when a usage record carries no client name.
const UnknownClient = "Unknown"

// DateLayout is the ISO calendar date layout used for usage records.
const DateLayout = "2006-01-02"

// UsageRecord is one client's measured consumption for one date.
// TotalUsage is authoritative and may differ from Kit1Usage+Kit2Usage.
type UsageRecord struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"client_id"`
	Date        string  `json:"date"`
	ClientName  string  `json:"client_name,omitempty"`
	ClientEmail string  `json:"client_email,omitempty"`
	Kit1Usage   float64 `json:"kit_1_usage"`
	Kit2Usage   float64 `json:"kit_2_usage"`
	TotalUsage  float64 `json:"total_usage"`
}

// DisplayClient returns the client name or UnknownClient.
func (r UsageRecord) DisplayClient() string {
	if r.ClientName == "" {
		return UnknownClient
	}
	return r.ClientName
}

// Time parses the record date. The zero time is returned for malformed dates.
func (r UsageRecord) Time() time.Time {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UsageStats are the summary figures shown on the dashboard.
// They are recomputed from the full record set on every refresh.
type UsageStats struct {
	TotalClients        int     `json:"total_clients"`
	TotalUsageGB        float64 `json:"total_usage_gb"`
	CurrentMonthUsageGB float64 `json:"current_month_usage_gb"`
	AverageUsageGB      float64 `json:"average_usage_gb"`
}

// MonthlyBucket aggregates usage for one calendar month.
type MonthlyBucket struct {
	Month string // "Jan 2006"
	Key   string // "2006-01", sorts chronologically
	Kit1  float64
	Kit2  float64
	Total float64
}

// DailyPoint is a single record projected for the daily chart.
type DailyPoint struct {
	Label string // "Jan 02"
	Date  string
	Kit1  float64
	Kit2  float64
	Total float64
}

// MonthProjection estimates the month-end total from the pace so far.
type MonthProjection struct {
	Month       string
	SoFarGB     float64
	ProjectedGB float64
	DaysElapsed int
	DaysInMonth int
}

// FilterCriteria is a conjunctive predicate over usage records.
// Empty strings and nil pointers impose no constraint.
type FilterCriteria struct {
	MinUsage  *float64 `json:"min_usage,omitempty"`
	MaxUsage  *float64 `json:"max_usage,omitempty"`
	ClientID  string   `json:"client_id,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (f FilterCriteria) IsEmpty() bool {
	return f.ClientID == "" && f.StartDate == "" && f.EndDate == "" &&
		f.MinUsage == nil && f.MaxUsage == nil
}

// FilterChip is a label/value pair describing one active criterion.
type FilterChip struct {
	Label string
	Value string
}

// Chips lists the active criteria in display order. clientName resolves a
// client ID to a readable name and may be nil.
func (f FilterCriteria) Chips(clientName func(id string) string) []FilterChip {
	var chips []FilterChip
	if f.ClientID != "" {
		name := f.ClientID
		if clientName != nil {
			if n := clientName(f.ClientID); n != "" {
				name = n
			}
		}
		chips = append(chips, FilterChip{Label: "Client", Value: name})
	}
	if f.StartDate != "" {
		chips = append(chips, FilterChip{Label: "From", Value: f.StartDate})
	}
	if f.EndDate != "" {
		chips = append(chips, FilterChip{Label: "To", Value: f.EndDate})
	}
	if f.MinUsage != nil {
		chips = append(chips, FilterChip{Label: "Min", Value: fmt.Sprintf("%s GB", FormatGB(*f.MinUsage))})
	}
	if f.MaxUsage != nil {
		chips = append(chips, FilterChip{Label: "Max", Value: fmt.Sprintf("%s GB", FormatGB(*f.MaxUsage))})
	}
	return chips
}

// FormatGB prints a usage value in its shortest exact form.
func FormatGB(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Float returns a pointer to v, for building FilterCriteria literals.
func Float(v float64) *float64 {
	return &v
}
