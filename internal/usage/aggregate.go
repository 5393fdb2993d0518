// Package usage aggregates broadband usage records into dashboard figures.
//
// Every function here is a pure transformation over an immutable record
// snapshot. Inputs are never modified; sorted or filtered results are
// always fresh slices.
package usage

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

// Layouts used when labelling aggregated data.
const (
	MonthKeyLayout   = "2006-01"
	MonthLabelLayout = "Jan 2006"
	DayLabelLayout   = "Jan 02"

	// DailySeriesLimit is how many of the newest records feed the daily chart.
	DailySeriesLimit = 30
)

// CurrentMonth returns the reference month ("YYYY-MM") for t in UTC.
func CurrentMonth(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// ComputeStats derives the dashboard summary from records. totalClients is
// the size of the client roster, not the number of distinct clients seen in
// records. referenceMonth is matched as a prefix of each record's date.
func ComputeStats(records []models.UsageRecord, totalClients int, referenceMonth string) models.UsageStats {
	stats := models.UsageStats{TotalClients: max(totalClients, 0)}

	for _, r := range records {
		stats.TotalUsageGB += r.TotalUsage
		if referenceMonth != "" && strings.HasPrefix(r.Date, referenceMonth) {
			stats.CurrentMonthUsageGB += r.TotalUsage
		}
	}

	if stats.TotalClients > 0 {
		stats.AverageUsageGB = stats.TotalUsageGB / float64(stats.TotalClients)
	}
	return stats
}

// ApplyFilters returns the records matching every set criterion, newest
// first. Records sharing a date keep their input order. Criteria are
// expected to be validated already (see ParseFilterInput).
func ApplyFilters(records []models.UsageRecord, criteria models.FilterCriteria) []models.UsageRecord {
	out := make([]models.UsageRecord, 0, len(records))
	for _, r := range records {
		if Matches(r, criteria) {
			out = append(out, r)
		}
	}
	SortByDateDesc(out)
	return out
}

// Matches reports whether a single record satisfies criteria.
func Matches(r models.UsageRecord, c models.FilterCriteria) bool {
	if c.ClientID != "" && r.ClientID != c.ClientID {
		return false
	}
	if c.StartDate != "" && r.Date < c.StartDate {
		return false
	}
	if c.EndDate != "" && r.Date > c.EndDate {
		return false
	}
	if c.MinUsage != nil && r.TotalUsage < *c.MinUsage {
		return false
	}
	if c.MaxUsage != nil && r.TotalUsage > *c.MaxUsage {
		return false
	}
	return true
}

// SortByDateDesc orders records newest first in place, keeping the
// relative order of records with the same date.
func SortByDateDesc(records []models.UsageRecord) {
	slices.SortStableFunc(records, func(a, b models.UsageRecord) int {
		return cmp.Compare(b.Date, a.Date)
	})
}

// BucketByMonth groups records by calendar month and sums each usage
// channel. Buckets are ordered chronologically. Records whose date cannot
// be parsed are left out.
func BucketByMonth(records []models.UsageRecord) []models.MonthlyBucket {
	index := make(map[string]int)
	var buckets []models.MonthlyBucket

	for _, r := range records {
		t := r.Time()
		if t.IsZero() {
			continue
		}
		key := t.Format(MonthKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, models.MonthlyBucket{
				Key:   key,
				Month: t.Format(MonthLabelLayout),
			})
		}
		buckets[i].Kit1 += r.Kit1Usage
		buckets[i].Kit2 += r.Kit2Usage
		buckets[i].Total += r.TotalUsage
	}

	slices.SortFunc(buckets, func(a, b models.MonthlyBucket) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return buckets
}

// DailySeries takes the first limit records of a newest-first list and
// returns them oldest first, labelled for the daily chart.
func DailySeries(records []models.UsageRecord, limit int) []models.DailyPoint {
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}

	points := make([]models.DailyPoint, 0, limit)
	for i := limit - 1; i >= 0; i-- {
		r := records[i]
		label := r.Date
		if t := r.Time(); !t.IsZero() {
			label = t.Format(DayLabelLayout)
		}
		points = append(points, models.DailyPoint{
			Label: label,
			Date:  r.Date,
			Kit1:  r.Kit1Usage,
			Kit2:  r.Kit2Usage,
			Total: r.TotalUsage,
		})
	}
	return points
}

// ProjectMonth extrapolates the month containing now to its last day at
// the average daily pace observed so far.
func ProjectMonth(records []models.UsageRecord, now time.Time) models.MonthProjection {
	now = now.UTC()
	month := CurrentMonth(now)
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	p := models.MonthProjection{
		Month:       now.Format(MonthLabelLayout),
		DaysElapsed: now.Day(),
		DaysInMonth: daysInMonth,
	}
	for _, r := range records {
		if strings.HasPrefix(r.Date, month) {
			p.SoFarGB += r.TotalUsage
		}
	}
	p.ProjectedGB = p.SoFarGB / float64(p.DaysElapsed) * float64(daysInMonth)
	return p
}

// SummarizeClients totals records per client, in roster order.
func SummarizeClients(clients []models.Client, records []models.UsageRecord) []models.ClientSummary {
	index := make(map[string]int, len(clients))
	summaries := make([]models.ClientSummary, len(clients))
	for i, c := range clients {
		summaries[i] = models.ClientSummary{Client: c}
		index[c.ID] = i
	}

	for _, r := range records {
		i, ok := index[r.ClientID]
		if !ok {
			continue
		}
		s := &summaries[i]
		s.TotalUsageGB += r.TotalUsage
		s.RecordCount++
		if r.Date > s.LastDate {
			s.LastDate = r.Date
		}
	}
	return summaries
}
