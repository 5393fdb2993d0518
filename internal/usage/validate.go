package usage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

// FilterInput is the raw text typed into the filter form.
type FilterInput struct {
	ClientID  string
	StartDate string
	EndDate   string
	MinUsage  string
	MaxUsage  string
}

// ValidationError reports a filter input that could not be applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseFilterInput validates the form values and converts them into
// FilterCriteria. Blank fields are left unconstrained. The first invalid
// field is reported as a *ValidationError.
func ParseFilterInput(in FilterInput) (models.FilterCriteria, error) {
	criteria := models.FilterCriteria{
		ClientID: strings.TrimSpace(in.ClientID),
	}

	var err error
	if criteria.StartDate, err = parseDate("startDate", in.StartDate); err != nil {
		return models.FilterCriteria{}, err
	}
	if criteria.EndDate, err = parseDate("endDate", in.EndDate); err != nil {
		return models.FilterCriteria{}, err
	}
	if criteria.MinUsage, err = parseUsage("minUsage", in.MinUsage); err != nil {
		return models.FilterCriteria{}, err
	}
	if criteria.MaxUsage, err = parseUsage("maxUsage", in.MaxUsage); err != nil {
		return models.FilterCriteria{}, err
	}

	return criteria, nil
}

// Input renders criteria back into form text, the inverse of ParseFilterInput.
func Input(c models.FilterCriteria) FilterInput {
	in := FilterInput{
		ClientID:  c.ClientID,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}
	if c.MinUsage != nil {
		in.MinUsage = models.FormatGB(*c.MinUsage)
	}
	if c.MaxUsage != nil {
		in.MaxUsage = models.FormatGB(*c.MaxUsage)
	}
	return in
}

func parseUsage(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("Invalid value for %s. Please enter a number.", field),
		}
	}
	if v < 0 {
		return nil, &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s cannot be negative.", field),
		}
	}
	return &v, nil
}

func parseDate(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(models.DateLayout, raw); err != nil {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("Invalid value for %s. Please use YYYY-MM-DD.", field),
		}
	}
	return raw, nil
}
