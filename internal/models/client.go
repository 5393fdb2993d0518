// Package models defines data structures and domain types.
package models

import "time"

// Client is a broadband customer from the client roster.
type Client struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

// DisplayName returns the client name, or its email when the name is blank.
func (c Client) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Email != "" {
		return c.Email
	}
	return UnknownClient
}

// ClientSummary pairs a client with its usage over the loaded records.
type ClientSummary struct {
	Client
	LastDate     string
	TotalUsageGB float64
	RecordCount  int
}

// AverageUsageGB returns the mean usage per record for the client.
func (s ClientSummary) AverageUsageGB() float64 {
	if s.RecordCount == 0 {
		return 0
	}
	return s.TotalUsageGB / float64(s.RecordCount)
}
