package domain

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Category classifies a campus event.
type Category string

const (
	CategoryAcademic       Category = "Academic"
	CategoryOrganizational Category = "Organizational"
	CategoryDeadline       Category = "Deadline"
	CategoryHoliday        Category = "Holiday"
)

// ParseCategory normalizes a category label. Anything unrecognized counts as
// academic, the catch-all bucket the calendar files have always used.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "organizational":
		return CategoryOrganizational
	case "deadline":
		return CategoryDeadline
	case "holiday":
		return CategoryHoliday
	default:
		return CategoryAcademic
	}
}

// UnmarshalJSON routes persisted labels through ParseCategory, so a decoded
// category is always one of the four known values.
func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode category: %w", err)
	}
	*c = ParseCategory(s)
	return nil
}

// EventData is the event payload carried into the edit-event view. The router
// moves it around; it never stores or mutates it.
type EventData struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Date        Date      `json:"date"`
	StartTime   ClockTime `json:"start_time"`
	EndTime     ClockTime `json:"end_time"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}
