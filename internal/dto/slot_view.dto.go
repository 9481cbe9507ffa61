package dto

// SlotViewDTO is one time of a resolved day.
type SlotViewDTO struct {
	ID        uint   `json:"id"`
	Time      string `json:"time"`
	Active    bool   `json:"active"`
	Taken     bool   `json:"taken"`
	Available bool   `json:"available"`
}

// DayCellDTO is one cell of a Sunday-first month grid. Placeholders that
// pad the first week have Day 0.
type DayCellDTO struct {
	Day         int    `json:"day"`
	Date        string `json:"date,omitempty"`
	Placeholder bool   `json:"placeholder"`
	Available   bool   `json:"available"`
	Past        bool   `json:"past"`
	Today       bool   `json:"today"`
}

type MonthGridDTO struct {
	Year      int          `json:"year"`
	Month     int          `json:"month"`
	MonthName string       `json:"month_name"`
	Weekdays  []string     `json:"weekdays"`
	Cells     []DayCellDTO `json:"cells"`
}
