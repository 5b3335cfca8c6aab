package models

import "time"

// Group holds the metadata of one round-robin group of a tournament.
type Group struct {
	ID          int          `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Location    string       `json:"location" db:"location"`
	Federation  string       `json:"federation" db:"federation"`
	StartDate   time.Time    `json:"start_date" db:"start_date"`
	EndDate     time.Time    `json:"end_date" db:"end_date"`
	Rounds      int          `json:"rounds" db:"rounds"`
	Organizer   string       `json:"organizer" db:"organizer"`
	Arbiter     string       `json:"arbiter" db:"arbiter"`
	TimeControl string       `json:"time_control" db:"time_control"`
	Weekday     time.Weekday `json:"weekday" db:"weekday"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
