package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "w"
)

// ParticipantState is either active or withdrawn at a given moment.
// The zero value is Active.
type ParticipantState struct {
	withdrawnAt time.Time
	withdrawn   bool
}

func Active() ParticipantState {
	return ParticipantState{}
}

func WithdrawnAt(at time.Time) ParticipantState {
	return ParticipantState{withdrawnAt: at, withdrawn: true}
}

// Withdrawn reports the withdrawal moment; ok is false for an active participant.
func (s ParticipantState) Withdrawn() (at time.Time, ok bool) {
	return s.withdrawnAt, s.withdrawn
}

func (s ParticipantState) String() string {
	if !s.withdrawn {
		return "active"
	}
	return "withdrawn at " + s.withdrawnAt.Format(time.RFC3339)
}

// Timestamp converts the state into the nullable column value used by the repositories.
func (s ParticipantState) Timestamp() *time.Time {
	if !s.withdrawn {
		return nil
	}
	at := s.withdrawnAt
	return &at
}

// StateFromTimestamp is the inverse of Timestamp.
func StateFromTimestamp(at *time.Time) ParticipantState {
	if at == nil {
		return Active()
	}
	return WithdrawnAt(*at)
}

func (s ParticipantState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Timestamp())
}

func (s *ParticipantState) UnmarshalJSON(data []byte) error {
	var at *time.Time
	if err := json.Unmarshal(data, &at); err != nil {
		return fmt.Errorf("participant state: %w", err)
	}
	*s = StateFromTimestamp(at)
	return nil
}

// Participant is a seeded player of a round-robin group.
type Participant struct {
	ID             int              `json:"id" db:"id"`
	GroupID        int              `json:"group_id" db:"group_id"`
	SeedPosition   int              `json:"seed_position" db:"seed_position"` // 1..N, assigned once before scheduling
	FirstName      string           `json:"first_name" db:"first_name"`
	LastName       string           `json:"last_name" db:"last_name"`
	Club           string           `json:"club" db:"club"`
	Federation     string           `json:"federation" db:"federation"` // three-letter country code, e.g. GER
	FideID         *int             `json:"fide_id,omitempty" db:"fide_id"`
	NationalRating *int             `json:"national_rating,omitempty" db:"national_rating"`
	FideRating     *int             `json:"fide_rating,omitempty" db:"fide_rating"`
	BirthYear      *int             `json:"birth_year,omitempty" db:"birth_year"`
	Sex            Sex              `json:"sex" db:"sex"`
	Title          string           `json:"title,omitempty" db:"title"` // GM, IM, FM, WGM, ...
	State          ParticipantState `json:"withdrawn_at" db:"withdrawn_at"`
}

// IndexParticipants maps participant IDs to their records.
func IndexParticipants(participants []Participant) map[int]Participant {
	index := make(map[int]Participant, len(participants))
	for _, p := range participants {
		index[p.ID] = p
	}
	return index
}
