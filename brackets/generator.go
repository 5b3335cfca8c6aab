package brackets

import (
	"context"
	"time"

	"github.com/Dosada05/chess-league/models"
)

type GenerateScheduleParams struct {
	Group        *models.Group
	Participants []*models.Participant
}

// ScheduledGame is a fixture produced by a generator, before it is persisted.
type ScheduledGame struct {
	Round   int
	Board   int
	WhiteID int
	BlackID int
	Date    time.Time
}

type ScheduleGenerator interface {
	GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]*ScheduledGame, error)

	GetName() string
}
