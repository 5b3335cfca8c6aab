package standings

import (
	"time"

	"github.com/Dosada05/chess-league/models"
)

// DropoutThreshold is the share of scheduled games a withdrawn participant must
// have played for their fixtures to stay in the standings.
const DropoutThreshold = 0.5

// FilterRelevantGames drops every fixture of a withdrawn participant who played
// less than DropoutThreshold of their scheduled games. The fixture disappears
// for both sides, so it no longer feeds the opponent's points or tie-break.
func FilterRelevantGames(games []models.Game, participants []models.Participant) ([]models.Game, error) {
	index := models.IndexParticipants(participants)
	if err := validateGames(games, index); err != nil {
		return nil, err
	}

	excluded := make(map[int]bool)
	for _, p := range participants {
		withdrawnAt, ok := p.State.Withdrawn()
		if !ok {
			continue
		}
		ratio, err := PlayedRatio(p.ID, withdrawnAt, games, len(participants))
		if err != nil {
			return nil, err
		}
		if ratio < DropoutThreshold {
			excluded[p.ID] = true
		}
	}

	relevant := make([]models.Game, 0, len(games))
	for _, g := range games {
		if g.WhiteID != nil && excluded[*g.WhiteID] {
			continue
		}
		if g.BlackID != nil && excluded[*g.BlackID] {
			continue
		}
		relevant = append(relevant, g)
	}
	return relevant, nil
}

// PlayedRatio is gamesActuallyPlayed / (participantCount - 1) for a participant
// who withdrew at withdrawnAt. A game counts when it has a result, the
// participant did not forfeit it, and it was scheduled before the withdrawal day.
func PlayedRatio(participantID int, withdrawnAt time.Time, games []models.Game, participantCount int) (float64, error) {
	if participantCount < 2 {
		return 1, nil
	}
	withdrawalDay := models.DateOnly(withdrawnAt)

	played := 0
	for _, g := range games {
		if !g.Involves(participantID) || g.IsBye() {
			continue
		}
		outcome, err := OutcomeFor(g, participantID)
		if err != nil {
			return 0, err
		}
		if !outcome.Counted() || outcome.Forfeited() {
			continue
		}
		if !models.DateOnly(g.ScheduledDate).Before(withdrawalDay) {
			continue
		}
		played++
	}
	return float64(played) / float64(participantCount-1), nil
}
