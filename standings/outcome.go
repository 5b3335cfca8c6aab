package standings

import (
	"errors"
	"fmt"

	"github.com/Dosada05/chess-league/models"
)

var (
	ErrUnknownParticipant = errors.New("fixture references an unknown participant")
	ErrInvalidResult      = errors.New("fixture has an unknown result")
	ErrNotOnBoard         = errors.New("participant does not play this fixture")
)

// Outcome is a fixture result seen from one side of the board.
type Outcome int

const (
	OutcomeNone Outcome = iota // not played yet
	OutcomeWin
	OutcomeLoss
	OutcomeDraw
	OutcomeForfeitWin
	OutcomeForfeitLoss
	OutcomeDoubleForfeit
	OutcomeRuleWin
	OutcomeRuleLoss
)

// Points credited for the outcome. Forfeits are fully decisive.
func (o Outcome) Points() float64 {
	switch o {
	case OutcomeWin, OutcomeForfeitWin, OutcomeRuleWin:
		return 1
	case OutcomeDraw:
		return 0.5
	default:
		return 0
	}
}

// Counted reports whether the fixture has a result at all.
func (o Outcome) Counted() bool {
	return o != OutcomeNone
}

// Forfeited reports whether the side did not appear.
func (o Outcome) Forfeited() bool {
	return o == OutcomeForfeitLoss || o == OutcomeDoubleForfeit
}

// Outcomes splits a stored result into white's and black's outcome.
func Outcomes(result models.GameResult) (white, black Outcome, err error) {
	switch result {
	case models.ResultUnplayed:
		return OutcomeNone, OutcomeNone, nil
	case models.ResultWhiteWins:
		return OutcomeWin, OutcomeLoss, nil
	case models.ResultBlackWins:
		return OutcomeLoss, OutcomeWin, nil
	case models.ResultDraw:
		return OutcomeDraw, OutcomeDraw, nil
	case models.ResultWhiteForfeit:
		return OutcomeForfeitLoss, OutcomeForfeitWin, nil
	case models.ResultBlackForfeit:
		return OutcomeForfeitWin, OutcomeForfeitLoss, nil
	case models.ResultDoubleForfeit:
		return OutcomeDoubleForfeit, OutcomeDoubleForfeit, nil
	case models.ResultWhiteWinsByRule:
		return OutcomeRuleWin, OutcomeRuleLoss, nil
	case models.ResultBlackWinsByRule:
		return OutcomeRuleLoss, OutcomeRuleWin, nil
	default:
		return OutcomeNone, OutcomeNone, fmt.Errorf("%w: %q", ErrInvalidResult, result)
	}
}

// OutcomeFor returns the outcome of the fixture for participantID.
func OutcomeFor(game models.Game, participantID int) (Outcome, error) {
	white, black, err := Outcomes(game.Result)
	if err != nil {
		return OutcomeNone, err
	}
	switch {
	case game.WhiteID != nil && *game.WhiteID == participantID:
		return white, nil
	case game.BlackID != nil && *game.BlackID == participantID:
		return black, nil
	}
	return OutcomeNone, fmt.Errorf("%w: participant %d, game %d", ErrNotOnBoard, participantID, game.ID)
}

func validateGames(games []models.Game, index map[int]models.Participant) error {
	for _, g := range games {
		if !g.Result.Valid() {
			return fmt.Errorf("%w: game %d has result %q", ErrInvalidResult, g.ID, g.Result)
		}
		for _, id := range []*int{g.WhiteID, g.BlackID} {
			if id == nil {
				continue
			}
			if _, ok := index[*id]; !ok {
				return fmt.Errorf("%w: game %d references participant %d", ErrUnknownParticipant, g.ID, *id)
			}
		}
	}
	return nil
}
