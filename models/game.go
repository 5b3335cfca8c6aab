package models

import (
	"fmt"
	"time"
)

// GameResult is the stored result of a fixture.
type GameResult string

const (
	ResultUnplayed      GameResult = "unplayed"
	ResultWhiteWins     GameResult = "white_wins"
	ResultBlackWins     GameResult = "black_wins"
	ResultDraw          GameResult = "draw"
	ResultWhiteForfeit  GameResult = "white_forfeit" // white did not appear, black scores
	ResultBlackForfeit  GameResult = "black_forfeit" // black did not appear, white scores
	ResultDoubleForfeit GameResult = "double_forfeit"
	// Decided by a rule violation of the loser while the winner had no mating material.
	ResultWhiteWinsByRule GameResult = "white_wins_by_rule"
	ResultBlackWinsByRule GameResult = "black_wins_by_rule"
)

var gameResults = []GameResult{
	ResultUnplayed,
	ResultWhiteWins,
	ResultBlackWins,
	ResultDraw,
	ResultWhiteForfeit,
	ResultBlackForfeit,
	ResultDoubleForfeit,
	ResultWhiteWinsByRule,
	ResultBlackWinsByRule,
}

func (r GameResult) Valid() bool {
	for _, known := range gameResults {
		if r == known {
			return true
		}
	}
	return false
}

func ParseGameResult(s string) (GameResult, error) {
	r := GameResult(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown game result %q", s)
	}
	return r, nil
}

// Game is a single scheduled fixture of a group. WhiteID or BlackID is nil only
// for a synthetic bye.
type Game struct {
	ID            int        `json:"id" db:"id"`
	GroupID       int        `json:"group_id" db:"group_id"`
	Round         int        `json:"round" db:"round"`
	Board         int        `json:"board" db:"board"`
	WhiteID       *int       `json:"white_id,omitempty" db:"white_id"`
	BlackID       *int       `json:"black_id,omitempty" db:"black_id"`
	Result        GameResult `json:"result" db:"result"`
	ScheduledDate time.Time  `json:"scheduled_date" db:"scheduled_date"`
}

// IsBye reports whether one side of the fixture is absent.
func (g Game) IsBye() bool {
	return g.WhiteID == nil || g.BlackID == nil
}

// Involves reports whether the participant sits on either side of the board.
func (g Game) Involves(participantID int) bool {
	return (g.WhiteID != nil && *g.WhiteID == participantID) ||
		(g.BlackID != nil && *g.BlackID == participantID)
}

// Opponent returns the other side of the board for participantID.
func (g Game) Opponent(participantID int) (int, bool) {
	switch {
	case g.WhiteID != nil && *g.WhiteID == participantID && g.BlackID != nil:
		return *g.BlackID, true
	case g.BlackID != nil && *g.BlackID == participantID && g.WhiteID != nil:
		return *g.WhiteID, true
	}
	return 0, false
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
