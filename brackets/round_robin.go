package brackets

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Dosada05/chess-league/models"
)

var (
	ErrTooFewPlayers  = errors.New("round robin needs at least 2 players")
	ErrOddPlayerCount = errors.New("round robin needs an even player count, pad with a bye first")
	ErrInvalidSeeds   = errors.New("seed positions must be exactly 1..N")
	ErrMissingGroup   = errors.New("group metadata is required for scheduling")
)

// Pairing holds the seed numbers of one board, white first.
type Pairing struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// GenerateSchedule builds n-1 rounds of n/2 boards with the circle method.
// Seed n is fixed; seeds 1..n-1 sit on the circle. Board 1 of every round is the
// fixed seed's game, the anchor is white in odd rounds and black in even rounds.
// Board k+1 pairs the seed k steps clockwise from the anchor (white) with the
// seed k steps counter-clockwise (black).
func GenerateSchedule(n int) ([][]Pairing, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, n)
	}
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddPlayerCount, n)
	}

	fixed := n
	circleSize := n - 1
	boards := n / 2

	circle := make([]int, circleSize)
	for i := range circle {
		circle[i] = i + 1
	}

	rounds := make([][]Pairing, 0, circleSize)
	for round := 1; round <= circleSize; round++ {
		anchor := ((round - 1) * boards) % circleSize

		pairings := make([]Pairing, 0, boards)
		if round%2 == 1 {
			pairings = append(pairings, Pairing{White: circle[anchor], Black: fixed})
		} else {
			pairings = append(pairings, Pairing{White: fixed, Black: circle[anchor]})
		}

		for k := 1; k < boards; k++ {
			clockwise := (anchor + k) % circleSize
			counterClockwise := (anchor - k + circleSize) % circleSize
			pairings = append(pairings, Pairing{White: circle[clockwise], Black: circle[counterClockwise]})
		}
		rounds = append(rounds, pairings)
	}
	return rounds, nil
}

// PadWithBye returns the even player count to schedule and the bye's seed
// (0 when no bye is needed).
func PadWithBye(n int) (padded int, byeSeed int) {
	if n%2 == 0 {
		return n, 0
	}
	return n + 1, n + 1
}

// DropByeBoards removes every board involving byeSeed and renumbers the rest.
func DropByeBoards(rounds [][]Pairing, byeSeed int) [][]Pairing {
	if byeSeed == 0 {
		return rounds
	}
	result := make([][]Pairing, len(rounds))
	for i, pairings := range rounds {
		kept := make([]Pairing, 0, len(pairings))
		for _, p := range pairings {
			if p.White == byeSeed || p.Black == byeSeed {
				continue
			}
			kept = append(kept, p)
		}
		result[i] = kept
	}
	return result
}

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() ScheduleGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateSchedule creates every fixture of a single round robin for a seeded roster.
// Odd rosters are padded with a bye whose boards are dropped; dates follow the
// group's weekly cadence.
func (g *RoundRobinGenerator) GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]*ScheduledGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params.Group == nil {
		return nil, ErrMissingGroup
	}

	participants := make([]*models.Participant, 0, len(params.Participants))
	for _, p := range params.Participants {
		if p != nil {
			participants = append(participants, p)
		}
	}
	if len(participants) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrTooFewPlayers, len(participants))
	}

	slices.SortFunc(participants, func(a, b *models.Participant) int {
		return cmp.Compare(a.SeedPosition, b.SeedPosition)
	})
	idBySeed := make(map[int]int, len(participants))
	for i, p := range participants {
		if p.SeedPosition != i+1 {
			return nil, fmt.Errorf("%w: participant %d has seed %d at position %d", ErrInvalidSeeds, p.ID, p.SeedPosition, i+1)
		}
		idBySeed[p.SeedPosition] = p.ID
	}

	padded, byeSeed := PadWithBye(len(participants))
	rounds, err := GenerateSchedule(padded)
	if err != nil {
		return nil, err
	}
	rounds = DropByeBoards(rounds, byeSeed)

	games := make([]*ScheduledGame, 0, len(participants)*(len(participants)-1)/2)
	for i, pairings := range rounds {
		round := i + 1
		date := RoundDate(params.Group.StartDate, params.Group.Weekday, round)
		for j, p := range pairings {
			games = append(games, &ScheduledGame{
				Round:   round,
				Board:   j + 1,
				WhiteID: idBySeed[p.White],
				BlackID: idBySeed[p.Black],
				Date:    date,
			})
		}
	}
	return games, nil
}
