package standings

import (
	"cmp"
	"slices"

	"github.com/Dosada05/chess-league/models"
)

type Options struct {
	// RoundCutoff limits the table to rounds 1..RoundCutoff; 0 takes every round.
	RoundCutoff int
}

// CalculateStandings ranks participants by points, then Sonneborn-Berger, then seed.
// Sonneborn-Berger needs every participant's final points, so it runs as a
// second pass over the same fixtures.
func CalculateStandings(games []models.Game, participants []models.Participant, opts Options) ([]models.Standing, error) {
	index := models.IndexParticipants(participants)
	if err := validateGames(games, index); err != nil {
		return nil, err
	}

	type scored struct {
		whiteID, blackID int
		white, black     Outcome
	}
	considered := make([]scored, 0, len(games))
	for _, g := range games {
		if g.IsBye() {
			continue
		}
		if opts.RoundCutoff > 0 && g.Round > opts.RoundCutoff {
			continue
		}
		white, black, err := Outcomes(g.Result)
		if err != nil {
			return nil, err
		}
		if !white.Counted() {
			continue
		}
		considered = append(considered, scored{whiteID: *g.WhiteID, blackID: *g.BlackID, white: white, black: black})
	}

	points := make(map[int]float64, len(participants))
	played := make(map[int]int, len(participants))
	for _, s := range considered {
		points[s.whiteID] += s.white.Points()
		points[s.blackID] += s.black.Points()
		played[s.whiteID]++
		played[s.blackID]++
	}

	sonnebornBerger := make(map[int]float64, len(participants))
	for _, s := range considered {
		sonnebornBerger[s.whiteID] += s.white.Points() * points[s.blackID]
		sonnebornBerger[s.blackID] += s.black.Points() * points[s.whiteID]
	}

	table := make([]models.Standing, 0, len(participants))
	for _, p := range participants {
		table = append(table, models.Standing{
			ParticipantID:   p.ID,
			SeedPosition:    p.SeedPosition,
			Points:          points[p.ID],
			SonnebornBerger: sonnebornBerger[p.ID],
			GamesPlayed:     played[p.ID],
		})
	}

	slices.SortStableFunc(table, compareStandings)
	for i := range table {
		table[i].Rank = i + 1
	}
	return table, nil
}

func compareStandings(a, b models.Standing) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.SonnebornBerger, a.SonnebornBerger); c != 0 {
		return c
	}
	return cmp.Compare(a.SeedPosition, b.SeedPosition)
}

// Ranked filters out irrelevant fixtures and ranks what remains.
func Ranked(games []models.Game, participants []models.Participant, opts Options) ([]models.Standing, error) {
	relevant, err := FilterRelevantGames(games, participants)
	if err != nil {
		return nil, err
	}
	return CalculateStandings(relevant, participants, opts)
}
