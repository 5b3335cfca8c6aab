// Package reports serializes a finished or running group into the DWZ and FIDE
// rating report formats. Column widths, header glyphs and field encodings are
// fixed by the federations' import tools and must not change.
package reports

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/standings"
)

var (
	ErrMissingMetadata = errors.New("report requires tournament metadata")
	ErrMissingStanding = errors.New("participant has no standing")
	ErrDateCollision   = errors.New("participant has two fixtures on the same date")
)

// Input is everything a serializer needs; callers load it beforehand.
type Input struct {
	Group        models.Group
	Participants []models.Participant
	Games        []models.Game
	Standings    []models.Standing
}

// Prepare ranks the group and returns a ready Input.
func Prepare(group models.Group, participants []models.Participant, games []models.Game) (Input, error) {
	table, err := standings.Ranked(games, participants, standings.Options{})
	if err != nil {
		return Input{}, err
	}
	return Input{Group: group, Participants: participants, Games: games, Standings: table}, nil
}

// ValidateMetadata fails when a field both formats print is missing.
func ValidateMetadata(group models.Group) error {
	var missing []string
	if strings.TrimSpace(group.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(group.Location) == "" {
		missing = append(missing, "location")
	}
	if group.StartDate.IsZero() {
		missing = append(missing, "start date")
	}
	if group.EndDate.IsZero() {
		missing = append(missing, "end date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingMetadata, strings.Join(missing, ", "))
	}
	return nil
}

// entry is one participant with everything the row builders need.
type entry struct {
	participant models.Participant
	standing    models.Standing
	games       []models.Game
}

type prepared struct {
	entries []entry
	seedOf  map[int]int
}

func prepare(in Input) (*prepared, error) {
	if err := ValidateMetadata(in.Group); err != nil {
		return nil, err
	}

	standingByID := make(map[int]models.Standing, len(in.Standings))
	for _, s := range in.Standings {
		standingByID[s.ParticipantID] = s
	}

	participants := slices.Clone(in.Participants)
	slices.SortFunc(participants, func(a, b models.Participant) int {
		return cmp.Compare(a.SeedPosition, b.SeedPosition)
	})

	p := &prepared{
		entries: make([]entry, 0, len(participants)),
		seedOf:  make(map[int]int, len(participants)),
	}
	position := make(map[int]int, len(participants))
	for i, participant := range participants {
		s, ok := standingByID[participant.ID]
		if !ok {
			return nil, fmt.Errorf("%w: participant %d", ErrMissingStanding, participant.ID)
		}
		p.seedOf[participant.ID] = participant.SeedPosition
		position[participant.ID] = i
		p.entries = append(p.entries, entry{participant: participant, standing: s})
	}

	for _, g := range in.Games {
		if g.IsBye() {
			continue
		}
		for _, id := range []int{*g.WhiteID, *g.BlackID} {
			i, ok := position[id]
			if !ok {
				return nil, fmt.Errorf("%w: game %d references participant %d", standings.ErrUnknownParticipant, g.ID, id)
			}
			p.entries[i].games = append(p.entries[i].games, g)
		}
	}
	return p, nil
}

// opponentCell describes one result cell before it is encoded.
type opponentCell struct {
	opponentSeed int
	white        bool
	outcome      standings.Outcome
}

func (p *prepared) cell(g models.Game, participantID int) (opponentCell, error) {
	outcome, err := standings.OutcomeFor(g, participantID)
	if err != nil {
		return opponentCell{}, err
	}
	opponentID, _ := g.Opponent(participantID)
	return opponentCell{
		opponentSeed: p.seedOf[opponentID],
		white:        *g.WhiteID == participantID,
		outcome:      outcome,
	}, nil
}

func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', 1, 64)
}

func formatBirthYear(year *int) string {
	if year == nil {
		return ""
	}
	return fmt.Sprintf("%04d/00/00", *year)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func plainName(p models.Participant) string {
	return strings.TrimSpace(p.LastName) + "," + strings.TrimSpace(p.FirstName)
}

func roundCount(in Input) int {
	rounds := in.Group.Rounds
	for _, g := range in.Games {
		rounds = max(rounds, g.Round)
	}
	return rounds
}

func joinLines(lines []string, terminator string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString(terminator)
	}
	return sb.String()
}
