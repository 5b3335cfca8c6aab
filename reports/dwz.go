package reports

import (
	"fmt"
	"strconv"

	"github.com/Dosada05/chess-league/standings"
	"github.com/Dosada05/chess-league/table"
)

const (
	dwzTerminator = "\r\n"
	dwzSeparator  = " ###"
	dwzDateLayout = "02.01.2006"
)

type dwzField int

const (
	dwzNumber dwzField = iota
	dwzWithdrawn
	dwzName
	dwzClub
	dwzFederation
	dwzFideRating
	dwzNationalRating
	dwzBirth
	dwzFideID
	dwzPoints
	dwzSonnebornBerger
	dwzRank
	dwzRound
)

// dwzColumn identifies a column; round is set only for dwzRound columns.
type dwzColumn struct {
	field dwzField
	round int
}

type dwzRow struct {
	number          int
	withdrawn       bool
	name            string
	club            string
	federation      string
	fideRating      *int
	nationalRating  *int
	birthYear       *int
	fideID          *int
	points          float64
	sonnebornBerger float64
	rank            int
	rounds          map[int]string
}

func (r dwzRow) Cell(c dwzColumn) string {
	switch c.field {
	case dwzNumber:
		return strconv.Itoa(r.number)
	case dwzWithdrawn:
		if r.withdrawn {
			return "*"
		}
		return ""
	case dwzName:
		return r.name
	case dwzClub:
		return r.club
	case dwzFederation:
		return r.federation
	case dwzFideRating:
		return formatOptionalInt(r.fideRating)
	case dwzNationalRating:
		return formatOptionalInt(r.nationalRating)
	case dwzBirth:
		return formatBirthYear(r.birthYear)
	case dwzFideID:
		return formatOptionalInt(r.fideID)
	case dwzPoints:
		return formatPoints(r.points)
	case dwzSonnebornBerger:
		return strconv.FormatFloat(r.sonnebornBerger, 'f', 2, 64)
	case dwzRank:
		return strconv.Itoa(r.rank)
	case dwzRound:
		return r.rounds[c.round]
	}
	return ""
}

func dwzColumns(rounds int) []table.Column[dwzColumn] {
	cols := []table.Column[dwzColumn]{
		{ID: dwzColumn{field: dwzNumber}, Header: "Nr.", Width: 3, Align: table.AlignRight},
		{ID: dwzColumn{field: dwzWithdrawn}, Width: 1},
		{ID: dwzColumn{field: dwzName}, Header: "Teilnehmer", Width: 32, CollapseBorder: true},
		{ID: dwzColumn{field: dwzClub}, Header: "Verein/Ort", Width: 32},
		{ID: dwzColumn{field: dwzFederation}, Header: "Land", Width: 4},
		{ID: dwzColumn{field: dwzFideRating}, Header: "Elo", Width: 4, Align: table.AlignRight},
		{ID: dwzColumn{field: dwzNationalRating}, Header: "DWZ", Width: 4, Align: table.AlignRight},
		{ID: dwzColumn{field: dwzBirth}, Header: "Geburt", Width: 10},
		{ID: dwzColumn{field: dwzFideID}, Header: "FIDE-ID", Width: 10, Align: table.AlignRight},
		{ID: dwzColumn{field: dwzPoints}, Header: "Pkt.", Width: 4, Align: table.AlignRight},
		{ID: dwzColumn{field: dwzSonnebornBerger}, Header: "SoBe", Width: 6, Align: table.AlignRight},
		{ID: dwzColumn{field: dwzRank}, Header: "Pl.", Width: 3, Align: table.AlignRight},
	}
	for r := 1; r <= rounds; r++ {
		cols = append(cols, table.Column[dwzColumn]{
			ID:     dwzColumn{field: dwzRound, round: r},
			Header: fmt.Sprintf("%d.Rd", r),
			Width:  5,
			Align:  table.AlignRight,
		})
	}
	return cols
}

// DWZ renders the national rating report with CRLF line endings.
func DWZ(in Input) (string, error) {
	p, err := prepare(in)
	if err != nil {
		return "", err
	}
	rounds := roundCount(in)

	tbl, err := table.New(dwzColumns(rounds)...)
	if err != nil {
		return "", err
	}

	for _, e := range p.entries {
		row := dwzRow{
			number:          e.participant.SeedPosition,
			name:            plainName(e.participant),
			club:            e.participant.Club,
			federation:      e.participant.Federation,
			fideRating:      e.participant.FideRating,
			nationalRating:  e.participant.NationalRating,
			birthYear:       e.participant.BirthYear,
			fideID:          e.participant.FideID,
			points:          e.standing.Points,
			sonnebornBerger: e.standing.SonnebornBerger,
			rank:            e.standing.Rank,
			rounds:          make(map[int]string, len(e.games)),
		}
		_, row.withdrawn = e.participant.State.Withdrawn()

		for _, g := range e.games {
			c, err := p.cell(g, e.participant.ID)
			if err != nil {
				return "", err
			}
			row.rounds[g.Round] = dwzCell(c)
		}
		tbl.AddRow(row)
	}

	lines := []string{
		dwzSeparator,
		dwzMeta("Name:", in.Group.Name),
		dwzMeta("Ort:", in.Group.Location),
		dwzMeta("FIDE-Land:", in.Group.Federation),
		fmt.Sprintf("%-12s%-12s%-12s%s",
			"Datum(S):", in.Group.StartDate.Format(dwzDateLayout),
			"Datum(E):", in.Group.EndDate.Format(dwzDateLayout)),
		fmt.Sprintf("%-12s%-12d%-12s%d", "Zeilen:", len(p.entries), "Spalten:", rounds),
		dwzMeta("Modus:", "Rundenturnier"),
		dwzMeta("Bedenkzeit:", in.Group.TimeControl),
		dwzSeparator,
		tbl.RenderHeader(),
	}
	lines = append(lines, tbl.RenderBody()...)
	lines = append(lines, dwzSeparator)

	return joinLines(lines, dwzTerminator), nil
}

func dwzMeta(label, value string) string {
	return fmt.Sprintf("%-12s%s", label, value)
}

func dwzCell(c opponentCell) string {
	code := dwzCode(c.outcome)
	if code == "" {
		return ""
	}
	color := "S"
	if c.white {
		color = "W"
	}
	return fmt.Sprintf("%3d%s%s", c.opponentSeed, color, code)
}

func dwzCode(o standings.Outcome) string {
	switch o {
	case standings.OutcomeWin:
		return "1"
	case standings.OutcomeLoss:
		return "0"
	case standings.OutcomeDraw:
		return "R"
	case standings.OutcomeForfeitWin:
		return "+"
	case standings.OutcomeForfeitLoss, standings.OutcomeDoubleForfeit:
		return "-"
	case standings.OutcomeRuleWin:
		return "W"
	case standings.OutcomeRuleLoss:
		return "L"
	case standings.OutcomeNone:
		return ""
	}
	return ""
}
