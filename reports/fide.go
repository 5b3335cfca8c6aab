package reports

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/standings"
	"github.com/Dosada05/chess-league/table"
	"github.com/Dosada05/chess-league/translit"
)

const (
	fideTerminator     = "\n"
	fideDateLayout     = "2006/01/02"
	fideRoundDateShort = "06/01/02"
	fideDateKey        = "2006-01-02"
	fideTournamentType = "Round robin"
	fidePlayerRecord   = "001"
	fideDatesRecord    = "132"
)

type fideField int

const (
	fideRecord fideField = iota
	fideStartRank
	fideSex
	fideTitle
	fideName
	fideRating
	fideFederation
	fideID
	fideBirth
	fidePoints
	fideRank
	fideDate
)

// fideColumn identifies a column; date is the ISO day of a fideDate column.
type fideColumn struct {
	field fideField
	date  string
}

type fideRow struct {
	record     string
	startRank  int
	sex        models.Sex
	title      string
	name       string
	rating     *int
	federation string
	fideID     *int
	birthYear  *int
	points     string
	rank       int
	dates      map[string]string
}

func (r fideRow) Cell(c fideColumn) string {
	switch c.field {
	case fideRecord:
		return r.record
	case fideStartRank:
		return optionalPositive(r.startRank)
	case fideSex:
		return string(r.sex)
	case fideTitle:
		return r.title
	case fideName:
		return r.name
	case fideRating:
		return formatOptionalInt(r.rating)
	case fideFederation:
		return r.federation
	case fideID:
		return formatOptionalInt(r.fideID)
	case fideBirth:
		return formatBirthYear(r.birthYear)
	case fidePoints:
		return r.points
	case fideRank:
		return optionalPositive(r.rank)
	case fideDate:
		return r.dates[c.date]
	}
	return ""
}

func optionalPositive(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func fideColumns(dates []string) []table.Column[fideColumn] {
	cols := []table.Column[fideColumn]{
		{ID: fideColumn{field: fideRecord}, Header: "DDD", Width: 3},
		{ID: fideColumn{field: fideStartRank}, Header: "SSSS", Width: 4, Align: table.AlignRight},
		{ID: fideColumn{field: fideSex}, Header: "s", Width: 1},
		{ID: fideColumn{field: fideTitle}, Header: "TTT", Width: 3, Align: table.AlignRight, CollapseBorder: true},
		{ID: fideColumn{field: fideName}, Header: "NNNNNNNNNNNNNNNNNNNNNNNNNNNNNNNNN", Width: 33},
		{ID: fideColumn{field: fideRating}, Header: "RRRR", Width: 4, Align: table.AlignRight},
		{ID: fideColumn{field: fideFederation}, Header: "FFF", Width: 3},
		{ID: fideColumn{field: fideID}, Header: "IIIIIIIIIII", Width: 11, Align: table.AlignRight},
		{ID: fideColumn{field: fideBirth}, Header: "BBBB/BB/BB", Width: 10},
		{ID: fideColumn{field: fidePoints}, Header: "PPPP", Width: 4, Align: table.AlignRight},
		{ID: fideColumn{field: fideRank}, Header: "RRRR", Width: 4, Align: table.AlignRight},
	}
	for i, date := range dates {
		digit := strconv.Itoa((i + 1) % 10)
		cols = append(cols, table.Column[fideColumn]{
			ID:     fideColumn{field: fideDate, date: date},
			Header: fmt.Sprintf("%5s %s %s", digit+digit+digit+digit, digit, digit),
			Width:  9,
			Align:  table.AlignRight,
		})
	}
	return cols
}

// FIDE renders the international rating report with LF line endings. Result
// columns are keyed by scheduled date, so a participant may hold only one
// fixture per day.
func FIDE(in Input) (string, error) {
	p, err := prepare(in)
	if err != nil {
		return "", err
	}

	dates := scheduledDates(in.Games)
	tbl, err := table.New(fideColumns(dates)...)
	if err != nil {
		return "", err
	}

	datesRow := fideRow{record: fideDatesRecord, dates: make(map[string]string, len(dates))}
	for _, date := range dates {
		day, err := time.Parse(fideDateKey, date)
		if err != nil {
			return "", err
		}
		datesRow.dates[date] = day.Format(fideRoundDateShort)
	}
	tbl.AddRow(datesRow)

	rated := 0
	for _, e := range p.entries {
		if e.participant.FideRating != nil {
			rated++
		}
		row := fideRow{
			record:     fidePlayerRecord,
			startRank:  e.participant.SeedPosition,
			sex:        e.participant.Sex,
			title:      e.participant.Title,
			name:       translit.FederationName(e.participant.FirstName, e.participant.LastName),
			rating:     e.participant.FideRating,
			federation: e.participant.Federation,
			fideID:     e.participant.FideID,
			birthYear:  e.participant.BirthYear,
			points:     formatPoints(e.standing.Points),
			rank:       e.standing.Rank,
			dates:      make(map[string]string, len(e.games)),
		}

		for _, g := range e.games {
			key := models.DateOnly(g.ScheduledDate).Format(fideDateKey)
			if _, taken := row.dates[key]; taken {
				return "", fmt.Errorf("%w: participant %d on %s", ErrDateCollision, e.participant.ID, key)
			}
			c, err := p.cell(g, e.participant.ID)
			if err != nil {
				return "", err
			}
			row.dates[key] = fideCell(c)
		}
		tbl.AddRow(row)
	}

	lines := []string{
		fideRecordLine("012", translit.ASCII(in.Group.Name)),
		fideRecordLine("022", translit.ASCII(in.Group.Location)),
		fideRecordLine("032", in.Group.Federation),
		fideRecordLine("042", in.Group.StartDate.Format(fideDateLayout)),
		fideRecordLine("052", in.Group.EndDate.Format(fideDateLayout)),
		fideRecordLine("062", strconv.Itoa(len(p.entries))),
		fideRecordLine("072", strconv.Itoa(rated)),
		fideRecordLine("092", fideTournamentType),
		fideRecordLine("102", translit.ASCII(in.Group.Arbiter)),
		fideRecordLine("122", translit.ASCII(in.Group.TimeControl)),
		tbl.RenderHeader(),
	}
	lines = append(lines, tbl.RenderBody()...)

	return joinLines(lines, fideTerminator), nil
}

func fideRecordLine(code, value string) string {
	return code + " " + value
}

// scheduledDates lists every distinct fixture day in ISO order.
func scheduledDates(games []models.Game) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, g := range games {
		if g.IsBye() {
			continue
		}
		key := models.DateOnly(g.ScheduledDate).Format(fideDateKey)
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, key)
	}
	slices.Sort(dates)
	return dates
}

func fideCell(c opponentCell) string {
	code := fideCode(c.outcome)
	if code == "" {
		return ""
	}
	color := "b"
	if c.white {
		color = "w"
	}
	return fmt.Sprintf("%5s %s %s", strconv.Itoa(c.opponentSeed), color, code)
}

func fideCode(o standings.Outcome) string {
	switch o {
	case standings.OutcomeWin:
		return "1"
	case standings.OutcomeLoss:
		return "0"
	case standings.OutcomeDraw:
		return "="
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
