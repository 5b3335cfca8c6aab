package reports

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/chess-league/standings"
)

const CrosstableSheet = "Crosstable"

// Crosstable renders an XLSX workbook with one row and one column per seed.
func Crosstable(in Input) ([]byte, error) {
	p, err := prepare(in)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CrosstableSheet); err != nil {
		return nil, fmt.Errorf("rename crosstable sheet: %w", err)
	}

	n := len(p.entries)
	header := []any{"Nr.", "Name"}
	for _, e := range p.entries {
		header = append(header, e.participant.SeedPosition)
	}
	header = append(header, "Pts", "SB", "Rank")
	if err := f.SetSheetRow(CrosstableSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write crosstable header: %w", err)
	}

	column := make(map[int]int, n)
	for i, e := range p.entries {
		column[e.participant.SeedPosition] = i
	}

	for i, e := range p.entries {
		cells := make([]string, n)
		cells[i] = "X"
		for _, g := range e.games {
			c, err := p.cell(g, e.participant.ID)
			if err != nil {
				return nil, err
			}
			j := column[c.opponentSeed]
			if mark := crosstableMark(c.outcome); mark != "" {
				if cells[j] == "" {
					cells[j] = mark
				} else {
					cells[j] = strings.Join([]string{cells[j], mark}, " ")
				}
			}
		}

		row := []any{e.participant.SeedPosition, plainName(e.participant)}
		for _, cell := range cells {
			row = append(row, cell)
		}
		row = append(row, e.standing.Points, e.standing.SonnebornBerger, e.standing.Rank)

		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(CrosstableSheet, start, &row); err != nil {
			return nil, fmt.Errorf("write crosstable row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode crosstable: %w", err)
	}
	return buf.Bytes(), nil
}

func crosstableMark(o standings.Outcome) string {
	switch o {
	case standings.OutcomeWin, standings.OutcomeRuleWin:
		return "1"
	case standings.OutcomeLoss, standings.OutcomeRuleLoss:
		return "0"
	case standings.OutcomeDraw:
		return "½"
	case standings.OutcomeForfeitWin:
		return "+"
	case standings.OutcomeForfeitLoss, standings.OutcomeDoubleForfeit:
		return "-"
	case standings.OutcomeNone:
		return ""
	}
	return ""
}
