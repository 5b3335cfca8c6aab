package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/chess-league/models"
)

func ptr(v int) *int { return &v }

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func left(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

func blank(width int) string {
	return strings.Repeat(" ", width)
}

func fixtureGroup() models.Group {
	return models.Group{
		ID:          1,
		Name:        "Vereinsmeisterschaft 2024",
		Location:    "Musterstadt",
		Federation:  "GER",
		StartDate:   day(time.January, 5),
		EndDate:     day(time.January, 19),
		Rounds:      3,
		Arbiter:     "Hans Meier",
		TimeControl: "90min/40 + 30min + 30s",
		Weekday:     time.Friday,
	}
}

func fixtureParticipants() []models.Participant {
	return []models.Participant{
		{
			ID: 13, GroupID: 1, SeedPosition: 3,
			FirstName: "Anna", LastName: "Løvås", Club: "Oslo SK", Federation: "NOR",
			Sex: models.SexFemale, State: models.WithdrawnAt(day(time.January, 15)),
		},
		{
			ID: 11, GroupID: 1, SeedPosition: 1,
			FirstName: "Max", LastName: "Weiß", Club: "SK Musterstadt", Federation: "GER",
			FideID: ptr(4611111), FideRating: ptr(2105), NationalRating: ptr(2050), BirthYear: ptr(1985),
			Sex: models.SexMale, Title: "FM",
		},
		{
			ID: 12, GroupID: 1, SeedPosition: 2,
			FirstName: "José", LastName: "García", Club: "Club Ajedrez Sol", Federation: "ESP",
			FideID: ptr(2222222), FideRating: ptr(1950), BirthYear: ptr(2001),
			Sex: models.SexMale,
		},
	}
}

func fixtureGame(id, round, white, black int, result models.GameResult, date time.Time) models.Game {
	return models.Game{
		ID: id, GroupID: 1, Round: round, Board: 1,
		WhiteID: ptr(white), BlackID: ptr(black),
		Result: result, ScheduledDate: date,
	}
}

// Three players, one fixture per round; the withdrawn player keeps exactly half
// of her games and stays in the table.
func fixtureGames() []models.Game {
	return []models.Game{
		fixtureGame(1, 1, 12, 13, models.ResultDraw, day(time.January, 5)),
		fixtureGame(2, 2, 11, 12, models.ResultWhiteWins, day(time.January, 12)),
		fixtureGame(3, 3, 13, 11, models.ResultWhiteForfeit, day(time.January, 19)),
	}
}

func fixtureInput(t *testing.T) Input {
	t.Helper()
	in, err := Prepare(fixtureGroup(), fixtureParticipants(), fixtureGames())
	require.NoError(t, err)
	return in
}

func TestPrepare_RanksFixture(t *testing.T) {
	in := fixtureInput(t)

	require.Len(t, in.Standings, 3)
	assert.Equal(t, 11, in.Standings[0].ParticipantID)
	assert.Equal(t, 2.0, in.Standings[0].Points)
	assert.Equal(t, 1.0, in.Standings[0].SonnebornBerger)
	assert.Equal(t, 12, in.Standings[1].ParticipantID)
	assert.Equal(t, 0.25, in.Standings[1].SonnebornBerger)
	assert.Equal(t, 13, in.Standings[2].ParticipantID)
}

func TestFIDE_Golden(t *testing.T) {
	row := func(fields ...string) string { return strings.Join(fields, " ") }

	want := strings.Join([]string{
		"012 Vereinsmeisterschaft 2024",
		"022 Musterstadt",
		"032 GER",
		"042 2024/01/05",
		"052 2024/01/19",
		"062 3",
		"072 2",
		"092 Round robin",
		"102 Hans Meier",
		"122 90min/40 + 30min + 30s",
		row("DDD", "SSSS", "sTTT", strings.Repeat("N", 33), "RRRR", "FFF", "IIIIIIIIIII", "BBBB/BB/BB", "PPPP", "RRRR",
			" 1111 1 1", " 2222 2 2", " 3333 3 3"),
		"132" + blank(88) + "24/01/05  24/01/12  24/01/19",
		row("001", "   1", "m FM", left("Weiss,Max", 33), "2105", "GER", "    4611111", "1985/00/00", " 2.0", "   1",
			blank(9), "    2 w 1", "    3 b +"),
		row("001", "   2", "m   ", left("Garcia,Jose", 33), "1950", "ESP", "    2222222", "2001/00/00", " 0.5", "   2",
			"    3 w =", "    1 b 0", blank(9)),
		row("001", "   3", "w   ", left("Lovas,Anna", 33), blank(4), "NOR", blank(11), blank(10), " 0.5", "   3",
			"    2 b =", blank(9), "    1 w -"),
	}, "\n") + "\n"

	got, err := FIDE(fixtureInput(t))
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FIDE report mismatch (-want +got):\n%s", diff)
	}
}

func TestDWZ_Golden(t *testing.T) {
	row := func(fields ...string) string { return strings.Join(fields, " ") }

	want := strings.Join([]string{
		" ###",
		"Name:       Vereinsmeisterschaft 2024",
		"Ort:        Musterstadt",
		"FIDE-Land:  GER",
		"Datum(S):   05.01.2024  Datum(E):   19.01.2024",
		"Zeilen:     3           Spalten:    3",
		"Modus:      Rundenturnier",
		"Bedenkzeit: 90min/40 + 30min + 30s",
		" ###",
		row("Nr.", " "+left("Teilnehmer", 32), left("Verein/Ort", 32), "Land", " Elo", " DWZ", "Geburt    ",
			"   FIDE-ID", "Pkt.", "  SoBe", "Pl.", " 1.Rd", " 2.Rd", " 3.Rd"),
		row("  1", " "+left("Weiß,Max", 32), left("SK Musterstadt", 32), "GER ", "2105", "2050", "1985/00/00",
			"   4611111", " 2.0", "  1.00", "  1", blank(5), "  2W1", "  3S+"),
		row("  2", " "+left("García,José", 32), left("Club Ajedrez Sol", 32), "ESP ", "1950", blank(4), "2001/00/00",
			"   2222222", " 0.5", "  0.25", "  2", "  3WR", "  1S0", blank(5)),
		row("  3", "*"+left("Løvås,Anna", 32), left("Oslo SK", 32), "NOR ", blank(4), blank(4), blank(10),
			blank(10), " 0.5", "  0.25", "  3", "  2SR", blank(5), "  1W-"),
		" ###",
	}, "\r\n") + "\r\n"

	got, err := DWZ(fixtureInput(t))
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DWZ report mismatch (-want +got):\n%s", diff)
	}
}

func TestReports_MissingMetadata(t *testing.T) {
	in := fixtureInput(t)
	in.Group.Location = "  "
	in.Group.EndDate = time.Time{}

	_, err := DWZ(in)
	require.ErrorIs(t, err, ErrMissingMetadata)
	assert.Contains(t, err.Error(), "location")
	assert.Contains(t, err.Error(), "end date")

	_, err = FIDE(in)
	require.ErrorIs(t, err, ErrMissingMetadata)

	_, err = Crosstable(in)
	require.ErrorIs(t, err, ErrMissingMetadata)
}

func TestFIDE_DateCollision(t *testing.T) {
	games := fixtureGames()
	games[1].ScheduledDate = games[0].ScheduledDate.Add(3 * time.Hour)

	in, err := Prepare(fixtureGroup(), fixtureParticipants(), games)
	require.NoError(t, err)

	_, err = FIDE(in)
	require.ErrorIs(t, err, ErrDateCollision)
}

func TestReports_ResultCodes(t *testing.T) {
	tests := []struct {
		result       models.GameResult
		dwzW, dwzB   string
		fideW, fideB string
	}{
		{result: models.ResultWhiteWins, dwzW: "  2W1", dwzB: "  1S0", fideW: "    2 w 1", fideB: "    1 b 0"},
		{result: models.ResultBlackWins, dwzW: "  2W0", dwzB: "  1S1", fideW: "    2 w 0", fideB: "    1 b 1"},
		{result: models.ResultDraw, dwzW: "  2WR", dwzB: "  1SR", fideW: "    2 w =", fideB: "    1 b ="},
		{result: models.ResultWhiteForfeit, dwzW: "  2W-", dwzB: "  1S+", fideW: "    2 w -", fideB: "    1 b +"},
		{result: models.ResultBlackForfeit, dwzW: "  2W+", dwzB: "  1S-", fideW: "    2 w +", fideB: "    1 b -"},
		{result: models.ResultDoubleForfeit, dwzW: "  2W-", dwzB: "  1S-", fideW: "    2 w -", fideB: "    1 b -"},
		{result: models.ResultWhiteWinsByRule, dwzW: "  2WW", dwzB: "  1SL", fideW: "    2 w W", fideB: "    1 b L"},
		{result: models.ResultBlackWinsByRule, dwzW: "  2WL", dwzB: "  1SW", fideW: "    2 w L", fideB: "    1 b W"},
		{result: models.ResultUnplayed},
	}
	for _, tt := range tests {
		t.Run(string(tt.result), func(t *testing.T) {
			participants := []models.Participant{
				{ID: 1, SeedPosition: 1, FirstName: "A", LastName: "One"},
				{ID: 2, SeedPosition: 2, FirstName: "B", LastName: "Two"},
			}
			games := []models.Game{fixtureGame(1, 1, 1, 2, tt.result, day(time.January, 5))}
			group := fixtureGroup()
			group.Rounds = 1
			in, err := Prepare(group, participants, games)
			require.NoError(t, err)

			dwz, err := DWZ(in)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSuffix(dwz, "\r\n"), "\r\n")
			assert.True(t, strings.HasSuffix(lines[len(lines)-3], " "+pad5(tt.dwzW)), lines[len(lines)-3])
			assert.True(t, strings.HasSuffix(lines[len(lines)-2], " "+pad5(tt.dwzB)), lines[len(lines)-2])

			fide, err := FIDE(in)
			require.NoError(t, err)
			lines = strings.Split(strings.TrimSuffix(fide, "\n"), "\n")
			assert.True(t, strings.HasSuffix(lines[len(lines)-2], " "+pad9(tt.fideW)), lines[len(lines)-2])
			assert.True(t, strings.HasSuffix(lines[len(lines)-1], " "+pad9(tt.fideB)), lines[len(lines)-1])
		})
	}
}

func pad5(s string) string {
	if s == "" {
		return blank(5)
	}
	return s
}

func pad9(s string) string {
	if s == "" {
		return blank(9)
	}
	return s
}

func TestReports_UnknownParticipant(t *testing.T) {
	games := append(fixtureGames(), fixtureGame(4, 3, 12, 99, models.ResultDraw, day(time.January, 19)))
	in := fixtureInput(t)
	in.Games = games

	_, err := DWZ(in)
	require.Error(t, err)
}

func TestReports_MissingStanding(t *testing.T) {
	in := fixtureInput(t)
	in.Standings = in.Standings[:2]

	_, err := FIDE(in)
	require.ErrorIs(t, err, ErrMissingStanding)
}

func TestDWZ_RoundsWithoutFixtureAreBlank(t *testing.T) {
	in := fixtureInput(t)
	in.Group.Rounds = 4

	got, err := DWZ(in)
	require.NoError(t, err)
	assert.Contains(t, got, "Spalten:    4")
	assert.Contains(t, got, " 4.Rd\r\n")
	for _, line := range strings.Split(got, "\r\n") {
		if strings.HasPrefix(line, "  1 ") {
			assert.True(t, strings.HasSuffix(line, "  3S+ "+blank(5)), line)
		}
	}
}

func TestCrosstable(t *testing.T) {
	data, err := Crosstable(fixtureInput(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(CrosstableSheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Nr.", cell("A1"))
	assert.Equal(t, "1", cell("C1"))
	assert.Equal(t, "Rank", cell("H1"))

	assert.Equal(t, "Weiß,Max", cell("B2"))
	assert.Equal(t, "X", cell("C2"))
	assert.Equal(t, "1", cell("D2"))
	assert.Equal(t, "+", cell("E2"))
	assert.Equal(t, "1", cell("H2"))

	assert.Equal(t, "0", cell("C3"))
	assert.Equal(t, "½", cell("E3"))
	assert.Equal(t, "-", cell("C4"))
	assert.Equal(t, "3", cell("H4"))
}
