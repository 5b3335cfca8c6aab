package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/chess-league/brackets"
	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/realtime"
)

func newScheduleService(store *memoryStore, b Broadcaster) ScheduleService {
	return NewScheduleService(
		fakeTransactor{store},
		fakeGroupRepo{store},
		fakeParticipantRepo{store},
		fakeGameRepo{store},
		brackets.NewRoundRobinGenerator(),
		b,
		discardLogger(),
	)
}

func TestScheduleService_Generate(t *testing.T) {
	store := newMemoryStore()
	group, _ := seedGroup(store, "A", "B", "C", "D", "E")
	b := &recordingBroadcaster{}
	svc := newScheduleService(store, b)

	games, err := svc.Generate(context.Background(), group.ID)
	require.NoError(t, err)

	// five players: bye boards are dropped, so 10 real games over 5 rounds
	require.Len(t, games, 10)
	pairs := make(map[[2]int]bool)
	for _, g := range games {
		require.False(t, g.IsBye())
		assert.Equal(t, models.ResultUnplayed, g.Result)
		assert.Equal(t, brackets.RoundDate(group.StartDate, group.Weekday, g.Round), g.ScheduledDate)
		a, c := *g.WhiteID, *g.BlackID
		if a > c {
			a, c = c, a
		}
		assert.False(t, pairs[[2]int{a, c}], "pair %d-%d scheduled twice", a, c)
		pairs[[2]int{a, c}] = true
	}
	assert.Equal(t, day(time.January, 5), games[0].ScheduledDate)

	assert.Equal(t, []string{realtime.MessageScheduleGenerated}, b.types())
	assert.Equal(t, []string{realtime.GroupRoom(group.ID)}, b.rooms)

	t.Run("regenerating replaces unplayed fixtures", func(t *testing.T) {
		again, err := svc.Generate(context.Background(), group.ID)
		require.NoError(t, err)
		assert.Len(t, again, 10)
		stored, err := svc.Fixtures(context.Background(), group.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 10)
	})
}

func TestScheduleService_GenerateLockedOnceResultsExist(t *testing.T) {
	store := newMemoryStore()
	group, _ := seedGroup(store, "A", "B", "C", "D")
	svc := newScheduleService(store, nil)

	games, err := svc.Generate(context.Background(), group.ID)
	require.NoError(t, err)
	require.NoError(t, fakeGameRepo{store}.UpdateResult(context.Background(), games[0].ID, models.ResultDraw))

	_, err = svc.Generate(context.Background(), group.ID)
	require.ErrorIs(t, err, ErrScheduleLocked)
}

func TestScheduleService_GenerateErrors(t *testing.T) {
	t.Run("unknown group", func(t *testing.T) {
		svc := newScheduleService(newMemoryStore(), nil)
		_, err := svc.Generate(context.Background(), 42)
		require.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("single player", func(t *testing.T) {
		store := newMemoryStore()
		group, _ := seedGroup(store, "Alone")
		_, err := newScheduleService(store, nil).Generate(context.Background(), group.ID)
		require.ErrorIs(t, err, ErrRosterInvalid)
		require.ErrorIs(t, err, brackets.ErrTooFewPlayers)
	})

	t.Run("seed gap", func(t *testing.T) {
		store := newMemoryStore()
		group, _ := seedGroup(store, "A", "B")
		gap := models.Participant{GroupID: group.ID, SeedPosition: 5, LastName: "Gap"}
		require.NoError(t, fakeParticipantRepo{store}.Create(context.Background(), &gap))

		_, err := newScheduleService(store, nil).Generate(context.Background(), group.ID)
		require.ErrorIs(t, err, ErrRosterInvalid)
	})

	t.Run("no start date", func(t *testing.T) {
		store := newMemoryStore()
		group, _ := seedGroup(store, "A", "B")
		g := store.groups[group.ID]
		g.StartDate = time.Time{}
		store.groups[group.ID] = g

		_, err := newScheduleService(store, nil).Generate(context.Background(), group.ID)
		require.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("failed insert keeps the previous fixtures", func(t *testing.T) {
		store := newMemoryStore()
		group, _ := seedGroup(store, "A", "B", "C", "D")
		b := &recordingBroadcaster{}
		svc := newScheduleService(store, b)
		before, err := svc.Generate(context.Background(), group.ID)
		require.NoError(t, err)

		store.failInsert = errors.New("connection reset")
		_, err = svc.Generate(context.Background(), group.ID)
		require.Error(t, err)

		after, err := svc.Fixtures(context.Background(), group.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.Len(t, b.messages, 1)
	})
}

func TestScheduleService_FixturesUnknownGroup(t *testing.T) {
	_, err := newScheduleService(newMemoryStore(), nil).Fixtures(context.Background(), 7)
	require.ErrorIs(t, err, ErrGroupNotFound)
}
