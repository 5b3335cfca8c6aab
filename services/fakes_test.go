package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/repositories"
	"github.com/Dosada05/chess-league/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v int) *int { return &v }

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

// memoryStore backs all three fake repositories.
type memoryStore struct {
	mu           sync.Mutex
	groups       map[int]models.Group
	participants map[int]models.Participant
	games        map[int]models.Game
	nextID       int
	failInsert   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		groups:       make(map[int]models.Group),
		participants: make(map[int]models.Participant),
		games:        make(map[int]models.Game),
		nextID:       1000,
	}
}

func (m *memoryStore) id() int {
	m.nextID++
	return m.nextID
}

type fakeGroupRepo struct{ *memoryStore }

func (r fakeGroupRepo) GetByID(_ context.Context, id int) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, repositories.ErrGroupNotFound
	}
	return &g, nil
}

func (r fakeGroupRepo) Create(_ context.Context, g *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.ID = r.id()
	r.groups[g.ID] = *g
	return nil
}

type fakeParticipantRepo struct{ *memoryStore }

func (r fakeParticipantRepo) Create(_ context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[p.GroupID]; !ok {
		return repositories.ErrParticipantGroupInvalid
	}
	for _, other := range r.participants {
		if other.GroupID == p.GroupID && other.SeedPosition == p.SeedPosition {
			return repositories.ErrParticipantSeedConflict
		}
	}
	p.ID = r.id()
	r.participants[p.ID] = *p
	return nil
}

func (r fakeParticipantRepo) GetByID(_ context.Context, id int) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, repositories.ErrParticipantNotFound
	}
	return &p, nil
}

func (r fakeParticipantRepo) ListByGroup(_ context.Context, groupID int) ([]models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Participant
	for _, p := range r.participants {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Participant) int { return a.SeedPosition - b.SeedPosition })
	return out, nil
}

func (r fakeParticipantRepo) SetWithdrawal(_ context.Context, id int, at *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	p.State = models.StateFromTimestamp(at)
	r.participants[id] = p
	return nil
}

type fakeGameRepo struct{ *memoryStore }

func (r fakeGameRepo) GetByID(_ context.Context, id int) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	return &g, nil
}

func (r fakeGameRepo) ListByGroup(_ context.Context, groupID int) ([]models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Game, 0)
	for _, g := range r.games {
		if g.GroupID == groupID {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, func(a, b models.Game) int {
		if a.Round != b.Round {
			return a.Round - b.Round
		}
		return a.Board - b.Board
	})
	return out, nil
}

func (r fakeGameRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, groupID int, games []models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert != nil {
		return r.failInsert
	}
	for _, g := range games {
		g.ID = r.id()
		g.GroupID = groupID
		g.ScheduledDate = models.DateOnly(g.ScheduledDate)
		r.games[g.ID] = g
	}
	return nil
}

func (r fakeGameRepo) DeleteByGroup(_ context.Context, _ repositories.SQLExecutor, groupID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.games {
		if g.GroupID == groupID {
			delete(r.games, id)
		}
	}
	return nil
}

func (r fakeGameRepo) UpdateResult(_ context.Context, id int, result models.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	g.Result = result
	r.games[id] = g
	return nil
}

func (r fakeGameRepo) UpdateDate(_ context.Context, id int, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	g.ScheduledDate = models.DateOnly(date)
	r.games[id] = g
	return nil
}

// fakeTransactor restores the game table when fn fails.
type fakeTransactor struct{ store *memoryStore }

func (t fakeTransactor) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.store.mu.Lock()
	snapshot := make(map[int]models.Game, len(t.store.games))
	for id, g := range t.store.games {
		snapshot[id] = g
	}
	t.store.mu.Unlock()

	if err := fn(nil); err != nil {
		t.store.mu.Lock()
		t.store.games = snapshot
		t.store.mu.Unlock()
		return err
	}
	return nil
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []realtime.Message
	rooms    []string
}

func (b *recordingBroadcaster) BroadcastToRoom(room string, message any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = append(b.rooms, room)
	b.messages = append(b.messages, message.(realtime.Message))
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.messages))
	for _, m := range b.messages {
		out = append(out, m.Type)
	}
	return out
}

type fakeArchive struct {
	calls int
	ext   string
	err   error
}

func (a *fakeArchive) Store(_ context.Context, groupID int, ext string, _ string, _ []byte) (*storage.UploadResult, error) {
	a.calls++
	a.ext = ext
	if a.err != nil {
		return nil, a.err
	}
	return &storage.UploadResult{Key: "k", Location: "https://files.example.org/reports/k." + ext}, nil
}

// seedGroup stores a group with the given last names as seeds 1..N.
func seedGroup(store *memoryStore, names ...string) (models.Group, []models.Participant) {
	group := models.Group{
		Name:        "Vereinsmeisterschaft",
		Location:    "Musterstadt",
		Federation:  "GER",
		StartDate:   day(time.January, 1),
		EndDate:     day(time.March, 29),
		Weekday:     time.Friday,
		TimeControl: "90min",
	}
	_ = fakeGroupRepo{store}.Create(context.Background(), &group)

	participants := make([]models.Participant, 0, len(names))
	for i, name := range names {
		p := models.Participant{GroupID: group.ID, SeedPosition: i + 1, FirstName: "X", LastName: name}
		_ = fakeParticipantRepo{store}.Create(context.Background(), &p)
		participants = append(participants, p)
	}
	return group, participants
}
