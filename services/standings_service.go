package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/repositories"
	"github.com/Dosada05/chess-league/standings"
)

// StandingRow is one line of the public table.
type StandingRow struct {
	models.Standing
	Name      string `json:"name"`
	Withdrawn bool   `json:"withdrawn"`
}

type StandingsService interface {
	// Standings ranks the group over rounds 1..roundCutoff; 0 takes every round.
	Standings(ctx context.Context, groupID int, roundCutoff int) ([]StandingRow, error)
}

type standingsService struct {
	groupRepo       repositories.GroupRepository
	participantRepo repositories.ParticipantRepository
	gameRepo        repositories.GameRepository
	logger          *slog.Logger
}

func NewStandingsService(
	groupRepo repositories.GroupRepository,
	participantRepo repositories.ParticipantRepository,
	gameRepo repositories.GameRepository,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		gameRepo:        gameRepo,
		logger:          logger,
	}
}

// groupData is everything stored about one group.
type groupData struct {
	group        *models.Group
	participants []models.Participant
	games        []models.Game
}

func loadGroupData(ctx context.Context, groupRepo repositories.GroupRepository, participantRepo repositories.ParticipantRepository, gameRepo repositories.GameRepository, groupID int) (*groupData, error) {
	var data groupData
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		group, err := groupRepo.GetByID(gCtx, groupID)
		if err != nil {
			return handleRepositoryError(err)
		}
		data.group = group
		return nil
	})
	g.Go(func() error {
		participants, err := participantRepo.ListByGroup(gCtx, groupID)
		if err != nil {
			return fmt.Errorf("failed to load roster of group %d: %w", groupID, err)
		}
		data.participants = participants
		return nil
	})
	g.Go(func() error {
		games, err := gameRepo.ListByGroup(gCtx, groupID)
		if err != nil {
			return fmt.Errorf("failed to load games of group %d: %w", groupID, err)
		}
		data.games = games
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *standingsService) Standings(ctx context.Context, groupID int, roundCutoff int) ([]StandingRow, error) {
	if roundCutoff < 0 {
		return nil, fmt.Errorf("%w: round must not be negative", ErrValidationFailed)
	}

	data, err := loadGroupData(ctx, s.groupRepo, s.participantRepo, s.gameRepo, groupID)
	if err != nil {
		return nil, err
	}

	table, err := standings.Ranked(data.games, data.participants, standings.Options{RoundCutoff: roundCutoff})
	if err != nil {
		if errors.Is(err, standings.ErrUnknownParticipant) || errors.Is(err, standings.ErrInvalidResult) {
			s.logger.ErrorContext(ctx, "stored fixtures are inconsistent", slog.Int("group_id", groupID), slog.Any("error", err))
		}
		return nil, fmt.Errorf("failed to rank group %d: %w", groupID, err)
	}

	index := models.IndexParticipants(data.participants)
	rows := make([]StandingRow, 0, len(table))
	for _, st := range table {
		p := index[st.ParticipantID]
		_, withdrawn := p.State.Withdrawn()
		rows = append(rows, StandingRow{
			Standing:  st,
			Name:      displayName(p),
			Withdrawn: withdrawn,
		})
	}
	return rows, nil
}

func displayName(p models.Participant) string {
	if p.Title != "" {
		return p.Title + " " + p.FirstName + " " + p.LastName
	}
	return p.FirstName + " " + p.LastName
}
