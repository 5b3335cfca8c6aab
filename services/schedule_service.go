package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/chess-league/brackets"
	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/repositories"
)

type ScheduleService interface {
	// Generate replaces the fixtures of a group with a fresh round-robin schedule.
	Generate(ctx context.Context, groupID int) ([]models.Game, error)
	Fixtures(ctx context.Context, groupID int) ([]models.Game, error)
}

type scheduleService struct {
	tx              Transactor
	groupRepo       repositories.GroupRepository
	participantRepo repositories.ParticipantRepository
	gameRepo        repositories.GameRepository
	generator       brackets.ScheduleGenerator
	broadcaster     Broadcaster
	logger          *slog.Logger
}

func NewScheduleService(
	tx Transactor,
	groupRepo repositories.GroupRepository,
	participantRepo repositories.ParticipantRepository,
	gameRepo repositories.GameRepository,
	generator brackets.ScheduleGenerator,
	broadcaster Broadcaster,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		tx:              tx,
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		gameRepo:        gameRepo,
		generator:       generator,
		broadcaster:     broadcaster,
		logger:          logger,
	}
}

func (s *scheduleService) Generate(ctx context.Context, groupID int) ([]models.Game, error) {
	data, err := loadGroupData(ctx, s.groupRepo, s.participantRepo, s.gameRepo, groupID)
	if err != nil {
		return nil, err
	}
	if data.group.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: group %d has no start date", ErrValidationFailed, groupID)
	}
	for _, g := range data.games {
		if g.Result != models.ResultUnplayed {
			return nil, fmt.Errorf("%w: game %d is %s", ErrScheduleLocked, g.ID, g.Result)
		}
	}

	roster := make([]*models.Participant, len(data.participants))
	for i := range data.participants {
		roster[i] = &data.participants[i]
	}
	scheduled, err := s.generator.GenerateSchedule(ctx, brackets.GenerateScheduleParams{
		Group:        data.group,
		Participants: roster,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrTooFewPlayers) || errors.Is(err, brackets.ErrInvalidSeeds) {
			return nil, fmt.Errorf("%w: %w", ErrRosterInvalid, err)
		}
		return nil, fmt.Errorf("failed to generate schedule for group %d: %w", groupID, err)
	}

	games := make([]models.Game, 0, len(scheduled))
	for _, sg := range scheduled {
		white, black := sg.WhiteID, sg.BlackID
		games = append(games, models.Game{
			GroupID:       groupID,
			Round:         sg.Round,
			Board:         sg.Board,
			WhiteID:       &white,
			BlackID:       &black,
			Result:        models.ResultUnplayed,
			ScheduledDate: sg.Date,
		})
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.gameRepo.DeleteByGroup(ctx, exec, groupID); err != nil {
			return err
		}
		return s.gameRepo.CreateBatch(ctx, exec, groupID, games)
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	stored, err := s.gameRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload games of group %d: %w", groupID, err)
	}

	s.logger.InfoContext(ctx, "schedule generated",
		slog.Int("group_id", groupID),
		slog.String("generator", s.generator.GetName()),
		slog.Int("participants", len(roster)),
		slog.Int("games", len(stored)),
	)
	publish(s.broadcaster, groupID, realtime.MessageScheduleGenerated, stored)
	return stored, nil
}

func (s *scheduleService) Fixtures(ctx context.Context, groupID int) ([]models.Game, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, handleRepositoryError(err)
	}
	games, err := s.gameRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games of group %d: %w", groupID, err)
	}
	return games, nil
}
