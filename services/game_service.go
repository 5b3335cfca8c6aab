package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/repositories"
)

type GameService interface {
	SetResult(ctx context.Context, gameID int, result string) (*models.Game, error)
	Reschedule(ctx context.Context, gameID int, date time.Time) (*models.Game, error)
}

type gameService struct {
	gameRepo    repositories.GameRepository
	standings   StandingsService
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewGameService(
	gameRepo repositories.GameRepository,
	standings StandingsService,
	broadcaster Broadcaster,
	logger *slog.Logger,
) GameService {
	return &gameService{
		gameRepo:    gameRepo,
		standings:   standings,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *gameService) SetResult(ctx context.Context, gameID int, result string) (*models.Game, error) {
	parsed, err := models.ParseGameResult(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if game.IsBye() && parsed != models.ResultUnplayed {
		return nil, fmt.Errorf("%w: game %d is a bye", ErrInvalidResult, gameID)
	}

	if err := s.gameRepo.UpdateResult(ctx, gameID, parsed); err != nil {
		return nil, handleRepositoryError(err)
	}
	game.Result = parsed

	s.logger.InfoContext(ctx, "game result recorded",
		slog.Int("game_id", gameID), slog.Int("group_id", game.GroupID), slog.String("result", string(parsed)))
	s.publishChange(ctx, game)
	return game, nil
}

func (s *gameService) Reschedule(ctx context.Context, gameID int, date time.Time) (*models.Game, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	clash, err := s.clashingFixture(ctx, game, models.DateOnly(date))
	if err != nil {
		return nil, err
	}
	if clash != nil {
		return nil, fmt.Errorf("%w: game %d already falls on %s for a player of game %d",
			ErrScheduleConflict, clash.ID, models.DateOnly(date).Format(time.DateOnly), gameID)
	}

	if err := s.gameRepo.UpdateDate(ctx, gameID, date); err != nil {
		return nil, handleRepositoryError(err)
	}
	game.ScheduledDate = models.DateOnly(date)

	s.logger.InfoContext(ctx, "game rescheduled",
		slog.Int("game_id", gameID), slog.Int("group_id", game.GroupID), slog.Time("date", game.ScheduledDate))
	s.publishChange(ctx, game)
	return game, nil
}

// clashingFixture finds another fixture of either player on day. Byes never
// clash since they take no date column in the exports.
func (s *gameService) clashingFixture(ctx context.Context, game *models.Game, day time.Time) (*models.Game, error) {
	if game.IsBye() {
		return nil, nil
	}
	games, err := s.gameRepo.ListByGroup(ctx, game.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures of group %d: %w", game.GroupID, err)
	}
	for i, other := range games {
		if other.ID == game.ID || other.IsBye() || !models.DateOnly(other.ScheduledDate).Equal(day) {
			continue
		}
		if other.Involves(*game.WhiteID) || other.Involves(*game.BlackID) {
			return &games[i], nil
		}
	}
	return nil, nil
}

// publishChange pushes the game and the resulting table; a failed ranking only
// skips the table push.
func (s *gameService) publishChange(ctx context.Context, game *models.Game) {
	publish(s.broadcaster, game.GroupID, realtime.MessageGameUpdated, game)

	table, err := s.standings.Standings(ctx, game.GroupID, 0)
	if err != nil {
		s.logger.WarnContext(ctx, "standings not broadcast", slog.Int("group_id", game.GroupID), slog.Any("error", err))
		return
	}
	publish(s.broadcaster, game.GroupID, realtime.MessageStandingsUpdated, table)
}
