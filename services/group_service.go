package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/chess-league/models"
	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/repositories"
)

type GroupService interface {
	Create(ctx context.Context, group *models.Group) error
	Get(ctx context.Context, groupID int) (*models.Group, error)
	AddParticipant(ctx context.Context, groupID int, p *models.Participant) error
	ListParticipants(ctx context.Context, groupID int) ([]models.Participant, error)
	// SetWithdrawal records a withdrawal; nil reinstates the participant.
	SetWithdrawal(ctx context.Context, participantID int, withdrawnAt *time.Time) (*models.Participant, error)
}

type groupService struct {
	groupRepo       repositories.GroupRepository
	participantRepo repositories.ParticipantRepository
	gameRepo        repositories.GameRepository
	standings       StandingsService
	broadcaster     Broadcaster
	defaultWeekday  time.Weekday
	logger          *slog.Logger
}

func NewGroupService(
	groupRepo repositories.GroupRepository,
	participantRepo repositories.ParticipantRepository,
	gameRepo repositories.GameRepository,
	standings StandingsService,
	broadcaster Broadcaster,
	defaultWeekday time.Weekday,
	logger *slog.Logger,
) GroupService {
	return &groupService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		gameRepo:        gameRepo,
		standings:       standings,
		broadcaster:     broadcaster,
		defaultWeekday:  defaultWeekday,
		logger:          logger,
	}
}

// Create stores a group. A negative weekday selects the configured default.
func (s *groupService) Create(ctx context.Context, group *models.Group) error {
	group.Name = strings.TrimSpace(group.Name)
	if group.Name == "" {
		return fmt.Errorf("%w: group name is required", ErrValidationFailed)
	}
	if !group.StartDate.IsZero() && !group.EndDate.IsZero() && group.EndDate.Before(group.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrValidationFailed,
			group.EndDate.Format(time.DateOnly), group.StartDate.Format(time.DateOnly))
	}
	if group.Weekday < 0 {
		group.Weekday = s.defaultWeekday
	}
	if group.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrValidationFailed, group.Weekday)
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return handleRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "group created", slog.Int("group_id", group.ID), slog.String("name", group.Name))
	return nil
}

func (s *groupService) Get(ctx context.Context, groupID int) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return group, nil
}

// AddParticipant seeds a new player. Seeds are fixed once a schedule exists.
func (s *groupService) AddParticipant(ctx context.Context, groupID int, p *models.Participant) error {
	p.GroupID = groupID
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	if p.LastName == "" {
		return fmt.Errorf("%w: last name is required", ErrValidationFailed)
	}
	if p.SeedPosition < 1 {
		return fmt.Errorf("%w: seed position must be positive", ErrValidationFailed)
	}
	switch p.Sex {
	case "", models.SexMale, models.SexFemale:
	default:
		return fmt.Errorf("%w: sex must be %q or %q", ErrValidationFailed, models.SexMale, models.SexFemale)
	}

	games, err := s.gameRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to list fixtures of group %d: %w", groupID, err)
	}
	if len(games) > 0 {
		return fmt.Errorf("%w: group %d has %d fixtures", ErrRosterLocked, groupID, len(games))
	}

	if err := s.participantRepo.Create(ctx, p); err != nil {
		return handleRepositoryError(err)
	}
	return nil
}

func (s *groupService) ListParticipants(ctx context.Context, groupID int) ([]models.Participant, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, handleRepositoryError(err)
	}
	participants, err := s.participantRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of group %d: %w", groupID, err)
	}
	return participants, nil
}

func (s *groupService) SetWithdrawal(ctx context.Context, participantID int, withdrawnAt *time.Time) (*models.Participant, error) {
	if err := s.participantRepo.SetWithdrawal(ctx, participantID, withdrawnAt); err != nil {
		return nil, handleRepositoryError(err)
	}
	p, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "participant state changed",
		slog.Int("participant_id", participantID), slog.String("state", p.State.String()))

	table, err := s.standings.Standings(ctx, p.GroupID, 0)
	if err != nil {
		s.logger.WarnContext(ctx, "standings not broadcast", slog.Int("group_id", p.GroupID), slog.Any("error", err))
		return p, nil
	}
	publish(s.broadcaster, p.GroupID, realtime.MessageStandingsUpdated, table)
	return p, nil
}
