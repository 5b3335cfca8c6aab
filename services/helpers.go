package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/repositories"
)

// Broadcaster pushes a message to every viewer of a room.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message any)
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

type sqlTransactor struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLTransactor(db *sql.DB, logger *slog.Logger) Transactor {
	return &sqlTransactor{db: db, logger: logger}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (txErr error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				t.logger.ErrorContext(ctx, "rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()
	return fn(tx)
}

// handleRepositoryError translates repository sentinels into service errors.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrGroupNotFound):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrParticipantNotFound):
		return ErrParticipantNotFound
	case errors.Is(err, repositories.ErrGameNotFound):
		return ErrGameNotFound
	case errors.Is(err, repositories.ErrParticipantSeedConflict):
		return ErrSeedConflict
	case errors.Is(err, repositories.ErrParticipantGroupInvalid):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrGameConflict):
		return ErrScheduleConflict
	default:
		return err
	}
}

func publish(b Broadcaster, groupID int, messageType string, payload any) {
	if b == nil {
		return
	}
	room := realtime.GroupRoom(groupID)
	b.BroadcastToRoom(room, realtime.Message{Type: messageType, Payload: payload, RoomID: room})
}
