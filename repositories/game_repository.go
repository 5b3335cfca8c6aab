package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Dosada05/chess-league/models"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameConflict = errors.New("board already taken in this round")
)

type GameRepository interface {
	GetByID(ctx context.Context, id int) (*models.Game, error)
	ListByGroup(ctx context.Context, groupID int) ([]models.Game, error)
	CreateBatch(ctx context.Context, exec SQLExecutor, groupID int, games []models.Game) error
	DeleteByGroup(ctx context.Context, exec SQLExecutor, groupID int) error
	UpdateResult(ctx context.Context, id int, result models.GameResult) error
	UpdateDate(ctx context.Context, id int, date time.Time) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, group_id, round, board, white_id, black_id, result, scheduled_date`

func scanGame(row rowScanner, g *models.Game) error {
	var result string
	if err := row.Scan(&g.ID, &g.GroupID, &g.Round, &g.Board, &g.WhiteID, &g.BlackID, &result, &g.ScheduledDate); err != nil {
		return err
	}
	g.Result = models.GameResult(result)
	g.ScheduledDate = models.DateOnly(g.ScheduledDate)
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	var g models.Game
	if err := scanGame(r.db.QueryRowContext(ctx, query, id), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return &g, nil
}

func (r *postgresGameRepository) ListByGroup(ctx context.Context, groupID int) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE group_id = $1 ORDER BY round ASC, board ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games of group %d: %w", groupID, err)
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if err := scanGame(rows, &g); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game rows: %w", err)
	}
	return games, nil
}

// CreateBatch inserts all fixtures of a group in one statement.
func (r *postgresGameRepository) CreateBatch(ctx context.Context, exec SQLExecutor, groupID int, games []models.Game) error {
	if len(games) == 0 {
		return nil
	}

	var (
		rounds  = make([]int64, len(games))
		boards  = make([]int64, len(games))
		whites  = make([]sql.NullInt64, len(games))
		blacks  = make([]sql.NullInt64, len(games))
		results = make([]string, len(games))
		dates   = make([]string, len(games))
	)
	for i, g := range games {
		rounds[i] = int64(g.Round)
		boards[i] = int64(g.Board)
		whites[i] = nullID(g.WhiteID)
		blacks[i] = nullID(g.BlackID)
		results[i] = string(g.Result)
		if g.Result == "" {
			results[i] = string(models.ResultUnplayed)
		}
		dates[i] = models.DateOnly(g.ScheduledDate).Format(time.DateOnly)
	}

	query := `
		INSERT INTO games (group_id, round, board, white_id, black_id, result, scheduled_date)
		SELECT $1, t.round, t.board, t.white_id, t.black_id, t.result, t.scheduled_date
		FROM unnest($2::int[], $3::int[], $4::int[], $5::int[], $6::text[], $7::date[])
		     AS t(round, board, white_id, black_id, result, scheduled_date)`

	_, err := executor(r.db, exec).ExecContext(ctx, query,
		groupID,
		pq.Array(rounds), pq.Array(boards), pq.Array(whites), pq.Array(blacks),
		pq.Array(results), pq.Array(dates),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrGameConflict
		}
		return fmt.Errorf("failed to insert %d games for group %d: %w", len(games), groupID, err)
	}
	return nil
}

func (r *postgresGameRepository) DeleteByGroup(ctx context.Context, exec SQLExecutor, groupID int) error {
	if _, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM games WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to delete games of group %d: %w", groupID, err)
	}
	return nil
}

func (r *postgresGameRepository) UpdateResult(ctx context.Context, id int, result models.GameResult) error {
	res, err := r.db.ExecContext(ctx, `UPDATE games SET result = $1 WHERE id = $2`, string(result), id)
	if err != nil {
		return fmt.Errorf("failed to update result of game %d: %w", id, err)
	}
	return checkAffectedRows(res, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateDate(ctx context.Context, id int, date time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE games SET scheduled_date = $1 WHERE id = $2`,
		models.DateOnly(date).Format(time.DateOnly), id)
	if err != nil {
		return fmt.Errorf("failed to update date of game %d: %w", id, err)
	}
	return checkAffectedRows(res, ErrGameNotFound)
}

func nullID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
