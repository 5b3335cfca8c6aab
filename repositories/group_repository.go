package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/chess-league/models"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	GetByID(ctx context.Context, id int) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) Create(ctx context.Context, g *models.Group) error {
	query := `
		INSERT INTO groups (name, location, federation, start_date, end_date, rounds,
		                    organizer, arbiter, time_control, weekday)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		g.Name, g.Location, g.Federation,
		nullDate(g.StartDate), nullDate(g.EndDate),
		g.Rounds, g.Organizer, g.Arbiter, g.TimeControl, int(g.Weekday),
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `
		SELECT id, name, location, federation, start_date, end_date, rounds,
		       organizer, arbiter, time_control, weekday, created_at
		FROM groups
		WHERE id = $1`

	var (
		g          models.Group
		start, end sql.NullTime
		weekday    int
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Location, &g.Federation, &start, &end, &g.Rounds,
		&g.Organizer, &g.Arbiter, &g.TimeControl, &weekday, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", id, err)
	}
	if start.Valid {
		g.StartDate = models.DateOnly(start.Time)
	}
	if end.Valid {
		g.EndDate = models.DateOnly(end.Time)
	}
	g.Weekday = time.Weekday(weekday)
	return &g, nil
}

func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: models.DateOnly(t), Valid: true}
}
