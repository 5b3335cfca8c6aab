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
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrParticipantSeedConflict = errors.New("seed position already taken in this group")
	ErrParticipantGroupInvalid = errors.New("participant group does not exist")
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.Participant) error
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	ListByGroup(ctx context.Context, groupID int) ([]models.Participant, error)
	SetWithdrawal(ctx context.Context, id int, withdrawnAt *time.Time) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

const participantColumns = `id, group_id, seed_position, first_name, last_name, club, federation,
	fide_id, national_rating, fide_rating, birth_year, sex, title, withdrawn_at`

func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (group_id, seed_position, first_name, last_name, club, federation,
		                          fide_id, national_rating, fide_rating, birth_year, sex, title, withdrawn_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.GroupID, p.SeedPosition, p.FirstName, p.LastName, p.Club, p.Federation,
		p.FideID, p.NationalRating, p.FideRating, p.BirthYear, string(p.Sex), p.Title,
		p.State.Timestamp(),
	).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return ErrParticipantSeedConflict
			case pqForeignKeyViolation:
				return ErrParticipantGroupInvalid
			}
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func scanParticipant(row rowScanner, p *models.Participant) error {
	var (
		sex         string
		withdrawnAt *time.Time
	)
	err := row.Scan(
		&p.ID, &p.GroupID, &p.SeedPosition, &p.FirstName, &p.LastName, &p.Club, &p.Federation,
		&p.FideID, &p.NationalRating, &p.FideRating, &p.BirthYear, &sex, &p.Title, &withdrawnAt,
	)
	if err != nil {
		return err
	}
	p.Sex = models.Sex(sex)
	p.State = models.StateFromTimestamp(withdrawnAt)
	return nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

	var p models.Participant
	if err := scanParticipant(r.db.QueryRowContext(ctx, query, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant %d: %w", id, err)
	}
	return &p, nil
}

// ListByGroup returns the roster ordered by seed position.
func (r *postgresParticipantRepository) ListByGroup(ctx context.Context, groupID int) ([]models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE group_id = $1 ORDER BY seed_position ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of group %d: %w", groupID, err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := scanParticipant(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}

// SetWithdrawal records or clears (nil) a participant's withdrawal.
func (r *postgresParticipantRepository) SetWithdrawal(ctx context.Context, id int, withdrawnAt *time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE participants SET withdrawn_at = $1 WHERE id = $2`, withdrawnAt, id)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal of participant %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
