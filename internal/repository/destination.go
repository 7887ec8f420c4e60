package repository

import (
	"context"
	"database/sql"
	"fmt"

	"esports-digest/internal/constants"
	"esports-digest/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// DestinationRepository persists registered chat destinations. The whole
// set is replaced on every save.
type DestinationRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewDestinationRepository(sqlDB *sql.DB, logger zerolog.Logger) *DestinationRepository {
	return &DestinationRepository{db: sqlDB, logger: logger}
}

func (r *DestinationRepository) Load(ctx context.Context) ([]domain.ChatDestination, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT chat_id, name FROM destinations ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatDestination
	for rows.Next() {
		var d domain.ChatDestination
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read destinations: %w", err)
	}
	return out, nil
}

func (r *DestinationRepository) Save(ctx context.Context, destinations []domain.ChatDestination) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM destinations`); err != nil {
		return fmt.Errorf("failed to clear destinations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO destinations (id, chat_id, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range destinations {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, id, d.ID, d.Name); err != nil {
			return fmt.Errorf("failed to insert destination %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit destinations: %w", err)
	}

	r.logger.Debug().Int("count", len(destinations)).Msg("destinations saved")
	return nil
}
