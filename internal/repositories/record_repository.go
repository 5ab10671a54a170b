package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"accountd/internal/models"
)

type RecordRepository interface {
	ListByOwner(ctx context.Context, userID int) ([]*models.Record, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type recordRepository struct {
	DB *sql.DB
}

func NewRecordRepository(db *sql.DB) RecordRepository {
	return &recordRepository{DB: db}
}

func (r *recordRepository) ListByOwner(ctx context.Context, userID int) ([]*models.Record, error) {
	const q = `
		SELECT record_id, record_name, record_description, user_id_fk
		FROM records
		WHERE user_id_fk = $1
		ORDER BY record_id
	`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("record list: %w", err)
	}
	defer rows.Close()

	var recs []*models.Record
	for rows.Next() {
		rec := &models.Record{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.UserID); err != nil {
			return nil, fmt.Errorf("record scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("record rows: %w", err)
	}
	return recs, nil
}

// DeleteAll — dev-only очистка таблицы целиком. В production-окружении роут
// не монтируется вовсе.
func (r *recordRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("record delete all: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("record delete all affected: %w", err)
	}
	return n, nil
}
