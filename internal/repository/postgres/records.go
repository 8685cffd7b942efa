package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/pkg/errors"
)

type recordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecordRepository creates a new customer record repository
func NewRecordRepository(db *sql.DB, logger *zap.Logger) *recordRepository {
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

func (r *recordRepository) Add(ctx context.Context, record *domain.CustomerRecord) error {
	query := `
		INSERT INTO customer_records (id, document, has_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now().UTC()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		doc,
		record.HasOrder(),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to add customer record", zap.String("id", record.ID.String()), zap.Error(err))
		return err
	}

	return nil
}

func (r *recordRepository) Update(ctx context.Context, record *domain.CustomerRecord) error {
	// a record whose order was submitted is frozen
	query := `
		UPDATE customer_records
		SET document = $2, has_order = $3, updated_at = $4
		WHERE id = $1 AND has_order = false
	`

	record.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, record.ID, doc, record.HasOrder(), record.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update customer record", zap.String("id", record.ID.String()), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, record.ID); err != nil {
			return err
		}
		return &errors.ErrOrderLocked{RecordID: record.ID.String()}
	}

	return nil
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerRecord, error) {
	query := `
		SELECT document
		FROM customer_records
		WHERE id = $1
	`

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "record", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get customer record by ID", zap.Error(err))
		return nil, err
	}

	var record domain.CustomerRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}

	return &record, nil
}

func (r *recordRepository) List(ctx context.Context) ([]*domain.CustomerRecord, error) {
	query := `
		SELECT id, document
		FROM customer_records
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query customer records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.CustomerRecord, 0)
	for rows.Next() {
		var id uuid.UUID
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}

		var record domain.CustomerRecord
		if err := json.Unmarshal(doc, &record); err != nil {
			// one corrupt document should not hide the rest of the admin list
			r.logger.Warn("Skipping undecodable customer record", zap.String("id", id.String()), zap.Error(err))
			continue
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customer_records WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete customer record", zap.String("id", id.String()), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.ErrNotFound{Resource: "record", ID: id.String()}
	}

	return nil
}
