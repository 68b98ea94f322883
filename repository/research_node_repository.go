package repository

import (
	"context"

	"argutree-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResearchNodeRepository handles database operations for research nodes
type ResearchNodeRepository struct {
	db *pgxpool.Pool
}

// NewResearchNodeRepository creates a new research node repository
func NewResearchNodeRepository(db *pgxpool.Pool) *ResearchNodeRepository {
	return &ResearchNodeRepository{db: db}
}

// Create persists a built research node
func (r *ResearchNodeRepository) Create(ctx context.Context, rec *models.ResearchRecord) error {
	query := `
		INSERT INTO research_nodes (
			query, depth, max_depth, node, total_cases_analyzed
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		rec.Query,
		rec.Depth,
		rec.MaxDepth,
		rec.Node,
		rec.TotalCasesAnalyzed,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// GetByID retrieves a research node record by ID
func (r *ResearchNodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ResearchRecord, error) {
	rec := &models.ResearchRecord{Node: &models.ResearchNode{}}
	query := `
		SELECT id, query, depth, max_depth, node, total_cases_analyzed, created_at
		FROM research_nodes
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.Query,
		&rec.Depth,
		&rec.MaxDepth,
		rec.Node,
		&rec.TotalCasesAnalyzed,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Delete removes a research node record by ID
func (r *ResearchNodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM research_nodes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListRecent retrieves the most recently built nodes
func (r *ResearchNodeRepository) ListRecent(ctx context.Context, limit int) ([]models.ResearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, query, depth, max_depth, node, total_cases_analyzed, created_at
		FROM research_nodes
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.ResearchRecord, 0, limit)
	for rows.Next() {
		rec := models.ResearchRecord{Node: &models.ResearchNode{}}
		if err := rows.Scan(
			&rec.ID,
			&rec.Query,
			&rec.Depth,
			&rec.MaxDepth,
			rec.Node,
			&rec.TotalCasesAnalyzed,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
