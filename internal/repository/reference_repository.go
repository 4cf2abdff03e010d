package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportstack/helpdesk-service/internal/domain"
)

// ReferenceRepository reads the seeded lookup tables. The application never
// writes them.
type ReferenceRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListPriorities(ctx context.Context) ([]domain.Priority, error)
	ListStatuses(ctx context.Context) ([]domain.Status, error)
	GetStatus(ctx context.Context, id int64) (*domain.Status, error)
}

type referenceRepository struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository builds the repository.
func NewReferenceRepository(pool *pgxpool.Pool) ReferenceRepository {
	return &referenceRepository{pool: pool}
}

func (r *referenceRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT id, name, description FROM categories ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

func (r *referenceRepository) ListPriorities(ctx context.Context) ([]domain.Priority, error) {
	const query = `SELECT id, name, level FROM priorities ORDER BY level`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Priority
	for rows.Next() {
		var pr domain.Priority
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Level); err != nil {
			return nil, err
		}
		result = append(result, pr)
	}
	return result, rows.Err()
}

func (r *referenceRepository) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	const query = `SELECT id, name, color FROM statuses ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		var st domain.Status
		if err := rows.Scan(&st.ID, &st.Name, &st.Color); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

func (r *referenceRepository) GetStatus(ctx context.Context, id int64) (*domain.Status, error) {
	const query = `SELECT id, name, color FROM statuses WHERE id=$1`
	var st domain.Status
	if err := r.pool.QueryRow(ctx, query, id).Scan(&st.ID, &st.Name, &st.Color); err != nil {
		return nil, err
	}
	return &st, nil
}
