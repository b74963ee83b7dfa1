package pgsql

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/models"
	"github.com/SscSPs/vetpos_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(pool *pgxpool.Pool) *PgxActivityRepository {
	return &PgxActivityRepository{BaseRepository: newBaseRepository(pool)}
}

func (r *PgxActivityRepository) withTx(tx pgx.Tx) *PgxActivityRepository {
	return &PgxActivityRepository{BaseRepository: r.bound(tx)}
}

var (
	_ portsrepo.ActivityReader = (*PgxActivityRepository)(nil)
	_ portsrepo.ActivityWriter = (*PgxActivityRepository)(nil)
)

// InsertActivity appends an audit entry.
func (r *PgxActivityRepository) InsertActivity(ctx context.Context, entry domain.ActivityLog) error {
	m, err := mapping.ToModelActivityLog(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode activity", err)
	}
	query := `
		INSERT INTO activity_logs (activity_id, branch_id, user_id, action, entity_id, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.db.Exec(ctx, query, m.ActivityID, m.BranchID, m.UserID, m.Action, m.EntityID, m.Description, m.Metadata, m.CreatedAt)
	if err != nil {
		return mapPgError(err, "failed to insert activity")
	}
	return nil
}

// ListActivity lists a branch's audit entries newest first.
func (r *PgxActivityRepository) ListActivity(ctx context.Context, branchID string, limit int) ([]domain.ActivityLog, error) {
	query := `
		SELECT activity_id, branch_id, user_id, action, entity_id, description, metadata, created_at
		FROM activity_logs
		WHERE branch_id = $1
		ORDER BY created_at DESC, activity_id DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, branchID, limit)
	if err != nil {
		return nil, mapPgError(err, "failed to query activity")
	}
	defer rows.Close()

	entries := make([]domain.ActivityLog, 0)
	for rows.Next() {
		var m models.ActivityLog
		if err := rows.Scan(&m.ActivityID, &m.BranchID, &m.UserID, &m.Action, &m.EntityID, &m.Description, &m.Metadata, &m.CreatedAt); err != nil {
			return nil, mapPgError(err, "failed to scan activity")
		}
		entry, err := mapping.ToDomainActivityLog(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode activity", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating activity")
	}
	return entries, nil
}
