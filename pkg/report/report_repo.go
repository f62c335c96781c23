package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixeltruth/mis-backend/pkg/submission"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// FindByDate returns all submissions in the partition for one date,
	// optionally restricted to one user (userMail == "" means everyone).
	FindByDate(ctx context.Context, auditTable, date, userMail string) ([]map[string]any, error)
	// FindByDateRange returns all submissions with from <= date <= to,
	// optionally restricted to one user.
	FindByDateRange(ctx context.Context, auditTable, from, to, userMail string) ([]map[string]any, error)
}

type RepoImpl struct {
	db     *pgxpool.Pool
	schema []submission.Field
}

func NewReportRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db, schema: submission.AuditSchema()}
}

func (r *RepoImpl) FindByDate(ctx context.Context, auditTable, date, userMail string) ([]map[string]any, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE date = $1`, r.columns(), pgx.Identifier{auditTable}.Sanitize())
	args := []any{date}
	if userMail != "" {
		query += " AND user_mail = $2"
		args = append(args, userMail)
	}
	return r.query(ctx, query, args...)
}

func (r *RepoImpl) FindByDateRange(ctx context.Context, auditTable, from, to, userMail string) ([]map[string]any, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE date >= $1 AND date <= $2`, r.columns(), pgx.Identifier{auditTable}.Sanitize())
	args := []any{from, to}
	if userMail != "" {
		query += " AND user_mail = $3"
		args = append(args, userMail)
	}
	query += " ORDER BY date, user_mail"
	return r.query(ctx, query, args...)
}

func (r *RepoImpl) columns() string {
	columns := make([]string, 0, len(r.schema))
	for _, f := range r.schema {
		columns = append(columns, f.Column)
	}
	return strings.Join(columns, ", ")
}

func (r *RepoImpl) query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to query report rows: %v", err)
		return nil, err
	}
	defer rows.Close()

	var result []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			log.Errorf("failed to read report row: %v", err)
			return nil, err
		}
		row := make(map[string]any, len(r.schema))
		for i, f := range r.schema {
			row[f.Name] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over report rows: %v", err)
		return nil, err
	}
	return result, nil
}
