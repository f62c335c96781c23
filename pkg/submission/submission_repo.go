package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// FindByKey returns every stored submission in the given audit partition
	// matching the (user_mail, date) pair, as field-name keyed rows. The
	// partition name must come from the department registry.
	FindByKey(ctx context.Context, auditTable, userMail, date string) ([]map[string]any, error)
	// Insert stores one normalized submission. Only allow-listed columns are
	// written, in the fixed schema order; missing text fields default to ""
	// and missing numeric fields to 0.
	Insert(ctx context.Context, auditTable string, fields map[string]any) error
}

type RepoImpl struct {
	db     *pgxpool.Pool
	schema []Field
}

func NewSubmissionRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db, schema: AuditSchema()}
}

func (r *RepoImpl) FindByKey(ctx context.Context, auditTable, userMail, date string) ([]map[string]any, error) {
	columns := make([]string, 0, len(r.schema))
	for _, f := range r.schema {
		columns = append(columns, f.Column)
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_mail = $1 AND date = $2`,
		strings.Join(columns, ", "), pgx.Identifier{auditTable}.Sanitize())

	rows, err := r.db.Query(ctx, query, userMail, date)
	if err != nil {
		log.Errorf("failed to query submissions from %s: %v", auditTable, err)
		return nil, err
	}
	defer rows.Close()

	var result []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			log.Errorf("failed to read submission row: %v", err)
			return nil, err
		}
		row := make(map[string]any, len(r.schema))
		for i, f := range r.schema {
			row[f.Name] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over submissions: %v", err)
		return nil, err
	}
	return result, nil
}

func (r *RepoImpl) Insert(ctx context.Context, auditTable string, fields map[string]any) error {
	columns := make([]string, 0, len(r.schema))
	placeholders := make([]string, 0, len(r.schema))
	values := make([]any, 0, len(r.schema))
	for i, f := range r.schema {
		columns = append(columns, f.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		values = append(values, fieldValue(f, fields))
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		pgx.Identifier{auditTable}.Sanitize(),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))

	if _, err := r.db.Exec(ctx, query, values...); err != nil {
		log.Errorf("failed to insert submission into %s: %v", auditTable, err)
		return err
	}
	return nil
}

// fieldValue picks the stored value for one allow-listed column, applying
// the per-kind default when the submission did not carry the field.
func fieldValue(f Field, fields map[string]any) any {
	v, ok := fields[f.Name]
	if !ok {
		if f.Kind == KindText {
			return ""
		}
		return 0
	}
	return v
}
