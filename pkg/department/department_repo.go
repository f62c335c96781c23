package department

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrDepartmentNotFound = errors.New("department not found")

type Repo interface {
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	UpdateDailyCap(ctx context.Context, name string, dailyCapMinutes int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewDepartmentRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetByName(ctx context.Context, name string) (Department, error) {
	query := `SELECT id, name, audit_table, daily_cap_minutes FROM mis_department WHERE name = $1`
	var d Department
	err := r.db.QueryRow(ctx, query, name).Scan(&d.Id, &d.Name, &d.AuditTable, &d.DailyCapMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrDepartmentNotFound
	} else if err != nil {
		log.Errorf("failed to get department %q: %v", name, err)
		return Department{}, err
	}
	return d, nil
}

func (r *RepoImpl) List(ctx context.Context) ([]Department, error) {
	query := `SELECT id, name, audit_table, daily_cap_minutes FROM mis_department ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to query departments: %v", err)
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.Id, &d.Name, &d.AuditTable, &d.DailyCapMinutes); err != nil {
			log.Errorf("failed to scan department: %v", err)
			return nil, err
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over departments: %v", err)
		return nil, err
	}
	return departments, nil
}

func (r *RepoImpl) UpdateDailyCap(ctx context.Context, name string, dailyCapMinutes int) (bool, error) {
	tag, err := r.db.Exec(ctx, "UPDATE mis_department SET daily_cap_minutes = $1 WHERE name = $2", dailyCapMinutes, name)
	if err != nil {
		log.Errorf("failed to update daily cap for %q: %v", name, err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
