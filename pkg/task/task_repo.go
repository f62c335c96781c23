package task

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTaskNotFound = errors.New("task not found")

type Repo interface {
	CreateTask(ctx context.Context, task Task) (int, error)
	GetTask(ctx context.Context, id int) (Task, error)
	ListByDepartment(ctx context.Context, department string) ([]Task, error)
	ListByAssignee(ctx context.Context, assigneeMail string) ([]Task, error)
	UpdateStatus(ctx context.Context, id int, status Status) (bool, error)
	DeleteTask(ctx context.Context, id int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateTask(ctx context.Context, task Task) (int, error) {
	query := `INSERT INTO mis_tasks (department, assignee_mail, title, description, status, assigned_by, due_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var dueDateParam interface{}
	if !task.DueDate.IsZero() {
		dueDateParam = task.DueDate.Format("2006-01-02")
	} else {
		dueDateParam = nil
	}

	var id int
	err := r.db.QueryRow(ctx, query,
		task.Department,
		task.AssigneeMail,
		task.Title,
		task.Description,
		task.Status,
		task.AssignedBy,
		dueDateParam,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create task: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetTask(ctx context.Context, id int) (Task, error) {
	query := `SELECT id, department, assignee_mail, title, description, status, assigned_by, due_date, created_at
				FROM mis_tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	} else if err != nil {
		log.Errorf("failed to get task %d: %v", id, err)
		return Task{}, err
	}
	return task, nil
}

func (r *RepoImpl) ListByDepartment(ctx context.Context, department string) ([]Task, error) {
	query := `SELECT id, department, assignee_mail, title, description, status, assigned_by, due_date, created_at
				FROM mis_tasks WHERE department = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, department)
}

func (r *RepoImpl) ListByAssignee(ctx context.Context, assigneeMail string) ([]Task, error) {
	query := `SELECT id, department, assignee_mail, title, description, status, assigned_by, due_date, created_at
				FROM mis_tasks WHERE assignee_mail = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, assigneeMail)
}

func (r *RepoImpl) queryTasks(ctx context.Context, query string, arg any) ([]Task, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		log.Errorf("failed to query tasks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Errorf("failed to scan task: %v", err)
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over tasks: %v", err)
		return nil, err
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (Task, error) {
	var task Task
	var dueDate *time.Time
	err := row.Scan(
		&task.Id,
		&task.Department,
		&task.AssigneeMail,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.AssignedBy,
		&dueDate,
		&task.CreatedAt,
	)
	if err != nil {
		return Task{}, err
	}
	if dueDate != nil {
		task.DueDate = *dueDate
	}
	return task, nil
}

func (r *RepoImpl) UpdateStatus(ctx context.Context, id int, status Status) (bool, error) {
	tag, err := r.db.Exec(ctx, "UPDATE mis_tasks SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		log.Errorf("failed to update task status: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) DeleteTask(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM mis_tasks WHERE id = $1", id)
	if err != nil {
		log.Errorf("failed to delete task: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
