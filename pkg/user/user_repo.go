package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByMail(ctx context.Context, mail string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	GetUsersByDepartment(ctx context.Context, department string) ([]User, error)
	UpdateUser(ctx context.Context, userId int, user User) (bool, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
	IsMailAvailable(ctx context.Context, mail string) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (u *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO mis_user_data (user_name, user_mail, role, department, password_hash)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Name,
		user.Mail,
		user.Role,
		user.Department,
		user.PasswordHash,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, user_name, user_mail, role, department, password_hash, created_at
				FROM mis_user_data WHERE id = $1`
	return u.scanUser(u.db.QueryRow(ctx, query, id))
}

func (u *RepoImpl) GetUserByMail(ctx context.Context, mail string) (User, error) {
	query := `SELECT id, user_name, user_mail, role, department, password_hash, created_at
				FROM mis_user_data WHERE user_mail = $1`
	return u.scanUser(u.db.QueryRow(ctx, query, mail))
}

func (u *RepoImpl) scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.Id,
		&user.Name,
		&user.Mail,
		&user.Role,
		&user.Department,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, user_name, user_mail, role, department, password_hash, created_at
				FROM mis_user_data ORDER BY user_name`
	rows, err := u.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()
	return u.collectUsers(rows)
}

func (u *RepoImpl) GetUsersByDepartment(ctx context.Context, department string) ([]User, error) {
	query := `SELECT id, user_name, user_mail, role, department, password_hash, created_at
				FROM mis_user_data WHERE department = $1 ORDER BY user_name`
	rows, err := u.db.Query(ctx, query, department)
	if err != nil {
		log.Errorf("failed to query users by department: %v", err)
		return nil, err
	}
	defer rows.Close()
	return u.collectUsers(rows)
}

func (u *RepoImpl) collectUsers(rows pgx.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.Id,
			&user.Name,
			&user.Mail,
			&user.Role,
			&user.Department,
			&user.PasswordHash,
			&user.CreatedAt,
		); err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over users: %v", err)
		return nil, err
	}
	return users, nil
}

func (u *RepoImpl) UpdateUser(ctx context.Context, userId int, user User) (bool, error) {
	query := `UPDATE mis_user_data SET
					user_name = $1,
					role = $2,
					department = $3
				WHERE id = $4`
	tag, err := u.db.Exec(ctx, query, user.Name, user.Role, user.Department, userId)
	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (u *RepoImpl) DeleteUser(ctx context.Context, id int) (bool, error) {
	tag, err := u.db.Exec(ctx, "DELETE FROM mis_user_data WHERE id = $1", id)
	if err != nil {
		log.Errorf("failed to delete user: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (u *RepoImpl) IsMailAvailable(ctx context.Context, mail string) (bool, error) {
	var count int
	err := u.db.QueryRow(ctx, "SELECT COUNT(*) FROM mis_user_data WHERE user_mail = $1", mail).Scan(&count)
	if err != nil {
		log.Errorf("failed to check mail availability: %v", err)
		return false, err
	}
	return count == 0, nil
}
