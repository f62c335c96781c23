package user

import "time"

// Role values match the strings stored in mis_user_data and submitted by the
// login form.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleTeamLead Role = "Team_Lead"
	RoleHR       Role = "HR"
	RoleDirector Role = "Director"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleTeamLead, RoleHR, RoleDirector:
		return true
	}
	return false
}

// CanManageUsers reports whether the role may create, update and delete
// employee accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleHR || r == RoleDirector
}

// CanAssignTasks reports whether the role may create and assign tasks.
func (r Role) CanAssignTasks() bool {
	return r == RoleTeamLead || r == RoleHR || r == RoleDirector
}

type User struct {
	Id         int
	Name       string
	Mail       string
	Role       Role
	Department string
	// PasswordHash is the bcrypt hash of the account password. Never exposed
	// through DTOs.
	PasswordHash string
	CreatedAt    time.Time
}
