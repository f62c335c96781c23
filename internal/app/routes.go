package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Authentication
	r.HandleFunc("/api/login", deps.AuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/logout", deps.AuthHandler.Logout).Methods("DELETE")

	// Audit data
	r.HandleFunc("/api/audit-data", deps.SubmissionHandler.SubmitAuditData).Methods("POST")
	r.HandleFunc("/api/audit-data", deps.ReportHandler.ListAuditData).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/audit-data/summary", deps.ReportHandler.Summary).Queries("from", "{from}", "to", "{to}").Methods("GET")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.ListUsers).Methods("GET")
	r.HandleFunc("/api/user/mail-availability", deps.UserHandler.IsMailAvailable).Methods("GET").Queries("mail", "{mail}")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Departments
	r.HandleFunc("/api/department", deps.DepartmentHandler.List).Methods("GET")
	r.HandleFunc("/api/department/{name}/daily-cap", deps.DepartmentHandler.SetDailyCap).Methods("PUT")

	// Tasks
	r.HandleFunc("/api/task", deps.TaskHandler.Assign).Methods("POST")
	r.HandleFunc("/api/task", deps.TaskHandler.List).Methods("GET")
	r.HandleFunc("/api/task/mine", deps.TaskHandler.ListMine).Methods("GET")
	r.HandleFunc("/api/task/{taskId}/status", deps.TaskHandler.UpdateStatus).Methods("PUT")
	r.HandleFunc("/api/task/{taskId}", deps.TaskHandler.Delete).Methods("DELETE")
}
