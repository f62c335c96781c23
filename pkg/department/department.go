package department

// Department is one row of the enumerated department registry. Submissions
// are stored in the department's pre-declared audit partition table; the
// partition name is never derived from request input.
type Department struct {
	Id   int
	Name string
	// AuditTable is the fixed table name holding this department's audit-data
	// submissions. Declared by migration, validated against this registry.
	AuditTable string
	// DailyCapMinutes is the daily time budget for one user in this
	// department on one calendar date.
	DailyCapMinutes int
}
