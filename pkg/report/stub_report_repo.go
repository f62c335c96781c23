package report

import (
	"context"
	"sort"
)

// StubReportRepo serves canned audit rows from memory, partitioned by audit
// table name.
type StubReportRepo struct {
	data map[string][]map[string]any
}

func NewStubReportRepo() *StubReportRepo {
	return &StubReportRepo{data: map[string][]map[string]any{}}
}

func (s *StubReportRepo) Add(auditTable string, row map[string]any) {
	s.data[auditTable] = append(s.data[auditTable], row)
}

func (s *StubReportRepo) FindByDate(ctx context.Context, auditTable, date, userMail string) ([]map[string]any, error) {
	return s.collect(auditTable, func(row map[string]any) bool {
		return row["Date"] == date && (userMail == "" || row["User_Mail"] == userMail)
	}), nil
}

func (s *StubReportRepo) FindByDateRange(ctx context.Context, auditTable, from, to, userMail string) ([]map[string]any, error) {
	return s.collect(auditTable, func(row map[string]any) bool {
		date, _ := row["Date"].(string)
		return date >= from && date <= to && (userMail == "" || row["User_Mail"] == userMail)
	}), nil
}

func (s *StubReportRepo) collect(auditTable string, match func(map[string]any) bool) []map[string]any {
	var result []map[string]any
	for _, row := range s.data[auditTable] {
		if match(row) {
			result = append(result, row)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		di, _ := result[i]["Date"].(string)
		dj, _ := result[j]["Date"].(string)
		return di < dj
	})
	return result
}

func (s *StubReportRepo) Reset() {
	s.data = map[string][]map[string]any{}
}
