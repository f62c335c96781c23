package submission

import (
	"context"
	"errors"
	"sync"
)

// StubSubmissionRepo keeps submissions in memory, partitioned by audit table
// name the way the real store is. Fault fields let tests simulate storage
// failures.
type StubSubmissionRepo struct {
	mu        sync.Mutex
	data      map[string][]map[string]any
	ReadFail  error
	WriteFail error
}

func NewStubSubmissionRepo() *StubSubmissionRepo {
	return &StubSubmissionRepo{data: map[string][]map[string]any{}}
}

var ErrStubFailure = errors.New("simulated storage failure")

func (s *StubSubmissionRepo) FindByKey(ctx context.Context, auditTable, userMail, date string) ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadFail != nil {
		return nil, s.ReadFail
	}
	var result []map[string]any
	for _, row := range s.data[auditTable] {
		if row["User_Mail"] == userMail && row["Date"] == date {
			result = append(result, row)
		}
	}
	return result, nil
}

func (s *StubSubmissionRepo) Insert(ctx context.Context, auditTable string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteFail != nil {
		return s.WriteFail
	}
	row := make(map[string]any, len(AuditSchema()))
	for _, f := range AuditSchema() {
		row[f.Name] = fieldValue(f, fields)
	}
	s.data[auditTable] = append(s.data[auditTable], row)
	return nil
}

// Rows returns all rows stored in the given partition, in insertion order.
func (s *StubSubmissionRepo) Rows(auditTable string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[auditTable]
}

func (s *StubSubmissionRepo) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string][]map[string]any{}
	s.ReadFail = nil
	s.WriteFail = nil
}
