// Package repositorytest provides in-memory repository implementations that
// mirror the Postgres semantics (owner scoping, compare-and-set status
// updates, ordering) closely enough for use-case and handler tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

// CandidateStore is an in-memory CandidateRepository.
type CandidateStore struct {
	mu         sync.Mutex
	candidates map[string]domain.TaskCandidate
	// stalled marks candidate ids that have a confirming task despite
	// still being "new"; see MarkStalled.
	stalled map[string]bool

	// FailWith, when set, is returned by every operation.
	FailWith error
}

var _ repository.CandidateRepository = (*CandidateStore)(nil)

func NewCandidateStore(seed ...domain.TaskCandidate) *CandidateStore {
	s := &CandidateStore{candidates: make(map[string]domain.TaskCandidate)}
	for _, c := range seed {
		s.candidates[c.ID] = c
	}
	return s
}

// Put inserts or replaces a candidate, standing in for the ingestion pipeline.
func (s *CandidateStore) Put(c domain.TaskCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[c.ID] = c
}

func (s *CandidateStore) GetByID(_ context.Context, id, ownerID string) (*domain.TaskCandidate, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok || c.UserID != ownerID {
		return nil, nil
	}
	out := c
	return &out, nil
}

func (s *CandidateStore) List(_ context.Context, ownerID string, filter repository.CandidateFilter) ([]domain.TaskCandidate, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TaskCandidate
	for _, c := range s.candidates {
		if c.UserID != ownerID {
			continue
		}
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *CandidateStore) ListNew(_ context.Context, ownerID string) ([]domain.TaskCandidate, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TaskCandidate
	for _, c := range s.candidates {
		if c.UserID == ownerID && c.Status == domain.CandidateNew {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].ConfidenceScore, out[j].ConfidenceScore
		switch {
		case si != nil && sj != nil && *si != *sj:
			return *si > *sj
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *CandidateStore) SetStatus(_ context.Context, id, ownerID string, from, to domain.CandidateStatus) (*domain.TaskCandidate, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok || c.UserID != ownerID {
		return nil, domain.ErrCandidateNotFound
	}
	if c.Status != from {
		return nil, domain.ErrAlreadyProcessed
	}
	c.Status = to
	s.candidates[id] = c
	out := c
	return &out, nil
}

func (s *CandidateStore) ApplyEdit(_ context.Context, id, ownerID string, edit repository.CandidateEdit) (*domain.TaskCandidate, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok || c.UserID != ownerID {
		return nil, domain.ErrCandidateNotFound
	}
	if c.Status != domain.CandidateNew {
		return nil, domain.ErrAlreadyProcessed
	}
	c.Title = edit.Title
	c.Type = edit.Type
	if edit.Module != nil {
		c.Module = edit.Module
	}
	if edit.DueDate != nil {
		c.DueDate = edit.DueDate
	}
	if edit.Location != nil {
		c.Location = edit.Location
	}
	c.Status = domain.CandidateEdited
	s.candidates[id] = c
	out := c
	return &out, nil
}

func (s *CandidateStore) ListStalled(_ context.Context, limit int) ([]domain.TaskCandidate, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	// Stalled detection needs the task relation; tests wire it explicitly.
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TaskCandidate
	for _, c := range s.candidates {
		if c.Status == domain.CandidateNew && s.stalled != nil && s.stalled[c.ID] {
			out = append(out, c)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// MarkStalled links a candidate id to an existing task for ListStalled.
func (s *CandidateStore) MarkStalled(candidateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stalled == nil {
		s.stalled = make(map[string]bool)
	}
	s.stalled[candidateID] = true
}

// TaskStore is an in-memory TaskRepository.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]domain.Task

	FailWith error
}

func NewTaskStore(seed ...domain.Task) *TaskStore {
	s := &TaskStore{tasks: make(map[string]domain.Task)}
	for _, t := range seed {
		s.tasks[t.ID] = t
	}
	return s
}

var _ repository.TaskRepository = (*TaskStore)(nil)

// Put inserts or replaces a task without the candidate uniqueness check.
func (s *TaskStore) Put(t domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

func (s *TaskStore) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tasks {
		if existing.CandidateID == task.CandidateID {
			return nil, domain.ErrAlreadyProcessed
		}
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	s.tasks[task.ID] = *task
	out := *task
	return &out, nil
}

func (s *TaskStore) GetByID(_ context.Context, id, ownerID string) (*domain.Task, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, nil
	}
	out := t
	return &out, nil
}

func (s *TaskStore) List(_ context.Context, ownerID string, filter repository.TaskFilter) ([]domain.Task, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if t.UserID != ownerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		out = append(out, t)
	}
	sortTasksByDue(out)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	// Same paging contract as the Postgres repo: zero means unlimited,
	// explicit limits are capped.
	limit := filter.Limit
	if limit > repository.MaxPageSize {
		limit = repository.MaxPageSize
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *TaskStore) ListUpcoming(_ context.Context, ownerID string, limit int) ([]domain.Task, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if t.UserID == ownerID && t.Status == domain.TaskPending && t.DueDate != nil {
			out = append(out, t)
		}
	}
	sortTasksByDue(out)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *TaskStore) Update(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil, domain.ErrTaskNotFound
	}
	task.CreatedAt = existing.CreatedAt
	s.tasks[task.ID] = *task
	out := *task
	return &out, nil
}

func (s *TaskStore) Delete(_ context.Context, id, ownerID string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok && t.UserID == ownerID {
		delete(s.tasks, id)
	}
	return nil
}

func sortTasksByDue(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

// UserStore is an in-memory UserRepository.
type UserStore struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile

	FailWith error
}

func NewUserStore(seed ...domain.UserProfile) *UserStore {
	s := &UserStore{profiles: make(map[string]domain.UserProfile)}
	for _, p := range seed {
		s.profiles[p.ID] = p
	}
	return s
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = *profile
	out := *profile
	return &out, nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (s *UserStore) UpdateEmail(_ context.Context, id, email string) (*domain.UserProfile, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.Email = email
	s.profiles[id] = p
	out := p
	return &out, nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, id)
	return nil
}

// SourceStore is an in-memory SourceMessageRepository keyed by message id.
type SourceStore struct {
	mu       sync.Mutex
	messages map[string]domain.SourceMessage

	FailWith error
}

func NewSourceStore() *SourceStore {
	return &SourceStore{messages: make(map[string]domain.SourceMessage)}
}

var _ repository.SourceMessageRepository = (*SourceStore)(nil)

func (s *SourceStore) Put(id string, msg domain.SourceMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[id] = msg
}

func (s *SourceStore) GetSnippet(_ context.Context, id string) (*domain.SourceMessage, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[id]
	if !ok {
		return nil, nil
	}
	out := msg
	return &out, nil
}
