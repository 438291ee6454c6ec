package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/campus-events-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	UpsertError error
	UpsertCalls int
	nextID      int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) GetBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	user, ok := m.Users[subjectID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return m.UpsertError
	}
	if user.ID == "" {
		m.nextID++
		user.ID = fmt.Sprintf("user-%d", m.nextID)
	}
	copied := *user
	m.Users[user.SubjectID] = &copied
	return nil
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	Profiles    map[string]*models.Profile
	CreateError error
	UpdateError error
	UpdateCalls int
	nextID      int
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		Profiles: make(map[string]*models.Profile),
	}
}

func (m *MockProfileRepository) GetBySubject(ctx context.Context, subjectID string) (*models.Profile, error) {
	profile, ok := m.Profiles[subjectID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if profile.ID == "" {
		m.nextID++
		profile.ID = fmt.Sprintf("profile-%d", m.nextID)
	}
	copied := *profile
	m.Profiles[profile.SubjectID] = &copied
	return nil
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	copied := *profile
	m.Profiles[profile.SubjectID] = &copied
	return nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	Events      map[string]*models.Event
	CreateError error
	nextID      int
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[string]*models.Event),
	}
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if event.ID == "" {
		m.nextID++
		event.ID = fmt.Sprintf("event-%d", m.nextID)
	}
	copied := *event
	m.Events[event.ID] = &copied
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, ok := m.Events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (m *MockEventRepository) ListPublished(ctx context.Context) ([]*models.Event, error) {
	return m.listByStatus(models.StatusPublished), nil
}

func (m *MockEventRepository) ListPending(ctx context.Context) ([]*models.Event, error) {
	return m.listByStatus(models.StatusPending), nil
}

func (m *MockEventRepository) Approve(ctx context.Context, id string, by models.UserSnapshot, at time.Time) (*models.Event, error) {
	event, ok := m.Events[id]
	if !ok || event.Status != models.StatusPending {
		return nil, nil
	}
	if err := event.Approve(by, at); err != nil {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (m *MockEventRepository) Reject(ctx context.Context, id string) (*models.Event, error) {
	event, ok := m.Events[id]
	if !ok || event.Status != models.StatusPending {
		return nil, nil
	}
	if err := event.Reject(); err != nil {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) (*models.Event, error) {
	event, ok := m.Events[id]
	if !ok {
		return nil, nil
	}
	delete(m.Events, id)
	return event, nil
}

func (m *MockEventRepository) listByStatus(status models.Status) []*models.Event {
	out := make([]*models.Event, 0)
	for _, event := range m.Events {
		if event.Status == status {
			copied := *event
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	Posts       map[string]*models.HackFinderPost
	CreateError error
	nextID      int
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts: make(map[string]*models.HackFinderPost),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.HackFinderPost) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if post.ID == "" {
		m.nextID++
		post.ID = fmt.Sprintf("post-%d", m.nextID)
	}
	copied := *post
	m.Posts[post.ID] = &copied
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.HackFinderPost, error) {
	post, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *MockPostRepository) ListPublished(ctx context.Context) ([]*models.HackFinderPost, error) {
	return m.listByStatus(models.StatusPublished), nil
}

func (m *MockPostRepository) ListPending(ctx context.Context) ([]*models.HackFinderPost, error) {
	return m.listByStatus(models.StatusPending), nil
}

func (m *MockPostRepository) Approve(ctx context.Context, id string, by models.UserSnapshot, at time.Time) (*models.HackFinderPost, error) {
	post, ok := m.Posts[id]
	if !ok || post.Status != models.StatusPending {
		return nil, nil
	}
	if err := post.Approve(by, at); err != nil {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *MockPostRepository) Reject(ctx context.Context, id string) (*models.HackFinderPost, error) {
	post, ok := m.Posts[id]
	if !ok || post.Status != models.StatusPending {
		return nil, nil
	}
	if err := post.Reject(); err != nil {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) (*models.HackFinderPost, error) {
	post, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	delete(m.Posts, id)
	return post, nil
}

func (m *MockPostRepository) listByStatus(status models.Status) []*models.HackFinderPost {
	out := make([]*models.HackFinderPost, 0)
	for _, post := range m.Posts {
		if post.Status == status {
			copied := *post
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
