package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/feedback-api/internal/domain"
	"gorm.io/datatypes"
)

type mockUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return m.withManager(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return m.withManager(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) ListDirectReports(ctx context.Context, managerID int64) ([]domain.User, error) {
	result := []domain.User{}
	for _, u := range m.users {
		if u.ReportsTo(managerID) {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockUserRepo) ListManagers(ctx context.Context) ([]domain.User, error) {
	result := []domain.User{}
	for _, u := range m.users {
		if u.IsManager() {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// withManager копирует запись и подгружает руководителя, как Preload в хранилище
func (m *mockUserRepo) withManager(u *domain.User) *domain.User {
	copied := *u
	copied.Manager = nil
	if u.ManagerID != nil {
		if manager, ok := m.users[*u.ManagerID]; ok {
			mc := *manager
			mc.Manager = nil
			copied.Manager = &mc
		}
	}
	return &copied
}

func (m *mockUserRepo) add(name string, role domain.Role, managerID *int64) *domain.User {
	user := &domain.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "hashed:secret-password",
		Role:         role,
		ManagerID:    managerID,
	}
	_ = m.Create(context.Background(), user)
	return user
}

type mockFeedbackRepo struct {
	items  map[int64]*domain.Feedback
	nextID int64
	clock  time.Time
}

func newMockFeedbackRepo() *mockFeedbackRepo {
	return &mockFeedbackRepo{
		items:  make(map[int64]*domain.Feedback),
		nextID: 1,
		clock:  time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *mockFeedbackRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *mockFeedbackRepo) Create(ctx context.Context, feedback *domain.Feedback) error {
	feedback.ID = m.nextID
	feedback.CreatedAt = m.tick()
	feedback.Tags = datatypes.JSONSlice[string](domain.NormalizeTags(feedback.Tags))
	m.nextID++
	stored := *feedback
	m.items[feedback.ID] = &stored
	return nil
}

func (m *mockFeedbackRepo) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	if f, ok := m.items[id]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, domain.ErrFeedbackNotFound
}

func (m *mockFeedbackRepo) list(match func(*domain.Feedback) bool) []domain.Feedback {
	result := []domain.Feedback{}
	for _, f := range m.items {
		if match(f) {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockFeedbackRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Feedback, error) {
	return m.list(func(f *domain.Feedback) bool { return f.EmployeeID == employeeID }), nil
}

func (m *mockFeedbackRepo) ListByManager(ctx context.Context, managerID int64) ([]domain.Feedback, error) {
	return m.list(func(f *domain.Feedback) bool { return f.ManagerID == managerID }), nil
}

func (m *mockFeedbackRepo) Update(ctx context.Context, id int64, patch domain.FeedbackPatch) (*domain.Feedback, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	if patch.IsEmpty() {
		copied := *f
		return &copied, nil
	}
	if patch.Strengths != nil {
		f.Strengths = *patch.Strengths
	}
	if patch.AreasToImprove != nil {
		f.AreasToImprove = *patch.AreasToImprove
	}
	if patch.Sentiment != nil {
		f.Sentiment = *patch.Sentiment
	}
	if patch.Tags != nil {
		f.Tags = domain.NormalizeTags(*patch.Tags)
	}
	if patch.IsAnonymous != nil {
		f.IsAnonymous = *patch.IsAnonymous
	}
	now := m.tick()
	f.UpdatedAt = &now
	copied := *f
	return &copied, nil
}

func (m *mockFeedbackRepo) Acknowledge(ctx context.Context, id int64) (*domain.Feedback, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	if !f.Acknowledged {
		now := m.tick()
		f.Acknowledged = true
		f.AcknowledgedAt = &now
	}
	copied := *f
	return &copied, nil
}

func (m *mockFeedbackRepo) SetEmployeeComment(ctx context.Context, id int64, comment string) (*domain.Feedback, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	f.EmployeeComment = &comment
	copied := *f
	return &copied, nil
}

// fakeHasher считает стоимость вызовов, чтобы проверить "сжигание" сравнения
type fakeHasher struct {
	verifies int
	burns    int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(hash, password string) bool {
	h.verifies++
	return hash == "hashed:"+password
}

func (h *fakeHasher) Burn(password string) {
	h.burns++
}

var errBadToken = errors.New("bad token")

type fakeTokens struct{}

func (fakeTokens) Issue(email string) (string, error) {
	return "token:" + email, nil
}

func (fakeTokens) Parse(token string) (string, error) {
	email, ok := strings.CutPrefix(token, "token:")
	if !ok || email == "" {
		return "", errBadToken
	}
	return email, nil
}

func (fakeTokens) TTL() time.Duration {
	return 30 * time.Minute
}
