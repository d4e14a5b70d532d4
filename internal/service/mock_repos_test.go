package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"intern-dtr/backend/internal/model"
	"intern-dtr/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users       map[string]*model.User // key: user_id
	internships *mockInternshipRepo    // GetByID 模拟 Preload 实习档案
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if m.internships != nil {
		if i, err := m.internships.GetByUserID(context.Background(), u.UserID); err == nil {
			u.Internship = i
		}
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock InternshipRepository ──

type mockInternshipRepo struct {
	users       *mockUserRepo
	internships map[string]*model.Internship // key: internship_id
}

func newMockInternshipRepo(users *mockUserRepo) *mockInternshipRepo {
	return &mockInternshipRepo{
		users:       users,
		internships: make(map[string]*model.Internship),
	}
}

func (m *mockInternshipRepo) CreateWithUser(ctx context.Context, user *model.User, internship *model.Internship) error {
	if err := m.users.Create(ctx, user); err != nil {
		return err
	}
	internship.UserID = user.UserID
	if internship.InternshipID == "" {
		internship.InternshipID = "int-" + user.Username
	}
	m.internships[internship.InternshipID] = internship
	return nil
}

func (m *mockInternshipRepo) GetByID(_ context.Context, id string) (*model.Internship, error) {
	if i, ok := m.internships[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInternshipRepo) GetByUserID(_ context.Context, userID string) (*model.Internship, error) {
	for _, i := range m.internships {
		if i.UserID == userID {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// UpdateInfo 与真实实现一致：只写基本信息列，绝不触碰 total_hours_logged
func (m *mockInternshipRepo) UpdateInfo(_ context.Context, internship *model.Internship) error {
	stored, ok := m.internships[internship.InternshipID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.CompanyName = internship.CompanyName
	stored.SupervisorName = internship.SupervisorName
	stored.StartDate = internship.StartDate
	stored.TotalHoursRequired = internship.TotalHoursRequired
	return nil
}

// ── Mock DailyRecordRepository ──

type mockDailyRecordRepo struct {
	internships *mockInternshipRepo
	records     map[string]*model.DailyTimeRecord // key: internship_id|date
}

func newMockDailyRecordRepo(internships *mockInternshipRepo) *mockDailyRecordRepo {
	return &mockDailyRecordRepo{
		internships: internships,
		records:     make(map[string]*model.DailyTimeRecord),
	}
}

func recordKey(internshipID string, date time.Time) string {
	return internshipID + "|" + date.Format("2006-01-02")
}

func (m *mockDailyRecordRepo) GetByDate(_ context.Context, internshipID string, date time.Time) (*model.DailyTimeRecord, error) {
	if r, ok := m.records[recordKey(internshipID, date)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyRecordRepo) ListByYear(_ context.Context, internshipID string, year int) ([]model.DailyTimeRecord, error) {
	var result []model.DailyTimeRecord
	for _, r := range m.records {
		if r.InternshipID == internshipID && r.RecordDate.Year() == year {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordDate.Before(result[j].RecordDate)
	})
	return result, nil
}

func (m *mockDailyRecordRepo) CountWorkDays(_ context.Context, internshipID string) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.InternshipID == internshipID && !r.IsHoliday && !r.IsWeekend {
			count++
		}
	}
	return count, nil
}

func (m *mockDailyRecordRepo) SaveAndReconcile(_ context.Context, record *model.DailyTimeRecord) error {
	if record.RecordID == "" {
		record.RecordID = "rec-" + recordKey(record.InternshipID, record.RecordDate)
	}
	m.records[recordKey(record.InternshipID, record.RecordDate)] = record
	m.reconcile(record.InternshipID)
	return nil
}

func (m *mockDailyRecordRepo) DeleteAndReconcile(_ context.Context, internshipID string, date time.Time) (bool, error) {
	key := recordKey(internshipID, date)
	if _, ok := m.records[key]; !ok {
		return false, nil
	}
	delete(m.records, key)
	m.reconcile(internshipID)
	return true, nil
}

func (m *mockDailyRecordRepo) MarkHolidaysAndReconcile(_ context.Context, internshipID string, dates []time.Time) error {
	for _, date := range dates {
		key := recordKey(internshipID, date)
		r, ok := m.records[key]
		if !ok {
			r = &model.DailyTimeRecord{
				RecordID:     "rec-" + key,
				InternshipID: internshipID,
				RecordDate:   date,
			}
			m.records[key] = r
		}
		r.IsHoliday = true
		r.TotalHours = 0
	}
	m.reconcile(internshipID)
	return nil
}

// reconcile 与真实实现同口径：全量 SUM 明细回写缓存
func (m *mockDailyRecordRepo) reconcile(internshipID string) {
	var total float64
	for _, r := range m.records {
		if r.InternshipID == internshipID {
			total += r.TotalHours
		}
	}
	for _, i := range m.internships.internships {
		if i.InternshipID == internshipID {
			i.TotalHoursLogged = total
		}
	}
}

// ── 测试辅助 ──

func newTestRepository() (*repository.Repository, *mockUserRepo, *mockInternshipRepo, *mockDailyRecordRepo) {
	userRepo := newMockUserRepo()
	internshipRepo := newMockInternshipRepo(userRepo)
	userRepo.internships = internshipRepo
	recordRepo := newMockDailyRecordRepo(internshipRepo)

	repo := &repository.Repository{
		User:        userRepo,
		Internship:  internshipRepo,
		DailyRecord: recordRepo,
	}
	return repo, userRepo, internshipRepo, recordRepo
}

// createTestInternship 预置一个账号 + 实习档案（1:1）
func createTestInternship(internshipRepo *mockInternshipRepo, username string, required float64) *model.Internship {
	user := &model.User{
		Username: username,
		Email:    username + "@test.com",
	}
	internship := &model.Internship{
		CompanyName:        "测试公司",
		SupervisorName:     "测试导师",
		StartDate:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalHoursRequired: required,
	}
	_ = internshipRepo.CreateWithUser(context.Background(), user, internship)
	return internship
}
