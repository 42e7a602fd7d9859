package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/repository"
)

// ── Mock Mailer ──

type mockMailer struct{}

func (mockMailer) Send(_ context.Context, _, _, _ string) error { return nil }

// ── Mock UserRepository ──

type mockUserRepo struct {
	users      map[string]*model.User
	admissions *mockAdmissionResultRepo
	seq        int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) ListActiveByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role && u.IsActive && u.ArchivedAt == nil {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) ListArchived(_ context.Context, filter repository.ArchivedUserFilter) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.ArchivedAt == nil {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Year != nil && (u.ArchiveYear == nil || *u.ArchiveYear != *filter.Year) {
			continue
		}
		if (filter.School != "" || len(filter.Statuses) > 0) && !m.matchAdmission(u.ID, filter) {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) matchAdmission(studentID string, filter repository.ArchivedUserFilter) bool {
	if m.admissions == nil {
		return false
	}
	for _, r := range m.admissions.results[studentID] {
		if filter.School != "" && !strings.Contains(r.SchoolName, filter.School) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsString(filter.Statuses, r.Status) {
			continue
		}
		return true
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts   map[string]*model.Shift
	bookings *mockBookingRepo
	users    *mockUserRepo
	seq      int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) overlaps(instructorID string, start, end time.Time) bool {
	for _, sh := range m.shifts {
		if sh.InstructorID == instructorID && sh.StartTime.Before(end) && sh.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (m *mockShiftRepo) insert(shift *model.Shift) {
	if shift.ID == "" {
		m.seq++
		shift.ID = fmt.Sprintf("shift-%d", m.seq)
	}
	m.shifts[shift.ID] = shift
}

func (m *mockShiftRepo) CreateChecked(_ context.Context, shift *model.Shift) error {
	if m.overlaps(shift.InstructorID, shift.StartTime, shift.EndTime) {
		return repository.ErrShiftOverlap
	}
	m.insert(shift)
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	sh, ok := m.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sh
	if m.users != nil {
		if u, ok := m.users.users[sh.InstructorID]; ok {
			instructor := *u
			copied.Instructor = &instructor
		}
	}
	if m.bookings != nil {
		copied.Bookings = m.bookings.confirmedForShift(id)
	}
	return &copied, nil
}

func (m *mockShiftRepo) HasOverlap(_ context.Context, instructorID string, start, end time.Time) (bool, error) {
	return m.overlaps(instructorID, start, end), nil
}

func (m *mockShiftRepo) ListByInstructor(_ context.Context, instructorID string, from time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, sh := range m.shifts {
		if sh.InstructorID == instructorID && !sh.StartTime.Before(from) {
			copied := *sh
			if m.bookings != nil {
				copied.Bookings = m.bookings.confirmedForShift(sh.ID)
			}
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListPublishedByInstructor(_ context.Context, instructorID string, from time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, sh := range m.shifts {
		if sh.InstructorID == instructorID && sh.IsPublished && !sh.StartTime.Before(from) {
			copied := *sh
			if m.bookings != nil {
				copied.Bookings = m.bookings.confirmedForShift(sh.ID)
			}
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListAllFrom(_ context.Context, from time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, sh := range m.shifts {
		if !sh.StartTime.Before(from) {
			copied := *sh
			if m.users != nil {
				if u, ok := m.users.users[sh.InstructorID]; ok {
					instructor := *u
					copied.Instructor = &instructor
				}
			}
			if m.bookings != nil {
				copied.Bookings = m.bookings.confirmedForShift(sh.ID)
			}
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) CountByInstructor(_ context.Context, instructorID string, from, to time.Time) (int64, error) {
	var count int64
	for _, sh := range m.shifts {
		if sh.InstructorID == instructorID && sh.IsPublished &&
			!sh.StartTime.Before(from) && sh.StartTime.Before(to) {
			count++
		}
	}
	return count, nil
}

func (m *mockShiftRepo) DeleteWithBookings(_ context.Context, id string) error {
	if m.bookings != nil {
		m.bookings.deleteForShift(id)
	}
	delete(m.shifts, id)
	return nil
}

// ── Mock BookingRepository ──

type mockBookingRepo struct {
	bookings map[string]*model.Booking
	shifts   *mockShiftRepo
	users    *mockUserRepo
	reports  *mockReportRepo
	seq      int
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.Booking)}
}

func (m *mockBookingRepo) insert(booking *model.Booking) {
	if booking.ID == "" {
		m.seq++
		booking.ID = fmt.Sprintf("booking-%d", m.seq)
	}
	m.bookings[booking.ID] = booking
}

func (m *mockBookingRepo) confirmedForShift(shiftID string) []model.Booking {
	var result []model.Booking
	for _, b := range m.bookings {
		if b.ShiftID == shiftID && b.Status == model.BookingStatusConfirmed {
			copied := *b
			if m.users != nil {
				if u, ok := m.users.users[b.StudentID]; ok {
					student := *u
					copied.Student = &student
				}
			}
			result = append(result, copied)
		}
	}
	return result
}

func (m *mockBookingRepo) deleteForShift(shiftID string) {
	for id, b := range m.bookings {
		if b.ShiftID == shiftID {
			delete(m.bookings, id)
		}
	}
}

func (m *mockBookingRepo) studentOverlaps(studentID string, start, end time.Time) bool {
	for _, b := range m.bookings {
		if b.StudentID != studentID || b.Status != model.BookingStatusConfirmed {
			continue
		}
		sh, ok := m.shifts.shifts[b.ShiftID]
		if !ok {
			continue
		}
		if sh.StartTime.Before(end) && sh.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (m *mockBookingRepo) CreateChecked(_ context.Context, booking *model.Booking) error {
	sh, ok := m.shifts.shifts[booking.ShiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if sh.Type == model.ShiftTypeIndividual {
		for _, b := range m.bookings {
			if b.ShiftID == sh.ID && b.Status == model.BookingStatusConfirmed {
				return repository.ErrSlotTaken
			}
		}
	}
	if m.studentOverlaps(booking.StudentID, sh.StartTime, sh.EndTime) {
		return repository.ErrStudentOverlap
	}
	m.insert(booking)
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	if sh, ok := m.shifts.shifts[b.ShiftID]; ok {
		shift := *sh
		if m.users != nil {
			if u, ok := m.users.users[sh.InstructorID]; ok {
				instructor := *u
				shift.Instructor = &instructor
			}
		}
		copied.Shift = &shift
	}
	if m.users != nil {
		if u, ok := m.users.users[b.StudentID]; ok {
			student := *u
			copied.Student = &student
		}
	}
	if m.reports != nil {
		if r, ok := m.reports.byBooking[id]; ok {
			report := *r
			copied.Report = &report
		}
	}
	return &copied, nil
}

func (m *mockBookingRepo) HasConfirmedForShift(_ context.Context, shiftID string) (bool, error) {
	for _, b := range m.bookings {
		if b.ShiftID == shiftID && b.Status == model.BookingStatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookingRepo) StudentHasOverlap(_ context.Context, studentID string, start, end time.Time) (bool, error) {
	return m.studentOverlaps(studentID, start, end), nil
}

func (m *mockBookingRepo) ListConfirmedByStudent(_ context.Context, studentID string) ([]model.Booking, error) {
	var result []model.Booking
	for id, b := range m.bookings {
		if b.StudentID == studentID && b.Status == model.BookingStatusConfirmed {
			copied, _ := m.GetByID(context.Background(), id)
			result = append(result, *copied)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.Booking, error) {
	var result []model.Booking
	for id, b := range m.bookings {
		sh, ok := m.shifts.shifts[b.ShiftID]
		if !ok || sh.InstructorID != instructorID {
			continue
		}
		copied, _ := m.GetByID(context.Background(), id)
		result = append(result, *copied)
	}
	return result, nil
}

func (m *mockBookingRepo) CountCompletedByInstructor(_ context.Context, instructorID string, from, to time.Time) (int64, error) {
	var count int64
	for _, b := range m.bookings {
		if b.Status != model.BookingStatusConfirmed {
			continue
		}
		sh, ok := m.shifts.shifts[b.ShiftID]
		if !ok || sh.InstructorID != instructorID {
			continue
		}
		if !sh.EndTime.Before(from) && sh.EndTime.Before(to) {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	delete(m.bookings, id)
	return nil
}

// ── Mock ScheduleRequestRepository ──

type mockScheduleRequestRepo struct {
	requests map[string]*model.ScheduleRequest
	shifts   *mockShiftRepo
	bookings *mockBookingRepo
	users    *mockUserRepo
	seq      int
}

func newMockScheduleRequestRepo() *mockScheduleRequestRepo {
	return &mockScheduleRequestRepo{requests: make(map[string]*model.ScheduleRequest)}
}

func (m *mockScheduleRequestRepo) Create(_ context.Context, request *model.ScheduleRequest) error {
	if request.ID == "" {
		m.seq++
		request.ID = fmt.Sprintf("request-%d", m.seq)
	}
	m.requests[request.ID] = request
	return nil
}

func (m *mockScheduleRequestRepo) GetByID(_ context.Context, id string) (*model.ScheduleRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	if m.users != nil {
		if u, ok := m.users.users[r.StudentID]; ok {
			student := *u
			copied.Student = &student
		}
		if u, ok := m.users.users[r.InstructorID]; ok {
			instructor := *u
			copied.Instructor = &instructor
		}
	}
	return &copied, nil
}

func (m *mockScheduleRequestRepo) ListPendingByInstructor(_ context.Context, instructorID string) ([]model.ScheduleRequest, error) {
	var result []model.ScheduleRequest
	for _, r := range m.requests {
		if r.InstructorID == instructorID && r.Status == model.RequestStatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockScheduleRequestRepo) ListByStudent(_ context.Context, studentID string) ([]model.ScheduleRequest, error) {
	var result []model.ScheduleRequest
	for _, r := range m.requests {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockScheduleRequestRepo) UpdateStatus(_ context.Context, id, status string) error {
	r, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

func (m *mockScheduleRequestRepo) Approve(_ context.Context, request *model.ScheduleRequest, shift *model.Shift, booking *model.Booking) error {
	r, ok := m.requests[request.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = model.RequestStatusApproved
	m.shifts.insert(shift)
	booking.ShiftID = shift.ID
	m.bookings.insert(booking)
	return nil
}

// ── Mock ReportRepository ──

type mockReportRepo struct {
	byBooking map[string]*model.Report
	seq       int
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{byBooking: make(map[string]*model.Report)}
}

func (m *mockReportRepo) Create(_ context.Context, report *model.Report) error {
	if report.ID == "" {
		m.seq++
		report.ID = fmt.Sprintf("report-%d", m.seq)
	}
	m.byBooking[report.BookingID] = report
	return nil
}

func (m *mockReportRepo) GetByBookingID(_ context.Context, bookingID string) (*model.Report, error) {
	if r, ok := m.byBooking[bookingID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepo) ExistsByBookingID(_ context.Context, bookingID string) (bool, error) {
	_, ok := m.byBooking[bookingID]
	return ok, nil
}

// ── Mock AdmissionResultRepository ──

type mockAdmissionResultRepo struct {
	results map[string][]model.AdmissionResult // studentID → results
	seq     int
}

func newMockAdmissionResultRepo() *mockAdmissionResultRepo {
	return &mockAdmissionResultRepo{results: make(map[string][]model.AdmissionResult)}
}

func (m *mockAdmissionResultRepo) ListByStudent(_ context.Context, studentID string) ([]model.AdmissionResult, error) {
	return m.results[studentID], nil
}

func (m *mockAdmissionResultRepo) ReplaceByStudent(_ context.Context, studentID string, results []model.AdmissionResult) error {
	for i := range results {
		m.seq++
		results[i].ID = fmt.Sprintf("admission-%d", m.seq)
		results[i].StudentID = studentID
	}
	m.results[studentID] = results
	return nil
}

// ── Mock ArchiveAccessRepository ──

type mockArchiveAccessRepo struct {
	accesses map[string]*model.ArchiveAccess // "instructorID:studentID" → access
	users    *mockUserRepo
	seq      int
}

func newMockArchiveAccessRepo() *mockArchiveAccessRepo {
	return &mockArchiveAccessRepo{accesses: make(map[string]*model.ArchiveAccess)}
}

func accessKey(instructorID, studentID string) string {
	return instructorID + ":" + studentID
}

func (m *mockArchiveAccessRepo) Grant(_ context.Context, access *model.ArchiveAccess) error {
	key := accessKey(access.InstructorID, access.StudentID)
	if _, ok := m.accesses[key]; ok {
		return nil // 冪等
	}
	m.seq++
	access.ID = fmt.Sprintf("access-%d", m.seq)
	m.accesses[key] = access
	return nil
}

func (m *mockArchiveAccessRepo) Revoke(_ context.Context, instructorID, studentID string) error {
	delete(m.accesses, accessKey(instructorID, studentID))
	return nil
}

func (m *mockArchiveAccessRepo) Exists(_ context.Context, instructorID, studentID string) (bool, error) {
	_, ok := m.accesses[accessKey(instructorID, studentID)]
	return ok, nil
}

func (m *mockArchiveAccessRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.ArchiveAccess, error) {
	var result []model.ArchiveAccess
	for _, a := range m.accesses {
		if a.InstructorID != instructorID {
			continue
		}
		copied := *a
		if m.users != nil {
			if u, ok := m.users.users[a.StudentID]; ok {
				student := *u
				copied.Student = &student
			}
		}
		result = append(result, copied)
	}
	return result, nil
}

func (m *mockArchiveAccessRepo) ListAll(_ context.Context) ([]model.ArchiveAccess, error) {
	var result []model.ArchiveAccess
	for _, a := range m.accesses {
		copied := *a
		if m.users != nil {
			if u, ok := m.users.users[a.InstructorID]; ok {
				instructor := *u
				copied.Instructor = &instructor
			}
			if u, ok := m.users.users[a.StudentID]; ok {
				student := *u
				copied.Student = &student
			}
		}
		result = append(result, copied)
	}
	return result, nil
}

// ── Mock GlobalSettingRepository ──

type mockGlobalSettingRepo struct {
	settings map[string]*model.GlobalSetting
}

func newMockGlobalSettingRepo() *mockGlobalSettingRepo {
	return &mockGlobalSettingRepo{settings: make(map[string]*model.GlobalSetting)}
}

func (m *mockGlobalSettingRepo) Get(_ context.Context, key string) (*model.GlobalSetting, error) {
	if s, ok := m.settings[key]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGlobalSettingRepo) Upsert(_ context.Context, setting *model.GlobalSetting) error {
	m.settings[setting.Key] = setting
	return nil
}

func (m *mockGlobalSettingRepo) List(_ context.Context) ([]model.GlobalSetting, error) {
	var result []model.GlobalSetting
	for _, s := range m.settings {
		result = append(result, *s)
	}
	return result, nil
}

// ── テスト用の Repository 集約 ──

type mockRepos struct {
	users     *mockUserRepo
	shifts    *mockShiftRepo
	bookings  *mockBookingRepo
	requests  *mockScheduleRequestRepo
	reports   *mockReportRepo
	admission *mockAdmissionResultRepo
	accesses  *mockArchiveAccessRepo
	settings  *mockGlobalSettingRepo
	repo      *repository.Repository
}

func newMockRepos() *mockRepos {
	users := newMockUserRepo()
	shifts := newMockShiftRepo()
	bookings := newMockBookingRepo()
	requests := newMockScheduleRequestRepo()
	reports := newMockReportRepo()
	admission := newMockAdmissionResultRepo()
	accesses := newMockArchiveAccessRepo()
	settings := newMockGlobalSettingRepo()

	users.admissions = admission
	shifts.bookings = bookings
	shifts.users = users
	bookings.shifts = shifts
	bookings.users = users
	bookings.reports = reports
	requests.shifts = shifts
	requests.bookings = bookings
	requests.users = users
	accesses.users = users

	return &mockRepos{
		users:     users,
		shifts:    shifts,
		bookings:  bookings,
		requests:  requests,
		reports:   reports,
		admission: admission,
		accesses:  accesses,
		settings:  settings,
		repo: &repository.Repository{
			User:            users,
			Shift:           shifts,
			Booking:         bookings,
			ScheduleRequest: requests,
			Report:          reports,
			AdmissionResult: admission,
			ArchiveAccess:   accesses,
			GlobalSetting:   settings,
		},
	}
}

func newTestNotifier() *Notifier {
	return NewNotifier(mockMailer{}, zap.NewNop())
}
