package service

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/repository"
)

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	setting *model.Setting
}

func newMockSettingRepo() *mockSettingRepo { return &mockSettingRepo{} }

func (m *mockSettingRepo) Get(_ context.Context) (*model.Setting, error) {
	if m.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.setting
	return &cp, nil
}

func (m *mockSettingRepo) Create(_ context.Context, s *model.Setting) error {
	if m.setting != nil {
		return gorm.ErrDuplicatedKey
	}
	s.ID = model.SettingKey
	cp := *s
	m.setting = &cp
	return nil
}

func (m *mockSettingRepo) Update(_ context.Context, s *model.Setting) error {
	cp := *s
	m.setting = &cp
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[uint]*model.Subject
	nextID   uint
	pivots   *mockPivot
}

func newMockSubjectRepo(p *mockPivot) *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[uint]*model.Subject), nextID: 1, pivots: p}
}

func (m *mockSubjectRepo) Create(_ context.Context, s *model.Subject) error {
	for _, e := range m.subjects {
		if e.Code == s.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	s.ID = m.nextID
	m.nextID++
	cp := *s
	m.subjects[s.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id uint) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.Code == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) matches(s *model.Subject, f repository.SubjectFilter) bool {
	return (f.Specialization == "" || s.Specialization == f.Specialization) &&
		(f.Level == "" || s.Level == f.Level) &&
		(f.Semester == "" || s.Semester == f.Semester) &&
		(f.Search == "" || strings.Contains(strings.ToLower(s.Code), strings.ToLower(f.Search)))
}

// noCeilings 五个上限字段均未设置
func noCeilings(s *model.Subject) bool {
	return !s.MidtermGrade.Valid && !s.PracticalGrade.Valid && !s.YearsWorkGrade.Valid &&
		!s.FinalGrade.Valid && !s.TotalGrade.Valid
}

func (m *mockSubjectRepo) page(list []model.Subject, offset, limit int) ([]model.Subject, int64) {
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	total := int64(len(list))
	if limit <= 0 {
		return list, total
	}
	if offset >= len(list) {
		return []model.Subject{}, total
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], total
}

func (m *mockSubjectRepo) List(_ context.Context, f repository.SubjectFilter, offset, limit int) ([]model.Subject, int64, error) {
	var list []model.Subject
	for _, s := range m.subjects {
		if m.matches(s, f) {
			list = append(list, *s)
		}
	}
	out, total := m.page(list, offset, limit)
	return out, total, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, s *model.Subject) error {
	cur, ok := m.subjects[s.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cur.Code, cur.Name, cur.CreditHours = s.Code, s.Name, s.CreditHours
	cur.Specialization, cur.Level, cur.Semester = s.Specialization, s.Level, s.Semester
	return nil
}

func (m *mockSubjectRepo) UpdateCeilings(_ context.Context, s *model.Subject) error {
	cur, ok := m.subjects[s.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cur.MidtermGrade, cur.PracticalGrade = s.MidtermGrade, s.PracticalGrade
	cur.YearsWorkGrade, cur.FinalGrade, cur.TotalGrade = s.YearsWorkGrade, s.FinalGrade, s.TotalGrade
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id uint) error {
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectRepo) ExistingIDs(_ context.Context, ids []uint) ([]uint, error) {
	var out []uint
	for _, id := range ids {
		if _, ok := m.subjects[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockSubjectRepo) ListByDoctor(_ context.Context, doctorID uint, f repository.SubjectFilter, offset, limit int) ([]model.Subject, int64, error) {
	var list []model.Subject
	for _, sid := range m.pivots.subjectsOf(doctorID) {
		if s, ok := m.subjects[sid]; ok && m.matches(s, f) {
			list = append(list, *s)
		}
	}
	out, total := m.page(list, offset, limit)
	return out, total, nil
}

func (m *mockSubjectRepo) ListByDoctorWithoutCeilings(_ context.Context, doctorID uint, f repository.SubjectFilter, offset, limit int) ([]model.Subject, int64, error) {
	var list []model.Subject
	for _, sid := range m.pivots.subjectsOf(doctorID) {
		if s, ok := m.subjects[sid]; ok && noCeilings(s) && m.matches(s, f) {
			list = append(list, *s)
		}
	}
	out, total := m.page(list, offset, limit)
	return out, total, nil
}

// ── doctor_subject 分配关系 ──

type mockPivot struct {
	rows map[uint]map[uint]bool // doctorID → subjectIDs
}

func newMockPivot() *mockPivot { return &mockPivot{rows: make(map[uint]map[uint]bool)} }

func (p *mockPivot) subjectsOf(doctorID uint) []uint {
	var ids []uint
	for sid := range p.rows[doctorID] {
		ids = append(ids, sid)
	}
	sortIDs(ids)
	return ids
}

// ── Mock DoctorRepository ──

type mockDoctorRepo struct {
	doctors  map[uint]*model.Doctor
	nextID   uint
	pivots   *mockPivot
	subjects *mockSubjectRepo
}

func newMockDoctorRepo(p *mockPivot, subjects *mockSubjectRepo) *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uint]*model.Doctor), nextID: 1, pivots: p, subjects: subjects}
}

func (m *mockDoctorRepo) withSubjects(d *model.Doctor) *model.Doctor {
	cp := *d
	cp.Subjects = nil
	for _, sid := range m.pivots.subjectsOf(d.ID) {
		if s, ok := m.subjects.subjects[sid]; ok {
			cp.Subjects = append(cp.Subjects, *s)
		}
	}
	return &cp
}

func (m *mockDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	d.ID = m.nextID
	m.nextID++
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id uint) (*model.Doctor, error) {
	if d, ok := m.doctors[id]; ok {
		return m.withSubjects(d), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDoctorRepo) find(pred func(*model.Doctor) bool) (*model.Doctor, error) {
	for _, d := range m.doctors {
		if pred(d) {
			return m.withSubjects(d), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDoctorRepo) GetByEmail(_ context.Context, v string) (*model.Doctor, error) {
	return m.find(func(d *model.Doctor) bool { return d.Email == v })
}

func (m *mockDoctorRepo) GetByCode(_ context.Context, v string) (*model.Doctor, error) {
	return m.find(func(d *model.Doctor) bool { return d.Code == v })
}

func (m *mockDoctorRepo) GetByPhone(_ context.Context, v string) (*model.Doctor, error) {
	return m.find(func(d *model.Doctor) bool { return d.PhoneNumber == v })
}

func (m *mockDoctorRepo) List(_ context.Context, f repository.DoctorFilter, offset, limit int) ([]model.Doctor, int64, error) {
	var list []model.Doctor
	for _, d := range m.doctors {
		if f.Search == "" || strings.Contains(strings.ToLower(d.Name), strings.ToLower(f.Search)) {
			list = append(list, *m.withSubjects(d))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	total := int64(len(list))
	if limit > 0 && offset < len(list) {
		end := offset + limit
		if end > len(list) {
			end = len(list)
		}
		list = list[offset:end]
	}
	return list, total, nil
}

func (m *mockDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	cp := *d
	cp.Subjects = nil
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id uint) error {
	delete(m.pivots.rows, id)
	delete(m.doctors, id)
	return nil
}

func (m *mockDoctorRepo) SubjectIDs(_ context.Context, doctorID uint) ([]uint, error) {
	return m.pivots.subjectsOf(doctorID), nil
}

func (m *mockDoctorRepo) ApplySubjectChanges(_ context.Context, doctorID uint, added, removed []uint) error {
	set := m.pivots.rows[doctorID]
	if set == nil {
		set = make(map[uint]bool)
		m.pivots.rows[doctorID] = set
	}
	for _, id := range removed {
		delete(set, id)
	}
	for _, id := range added {
		set[id] = true
	}
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[uint]*model.Student
	nextID   uint
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[uint]*model.Student), nextID: 1}
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	s.ID = m.nextID
	m.nextID++
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id uint) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) find(pred func(*model.Student) bool) (*model.Student, error) {
	for _, s := range m.students {
		if pred(s) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByCode(_ context.Context, v string) (*model.Student, error) {
	return m.find(func(s *model.Student) bool { return s.Code == v })
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, v string) (*model.Student, error) {
	return m.find(func(s *model.Student) bool { return s.Email == v })
}

func (m *mockStudentRepo) GetByPhone(_ context.Context, v string) (*model.Student, error) {
	return m.find(func(s *model.Student) bool { return s.PhoneNumber == v })
}

func (m *mockStudentRepo) List(_ context.Context, f repository.StudentFilter, offset, limit int) ([]model.Student, int64, error) {
	var list []model.Student
	for _, s := range m.students {
		year := ""
		if s.AcademicYear != nil {
			year = *s.AcademicYear
		}
		if (f.Search == "" || strings.Contains(strings.ToLower(s.Code), strings.ToLower(f.Search))) &&
			(f.Level == "" || s.Level == f.Level) &&
			(f.Specialization == "" || s.Specialization == f.Specialization) &&
			(f.AcademicYear == "" || year == f.AcademicYear) {
			list = append(list, *s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	total := int64(len(list))
	if limit > 0 && offset < len(list) {
		end := offset + limit
		if end > len(list) {
			end = len(list)
		}
		list = list[offset:end]
	}
	return list, total, nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *model.Student) error {
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id uint) error {
	delete(m.students, id)
	return nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades   []model.Grade
	students *mockStudentRepo
	subjects *mockSubjectRepo
	// skipExists 模拟并发：前置检查看不到已提交的记录
	skipExists bool
}

func newMockGradeRepo(students *mockStudentRepo, subjects *mockSubjectRepo) *mockGradeRepo {
	return &mockGradeRepo{students: students, subjects: subjects}
}

func (m *mockGradeRepo) Create(_ context.Context, g *model.Grade) error {
	for _, e := range m.grades {
		if e.StudentID == g.StudentID && e.SubjectID == g.SubjectID {
			return gorm.ErrDuplicatedKey
		}
	}
	g.ID = uint(len(m.grades) + 1)
	m.grades = append(m.grades, *g)
	return nil
}

func (m *mockGradeRepo) Exists(_ context.Context, studentID, subjectID uint) (bool, error) {
	if m.skipExists {
		return false, nil
	}
	for _, e := range m.grades {
		if e.StudentID == studentID && e.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID uint, year string) ([]model.Grade, error) {
	var out []model.Grade
	for _, g := range m.grades {
		if g.StudentID == studentID && (year == "" || g.AcademicYear == year) {
			if s, ok := m.subjects.subjects[g.SubjectID]; ok {
				cp := *s
				g.Subject = &cp
			}
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGradeRepo) ListBySubject(_ context.Context, subjectID uint) ([]model.Grade, error) {
	var out []model.Grade
	for _, g := range m.grades {
		if g.SubjectID == subjectID {
			if s, ok := m.students.students[g.StudentID]; ok {
				cp := *s
				g.Student = &cp
			}
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Student.Code < out[j].Student.Code })
	return out, nil
}

// ── 测试辅助 ──

type mockRepos struct {
	setting *mockSettingRepo
	subject *mockSubjectRepo
	doctor  *mockDoctorRepo
	student *mockStudentRepo
	grade   *mockGradeRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	pivots := newMockPivot()
	subjects := newMockSubjectRepo(pivots)
	students := newMockStudentRepo()
	m := &mockRepos{
		setting: newMockSettingRepo(),
		subject: subjects,
		doctor:  newMockDoctorRepo(pivots, subjects),
		student: students,
		grade:   newMockGradeRepo(students, subjects),
	}
	repo := &repository.Repository{
		Setting: m.setting,
		Subject: m.subject,
		Doctor:  m.doctor,
		Student: m.student,
		Grade:   m.grade,
	}
	return repo, m
}
