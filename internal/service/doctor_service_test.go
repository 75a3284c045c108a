package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
	pkgerrors "github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/errors"
)

// ── 测试辅助 ──

// setupTestDoctorService 预置科目 1..3
func setupTestDoctorService() (DoctorService, *mockRepos) {
	repo, m := newMockRepository()
	ctx := context.Background()
	for _, code := range []string{"CS101", "CS102", "CS103"} {
		_ = m.subject.Create(ctx, &model.Subject{Code: code, Name: "Subject " + code, CreditHours: 3, Specialization: "CS", Level: "One", Semester: "One"})
	}
	return NewDoctorService(repo, zap.NewNop()), m
}

func createDoctorReq(email, code string, subjectIDs ...uint) *dto.CreateDoctorRequest {
	return &dto.CreateDoctorRequest{
		Name:                 "Dr. " + code,
		Email:                email,
		PhoneNumber:          "010" + code,
		Code:                 code,
		SubjectIDs:           subjectIDs,
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	}
}

// ── reconcileIDs 测试 ──

func TestReconcileIDs(t *testing.T) {
	cases := []struct {
		name             string
		current, desired []uint
		added, removed   []uint
	}{
		{"新增", nil, []uint{2, 1}, []uint{1, 2}, nil},
		{"全部移除", []uint{1, 2}, []uint{}, nil, []uint{1, 2}},
		{"部分替换", []uint{1, 2, 3}, []uint{3, 4, 4}, []uint{4}, []uint{1, 2}},
		{"无变化", []uint{1, 2}, []uint{2, 1}, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			added, removed := reconcileIDs(tc.current, tc.desired)
			if !reflect.DeepEqual(added, tc.added) {
				t.Errorf("added 期望 %v，实际 %v", tc.added, added)
			}
			if !reflect.DeepEqual(removed, tc.removed) {
				t.Errorf("removed 期望 %v，实际 %v", tc.removed, removed)
			}
		})
	}
}

// ── Create 测试 ──

func TestDoctorService_Create_AttachesSubjects(t *testing.T) {
	svc, m := setupTestDoctorService()

	got, err := svc.Create(context.Background(), createDoctorReq("a@x.com", "D1", 1, 2))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(got.Subjects) != 2 || got.Subjects[0].ID != 1 || got.Subjects[1].ID != 2 {
		t.Errorf("期望分配科目 1、2，实际: %+v", got.Subjects)
	}

	stored := m.doctor.doctors[got.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")) != nil {
		t.Error("密码应以 bcrypt 哈希保存")
	}
}

func TestDoctorService_Create_UnknownSubject(t *testing.T) {
	svc, m := setupTestDoctorService()

	_, err := svc.Create(context.Background(), createDoctorReq("a@x.com", "D1", 1, 99))
	ve, ok := pkgerrors.AsValidation(err)
	if !ok {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	if _, ok := ve.Fields["subject_ids.1"]; !ok {
		t.Errorf("错误应指向 subject_ids.1: %v", ve.Fields)
	}
	if len(m.doctor.doctors) != 0 {
		t.Error("校验失败时不应创建教师")
	}
}

func TestDoctorService_Create_Duplicates(t *testing.T) {
	svc, _ := setupTestDoctorService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createDoctorReq("a@x.com", "D1", 1)); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err := svc.Create(ctx, createDoctorReq("a@x.com", "D1", 1))
	ve, ok := pkgerrors.AsValidation(err)
	if !ok {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	for _, f := range []string{"email", "code", "phoneNumber"} {
		if _, ok := ve.Fields[f]; !ok {
			t.Errorf("错误映射应包含 %s: %v", f, ve.Fields)
		}
	}
}

// ── Update 测试 ──

func TestDoctorService_Update_ReplacesSubjects(t *testing.T) {
	svc, _ := setupTestDoctorService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, createDoctorReq("a@x.com", "D1", 1, 2))

	got, err := svc.Update(ctx, created.ID, &dto.UpdateDoctorRequest{SubjectIDs: []uint{3}})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if len(got.Subjects) != 1 || got.Subjects[0].ID != 3 {
		t.Errorf("分配应整体替换为 [3]，实际: %+v", got.Subjects)
	}

	// 未传 subject_ids 时不修改分配
	got, _ = svc.Update(ctx, created.ID, &dto.UpdateDoctorRequest{Name: strPtr("New Name")})
	if got.Name != "New Name" || len(got.Subjects) != 1 {
		t.Errorf("仅改名不应影响分配: %+v", got)
	}

	// 空数组清空分配
	got, _ = svc.Update(ctx, created.ID, &dto.UpdateDoctorRequest{SubjectIDs: []uint{}})
	if len(got.Subjects) != 0 {
		t.Errorf("空数组应清空分配，实际: %+v", got.Subjects)
	}
}

func TestDoctorService_Update_UniqueExcludesSelf(t *testing.T) {
	svc, _ := setupTestDoctorService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, createDoctorReq("a@x.com", "D1", 1))
	_, _ = svc.Create(ctx, createDoctorReq("b@x.com", "D2", 1))

	if _, err := svc.Update(ctx, a.ID, &dto.UpdateDoctorRequest{Email: strPtr("a@x.com")}); err != nil {
		t.Errorf("保留自身邮箱应成功: %v", err)
	}
	_, err := svc.Update(ctx, a.ID, &dto.UpdateDoctorRequest{Email: strPtr("b@x.com")})
	if _, ok := pkgerrors.AsValidation(err); !ok {
		t.Errorf("占用他人邮箱应返回 ValidationError，实际: %v", err)
	}
}

func TestDoctorService_Update_PasswordConfirmation(t *testing.T) {
	svc, m := setupTestDoctorService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, createDoctorReq("a@x.com", "D1", 1))

	_, err := svc.Update(ctx, a.ID, &dto.UpdateDoctorRequest{Password: strPtr("newpassword"), PasswordConfirmation: strPtr("other")})
	if ve, ok := pkgerrors.AsValidation(err); !ok || ve.Fields["password"] == nil {
		t.Errorf("确认密码不一致应返回 password 字段错误，实际: %v", err)
	}

	if _, err := svc.Update(ctx, a.ID, &dto.UpdateDoctorRequest{Password: strPtr("newpassword"), PasswordConfirmation: strPtr("newpassword")}); err != nil {
		t.Fatalf("修改密码应成功: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(m.doctor.doctors[a.ID].PasswordHash), []byte("newpassword")) != nil {
		t.Error("新密码未生效")
	}
}

// ── Delete / List 测试 ──

func TestDoctorService_Delete_DetachesSubjects(t *testing.T) {
	svc, m := setupTestDoctorService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, createDoctorReq("a@x.com", "D1", 1, 2))
	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(m.doctor.pivots.subjectsOf(a.ID)) != 0 {
		t.Error("删除教师后分配关系应清空")
	}
	if _, err := svc.GetByID(ctx, a.ID); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("期望 ErrDoctorNotFound，实际: %v", err)
	}
}

func TestDoctorService_List_Search(t *testing.T) {
	svc, _ := setupTestDoctorService()
	ctx := context.Background()

	_, _ = svc.Create(ctx, createDoctorReq("a@x.com", "Alpha", 1))
	_, _ = svc.Create(ctx, createDoctorReq("b@x.com", "Beta", 2))

	list, total, err := svc.List(ctx, &dto.DoctorListRequest{Search: "alp"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || list[0].Code != "Alpha" {
		t.Errorf("按姓名搜索不符: %+v", list)
	}
	if len(list[0].Subjects) != 1 || list[0].Subjects[0].Name != "Subject CS101" {
		t.Errorf("列表应带科目 {id,name}: %+v", list[0].Subjects)
	}
}
