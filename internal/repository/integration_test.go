//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AliSobih/employee-management-system/internal/dto"
	"github.com/AliSobih/employee-management-system/internal/model"
	"github.com/AliSobih/employee-management-system/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=ems password=ems_password dbname=employee_management_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	if err := testDB.AutoMigrate(&model.Unit{}, &model.Member{}); err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestUnit 创建基础测试单位并返回清理函数
func setupTestUnit(t *testing.T) (*model.Unit, func()) {
	t.Helper()
	ctx := context.Background()

	unit := &model.Unit{
		Code:     fmt.Sprintf("U%d", time.Now().UnixNano()),
		Name:     fmt.Sprintf("测试单位-%d", time.Now().UnixNano()),
		IsActive: true,
	}
	if err := testDB.WithContext(ctx).Create(unit).Error; err != nil {
		t.Fatalf("创建单位失败: %v", err)
	}

	cleanup := func() {
		testDB.Where("unit_id = ?", unit.ID).Delete(&model.Member{})
		testDB.Where("id = ?", unit.ID).Delete(&model.Unit{})
	}
	return unit, cleanup
}

func createTestMember(t *testing.T, unitID, code, name string, salary string, active bool) *model.Member {
	t.Helper()
	member := &model.Member{
		Code:     fmt.Sprintf("%s-%d", code, time.Now().UnixNano()),
		Name:     name,
		Salary:   decimal.RequireFromString(salary),
		UnitID:   unitID,
		IsActive: active,
	}
	if err := testDB.WithContext(context.Background()).Create(member).Error; err != nil {
		t.Fatalf("创建成员失败: %v", err)
	}
	return member
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	boom := errors.New("boom")
	var memberID string
	err := repo.Transaction(ctx, func(r *repository.Repository) error {
		member := &model.Member{
			Code:     fmt.Sprintf("TX-%d", time.Now().UnixNano()),
			Name:     "Rollback Case",
			Salary:   decimal.RequireFromString("1000"),
			UnitID:   unit.ID,
			IsActive: true,
		}
		if err := r.Member.Create(ctx, member); err != nil {
			return err
		}
		memberID = member.ID
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("期望事务返回 boom，实际: %v", err)
	}

	// 验证数据未持久化
	if _, err := repo.Member.GetByID(ctx, memberID); err == nil {
		testDB.Where("id = ?", memberID).Delete(&model.Member{})
		t.Fatal("期望回滚后查不到成员，但实际查到了")
	}
}

func TestTransaction_Commit(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	var memberID string
	err := repo.Transaction(ctx, func(r *repository.Repository) error {
		member := &model.Member{
			Code:     fmt.Sprintf("TX-%d", time.Now().UnixNano()),
			Name:     "Commit Case",
			Salary:   decimal.RequireFromString("1000"),
			UnitID:   unit.ID,
			IsActive: true,
		}
		if err := r.Member.Create(ctx, member); err != nil {
			return err
		}
		memberID = member.ID
		return nil
	})
	if err != nil {
		t.Fatalf("事务应提交成功: %v", err)
	}
	defer testDB.Where("id = ?", memberID).Delete(&model.Member{})

	found, err := repo.Member.GetByID(ctx, memberID)
	if err != nil {
		t.Fatalf("提交后查询成员失败: %v", err)
	}
	if found.Name != "Commit Case" {
		t.Errorf("期望Name=Commit Case，实际=%s", found.Name)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Unique Constraint
// ═══════════════════════════════════════════════════════════

func TestUnit_UniqueCode(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	dup := &model.Unit{
		Code:     unit.Code,
		Name:     fmt.Sprintf("另一单位-%d", time.Now().UnixNano()),
		IsActive: true,
	}
	if err := repo.Unit.Create(ctx, dup); err == nil {
		testDB.Where("id = ?", dup.ID).Delete(&model.Unit{})
		t.Fatal("期望唯一约束违反，但创建成功了")
	}
}

// 软删除记录仍参与唯一性：ExistsByCode 不限活跃状态
func TestUnit_ExistsByCode_LifecycleBlind(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	unit.IsActive = false
	if err := repo.Unit.Update(ctx, unit); err != nil {
		t.Fatalf("停用单位失败: %v", err)
	}

	exists, err := repo.Unit.ExistsByCode(ctx, unit.Code, "")
	if err != nil {
		t.Fatalf("ExistsByCode 失败: %v", err)
	}
	if !exists {
		t.Error("软删除单位的编码应仍被占用")
	}

	// 排除自身后不冲突
	exists, err = repo.Unit.ExistsByCode(ctx, unit.Code, unit.ID)
	if err != nil {
		t.Fatalf("ExistsByCode 失败: %v", err)
	}
	if exists {
		t.Error("排除自身后不应报冲突")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Active Scoping
// ═══════════════════════════════════════════════════════════

func TestUnit_ActiveScoping(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	unit.IsActive = false
	if err := repo.Unit.Update(ctx, unit); err != nil {
		t.Fatalf("停用单位失败: %v", err)
	}

	// 活跃范围查询找不到
	if _, err := repo.Unit.GetActiveByID(ctx, unit.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("停用单位活跃查询期望 ErrRecordNotFound，实际: %v", err)
	}
	// 不限范围查询找得到
	found, err := repo.Unit.GetByID(ctx, unit.ID)
	if err != nil {
		t.Fatalf("不限范围查询失败: %v", err)
	}
	if found.IsActive {
		t.Error("IsActive 应为 false")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Search
// ═══════════════════════════════════════════════════════════

// 过滤条件为合取，文本按小写包含匹配
func TestMember_Search_FilterConjunction(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	createTestMember(t, unit.ID, "S1", "Ali Hassan", "5000", true)
	createTestMember(t, unit.ID, "S2", "Malika Noor", "6000", true)
	createTestMember(t, unit.ID, "S3", "Bob Smith", "7000", true)
	createTestMember(t, unit.ID, "S4", "Alina Said", "5500", false)

	// name=ali 命中 Ali Hassan 与 Malika Noor；Alina 已停用，缺省范围不命中
	members, total, err := repo.Member.Search(ctx, &dto.MemberSearchCriteria{
		Name:   "ali",
		UnitID: unit.ID,
	})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if total != 2 {
		t.Errorf("期望Total=2，实际=%d", total)
	}
	for _, m := range members {
		if m.Name == "Bob Smith" || m.Name == "Alina Said" {
			t.Errorf("%s 不应命中", m.Name)
		}
	}

	// 合取：name 再叠加薪资下界
	minSalary := decimal.RequireFromString("6000")
	_, total, err = repo.Member.Search(ctx, &dto.MemberSearchCriteria{
		Name:      "ali",
		UnitID:    unit.ID,
		MinSalary: &minSalary,
	})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if total != 1 {
		t.Errorf("叠加薪资条件后期望Total=1，实际=%d", total)
	}
}

// 分页确定性：15 行按 10+5 切分，无重叠无丢失
func TestMember_Search_PaginationDeterminism(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		// 同名同薪资，排序键完全相同，靠 id 次序保证稳定
		createTestMember(t, unit.ID, fmt.Sprintf("P%02d", i), "Same Name", "4000", true)
	}

	criteria := &dto.MemberSearchCriteria{
		UnitID: unit.ID,
		Size:   10,
		SortBy: "name",
	}

	criteria.Page = 0
	page0, total, err := repo.Member.Search(ctx, criteria)
	if err != nil {
		t.Fatalf("第0页查询失败: %v", err)
	}
	if total != 15 {
		t.Fatalf("期望Total=15，实际=%d", total)
	}
	if len(page0) != 10 {
		t.Fatalf("第0页期望10行，实际=%d", len(page0))
	}

	criteria.Page = 1
	page1, _, err := repo.Member.Search(ctx, criteria)
	if err != nil {
		t.Fatalf("第1页查询失败: %v", err)
	}
	if len(page1) != 5 {
		t.Fatalf("第1页期望5行，实际=%d", len(page1))
	}

	seen := make(map[string]bool, 15)
	for _, m := range append(page0, page1...) {
		if seen[m.ID] {
			t.Errorf("成员 %s 跨页重复出现", m.ID)
		}
		seen[m.ID] = true
	}
	if len(seen) != 15 {
		t.Errorf("两页合计期望15个不同成员，实际=%d", len(seen))
	}
}

// 派生字段排序：unitName 重映射到 units.name 并联表
func TestMember_Search_SortByUnitName(t *testing.T) {
	unitA, cleanupA := setupTestUnit(t)
	defer cleanupA()
	unitB, cleanupB := setupTestUnit(t)
	defer cleanupB()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 强制单位名次序：A 在前
	unitA.Name = fmt.Sprintf("AAA-%d", time.Now().UnixNano())
	unitB.Name = fmt.Sprintf("ZZZ-%d", time.Now().UnixNano())
	if err := repo.Unit.Update(ctx, unitA); err != nil {
		t.Fatalf("更新单位失败: %v", err)
	}
	if err := repo.Unit.Update(ctx, unitB); err != nil {
		t.Fatalf("更新单位失败: %v", err)
	}

	mB := createTestMember(t, unitB.ID, "J1", "In Last Unit", "5000", true)
	mA := createTestMember(t, unitA.ID, "J2", "In First Unit", "5000", true)

	members, _, err := repo.Member.Search(ctx, &dto.MemberSearchCriteria{
		SortBy:        "unitName",
		SortDirection: "asc",
		Size:          100,
	})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}

	posA, posB := -1, -1
	for i, m := range members {
		switch m.ID {
		case mA.ID:
			posA = i
		case mB.ID:
			posB = i
		}
	}
	if posA == -1 || posB == -1 {
		t.Fatal("两个成员都应在结果中")
	}
	if posA > posB {
		t.Errorf("按单位名升序，AAA 单位成员应排在前：posA=%d posB=%d", posA, posB)
	}
}

// Preload 验证：读取携带所属单位
func TestMember_GetByID_PreloadsUnit(t *testing.T) {
	unit, cleanup := setupTestUnit(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	member := createTestMember(t, unit.ID, "PL", "Preload Case", "5000", true)

	found, err := repo.Member.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if found.Unit == nil {
		t.Fatal("Unit 关联应已预加载")
	}
	if found.Unit.Name != unit.Name {
		t.Errorf("期望单位名=%s，实际=%s", unit.Name, found.Unit.Name)
	}
}
