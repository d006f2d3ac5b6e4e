package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AliSobih/employee-management-system/internal/dto"
	"github.com/AliSobih/employee-management-system/internal/model"
	"github.com/AliSobih/employee-management-system/internal/repository"
)

// ── Mock UnitRepository ──

type mockUnitRepo struct {
	units map[string]*model.Unit
	seq   int
}

func newMockUnitRepo() *mockUnitRepo {
	return &mockUnitRepo{units: make(map[string]*model.Unit)}
}

func (m *mockUnitRepo) Create(_ context.Context, unit *model.Unit) error {
	if unit.ID == "" {
		m.seq++
		unit.ID = fmt.Sprintf("unit-%d", m.seq)
	}
	unit.CreatedAt = time.Now()
	unit.UpdatedAt = unit.CreatedAt
	m.units[unit.ID] = unit
	return nil
}

func (m *mockUnitRepo) GetByID(_ context.Context, id string) (*model.Unit, error) {
	if u, ok := m.units[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRepo) GetActiveByID(_ context.Context, id string) (*model.Unit, error) {
	if u, ok := m.units[id]; ok && u.IsActive {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRepo) ListAll(_ context.Context) ([]model.Unit, error) {
	var result []model.Unit
	for _, u := range m.units {
		result = append(result, *u)
	}
	sortUnitsByName(result)
	return result, nil
}

func (m *mockUnitRepo) ListActive(_ context.Context) ([]model.Unit, error) {
	var result []model.Unit
	for _, u := range m.units {
		if u.IsActive {
			result = append(result, *u)
		}
	}
	sortUnitsByName(result)
	return result, nil
}

func (m *mockUnitRepo) ExistsByCode(_ context.Context, code, excludeID string) (bool, error) {
	for _, u := range m.units {
		if u.Code == code && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUnitRepo) ExistsByName(_ context.Context, name, excludeID string) (bool, error) {
	for _, u := range m.units {
		if u.Name == name && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUnitRepo) Search(_ context.Context, c *dto.UnitSearchCriteria) ([]model.Unit, int64, error) {
	var matched []model.Unit
	for _, u := range m.units {
		if !activeMatches(u.IsActive, c.IsActive) {
			continue
		}
		if !containsFold(u.Code, c.Code) || !containsFold(u.Name, c.Name) || !containsFold(u.Description, c.Description) {
			continue
		}
		matched = append(matched, *u)
	}
	sortUnitsByName(matched)
	page, size := repository.NormalizeWindow(c.Page, c.Size)
	return pageSlice(matched, page, size), int64(len(matched)), nil
}

func (m *mockUnitRepo) Update(_ context.Context, unit *model.Unit) error {
	unit.UpdatedAt = time.Now()
	m.units[unit.ID] = unit
	return nil
}

// ── Mock MemberRepository ──

// mockMemberRepo 持有 mockUnitRepo 引用以模拟 Preload("Unit")
type mockMemberRepo struct {
	members  map[string]*model.Member
	unitRepo *mockUnitRepo
	seq      int
}

func newMockMemberRepo(unitRepo *mockUnitRepo) *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.Member), unitRepo: unitRepo}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	if member.ID == "" {
		m.seq++
		member.ID = fmt.Sprintf("member-%d", m.seq)
	}
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	m.members[member.ID] = member
	return nil
}

func (m *mockMemberRepo) preload(member *model.Member) *model.Member {
	if u, ok := m.unitRepo.units[member.UnitID]; ok {
		member.Unit = u
	}
	return member
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.Member, error) {
	if mem, ok := m.members[id]; ok {
		return m.preload(mem), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetActiveByID(_ context.Context, id string) (*model.Member, error) {
	if mem, ok := m.members[id]; ok && mem.IsActive {
		return m.preload(mem), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) ListAll(_ context.Context) ([]model.Member, error) {
	var result []model.Member
	for _, mem := range m.members {
		result = append(result, *m.preload(mem))
	}
	sortMembersByCode(result)
	return result, nil
}

func (m *mockMemberRepo) ListActive(_ context.Context) ([]model.Member, error) {
	var result []model.Member
	for _, mem := range m.members {
		if mem.IsActive {
			result = append(result, *m.preload(mem))
		}
	}
	sortMembersByCode(result)
	return result, nil
}

func (m *mockMemberRepo) ExistsByCode(_ context.Context, code, excludeID string) (bool, error) {
	for _, mem := range m.members {
		if mem.Code == code && mem.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMemberRepo) Search(_ context.Context, c *dto.MemberSearchCriteria) ([]model.Member, int64, error) {
	var matched []model.Member
	for _, mem := range m.members {
		if !activeMatches(mem.IsActive, c.IsActive) {
			continue
		}
		if !containsFold(mem.Code, c.Code) || !containsFold(mem.Name, c.Name) || !containsFold(mem.Mobile, c.Mobile) {
			continue
		}
		if unitID := strings.TrimSpace(c.UnitID); unitID != "" && mem.UnitID != unitID {
			continue
		}
		if c.MinSalary != nil && mem.Salary.LessThan(*c.MinSalary) {
			continue
		}
		if c.MaxSalary != nil && mem.Salary.GreaterThan(*c.MaxSalary) {
			continue
		}
		matched = append(matched, *m.preload(mem))
	}
	sortMembersByCode(matched)
	page, size := repository.NormalizeWindow(c.Page, c.Size)
	return pageSlice(matched, page, size), int64(len(matched)), nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	member.UpdatedAt = time.Now()
	m.members[member.ID] = member
	return nil
}

// ── Mock Cache ──

type mockCache struct {
	store map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mockCache) SetJSON(_ context.Context, key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *mockCache) Invalidate(_ context.Context, prefixes ...string) error {
	for _, prefix := range prefixes {
		for key := range m.store {
			if strings.HasPrefix(key, prefix) {
				delete(m.store, key)
			}
		}
	}
	return nil
}

// ── Mock BinaryStore ──

type mockBinStore struct {
	files map[string][]byte
}

func newMockBinStore() *mockBinStore {
	return &mockBinStore{files: make(map[string][]byte)}
}

func (m *mockBinStore) Put(name string, content []byte) error {
	m.files[name] = content
	return nil
}

func (m *mockBinStore) Delete(name string) error {
	delete(m.files, name)
	return nil
}

func (m *mockBinStore) ResolvePath(name string) (string, bool) {
	_, ok := m.files[name]
	return "/mock/" + name, ok
}

// ── 测试辅助 ──

func activeMatches(isActive bool, criterion *bool) bool {
	if criterion == nil {
		return isActive
	}
	return isActive == *criterion
}

func containsFold(value, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func sortUnitsByName(units []model.Unit) {
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
}

func sortMembersByCode(members []model.Member) {
	sort.Slice(members, func(i, j int) bool { return members[i].Code < members[j].Code })
}

func pageSlice[T any](rows []T, page, size int) []T {
	start := page * size
	if start >= len(rows) {
		return nil
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
