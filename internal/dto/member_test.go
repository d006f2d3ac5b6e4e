package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validRequest() *SaveMemberRequest {
	dob := "1990-05-10"
	return &SaveMemberRequest{
		Code:        "EMP-001",
		Name:        "Ali Hassan",
		DateOfBirth: &dob,
		Mobile:      "01234567890",
		Salary:      decimal.RequireFromString("5000.50"),
		UnitID:      "11111111-1111-1111-1111-111111111111",
	}
}

func TestSaveMemberRequest_Validate_OK(t *testing.T) {
	if v := validRequest().Validate(); len(v) != 0 {
		t.Errorf("合法请求不应有违规项: %v", v)
	}
}

func TestSaveMemberRequest_Validate_Name(t *testing.T) {
	ok := []string{"Ali Hassan", "O'Brien", "Jean-Luc", "J. Smith"}
	for _, name := range ok {
		r := validRequest()
		r.Name = name
		if v := r.Validate(); len(v) != 0 {
			t.Errorf("姓名 %q 应合法: %v", name, v)
		}
	}

	bad := []string{"Ali123", "user@host", "张伟"}
	for _, name := range bad {
		r := validRequest()
		r.Name = name
		if v := r.Validate(); len(v) == 0 {
			t.Errorf("姓名 %q 应违规", name)
		}
	}
}

func TestSaveMemberRequest_Validate_Mobile(t *testing.T) {
	cases := []struct {
		mobile string
		wantOK bool
	}{
		{"01234567890", true},
		{"01098765432", true},
		{"", true}, // 手机号可缺省
		{"09876543210", false},
		{"0123456789", false},   // 10 位
		{"012345678901", false}, // 12 位
		{"0123456789a", false},
	}
	for _, tc := range cases {
		r := validRequest()
		r.Mobile = tc.mobile
		violations := r.Validate()
		if tc.wantOK && len(violations) != 0 {
			t.Errorf("手机号 %q 应合法: %v", tc.mobile, violations)
		}
		if !tc.wantOK && len(violations) == 0 {
			t.Errorf("手机号 %q 应违规", tc.mobile)
		}
	}
}

func TestSaveMemberRequest_Validate_Age(t *testing.T) {
	// 恰好 18 岁：边界合法
	dob := time.Now().AddDate(-18, 0, 0).Format("2006-01-02")
	r := validRequest()
	r.DateOfBirth = &dob
	if v := r.Validate(); len(v) != 0 {
		t.Errorf("恰好18岁应合法: %v", v)
	}

	// 差一天不满 18 岁
	dob = time.Now().AddDate(-18, 0, 1).Format("2006-01-02")
	r = validRequest()
	r.DateOfBirth = &dob
	if v := r.Validate(); len(v) == 0 {
		t.Error("未满18岁应违规")
	}

	// 未来日期
	dob = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	r = validRequest()
	r.DateOfBirth = &dob
	if v := r.Validate(); len(v) == 0 {
		t.Error("未来出生日期应违规")
	}

	// 缺省日期跳过年龄校验
	r = validRequest()
	r.DateOfBirth = nil
	if v := r.Validate(); len(v) != 0 {
		t.Errorf("缺省出生日期应合法: %v", v)
	}
}

func TestSaveMemberRequest_Validate_Salary(t *testing.T) {
	cases := []struct {
		salary string
		wantOK bool
	}{
		{"0.01", true},
		{"5000", true},
		{"9999999999.99", true},   // numeric(10,2) 上界
		{"0", false},              // 必须大于 0
		{"-100", false},
		{"1000.123", false},       // 小数位超限
		{"10000000000", false},    // 整数部分超过 10 位
	}
	for _, tc := range cases {
		r := validRequest()
		r.Salary = decimal.RequireFromString(tc.salary)
		violations := r.Validate()
		if tc.wantOK && len(violations) != 0 {
			t.Errorf("薪资 %s 应合法: %v", tc.salary, violations)
		}
		if !tc.wantOK && len(violations) == 0 {
			t.Errorf("薪资 %s 应违规", tc.salary)
		}
	}
}

// 多项违规一次返回，便于前端逐项展示
func TestSaveMemberRequest_Validate_CollectsAll(t *testing.T) {
	r := validRequest()
	r.Name = "Ali123"
	r.Mobile = "123"
	r.Salary = decimal.Zero

	violations := r.Validate()
	if len(violations) != 3 {
		t.Errorf("期望3项违规，实际=%d: %v", len(violations), violations)
	}
}

func TestSaveUnitRequest_Validate(t *testing.T) {
	ok := &SaveUnitRequest{Code: "HR_01-a", Name: "Human Resources"}
	if v := ok.Validate(); len(v) != 0 {
		t.Errorf("合法请求不应有违规项: %v", v)
	}

	bad := &SaveUnitRequest{Code: "HR 01!", Name: "X"}
	if v := bad.Validate(); len(v) != 2 {
		t.Errorf("期望2项违规（编码字符、名称长度），实际: %v", v)
	}

	long := &SaveUnitRequest{Code: "HR", Name: strings.Repeat("a", 101)}
	if v := long.Validate(); len(v) == 0 {
		t.Error("超长名称应违规")
	}
}
