package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AliSobih/employee-management-system/internal/dto"
	"github.com/AliSobih/employee-management-system/internal/model"
	"github.com/AliSobih/employee-management-system/internal/repository"
	"github.com/AliSobih/employee-management-system/pkg/binstore"
	pkgerrors "github.com/AliSobih/employee-management-system/pkg/errors"
)

// ── 成员模块业务错误 ──

var (
	ErrMemberNotFound      = fmt.Errorf("%w: 成员不存在", pkgerrors.ErrNotFound)
	ErrMemberCodeExists    = fmt.Errorf("%w: 成员编码已存在", pkgerrors.ErrDuplicate)
	ErrMemberAlreadyActive = fmt.Errorf("%w: 成员已是活跃状态", pkgerrors.ErrInvalidArgument)
	ErrMemberUnitNotFound  = fmt.Errorf("%w: 所属单位不存在", pkgerrors.ErrNotFound)
	ErrMemberUnitInactive  = fmt.Errorf("%w: 所属单位已停用", pkgerrors.ErrInvalidArgument)
	ErrAttachmentEmpty     = fmt.Errorf("%w: 附件内容为空", pkgerrors.ErrInvalidArgument)
	ErrAttachmentType      = fmt.Errorf("%w: 仅支持 JPEG、PNG、GIF、WebP 图片", pkgerrors.ErrInvalidArgument)
	ErrAttachmentTooLarge  = fmt.Errorf("%w: 附件不能超过 5MB", pkgerrors.ErrInvalidArgument)
)

// maxAttachmentSize 附件大小上限 5 MiB
const maxAttachmentSize = 5 * 1024 * 1024

// 附件内容类型白名单（按实际内容嗅探，不信任客户端声明）
var allowedAttachmentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// BinaryStore 附件二进制存储接口（pkg/binstore.Store 满足）
type BinaryStore interface {
	Put(name string, content []byte) error
	Delete(name string) error
	ResolvePath(name string) (string, bool)
}

// MemberService 成员业务接口
type MemberService interface {
	Create(ctx context.Context, req *dto.SaveMemberRequest) (*dto.MemberResponse, error)
	Update(ctx context.Context, id string, req *dto.SaveMemberRequest) (*dto.MemberResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MemberResponse, error)
	ListAll(ctx context.Context) ([]dto.MemberResponse, error)
	ListActive(ctx context.Context) ([]dto.MemberResponse, error)
	Search(ctx context.Context, c *dto.MemberSearchCriteria) ([]dto.MemberResponse, dto.PageMeta, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	UploadAttachment(ctx context.Context, id, originalName string, content []byte) (string, error)
	RemoveAttachment(ctx context.Context, id string) error
}

type memberService struct {
	repo   *repository.Repository
	cache  Cache
	bin    BinaryStore
	logger *zap.Logger
}

// NewMemberService 创建 MemberService 实例
func NewMemberService(repo *repository.Repository, cache Cache, bin BinaryStore, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, cache: cache, bin: bin, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *memberService) Create(ctx context.Context, req *dto.SaveMemberRequest) (*dto.MemberResponse, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidArgument, strings.Join(violations, "；"))
	}

	var member *model.Member
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		// 唯一性检查不限活跃状态
		if exists, err := r.Member.ExistsByCode(ctx, req.Code, ""); err != nil {
			return err
		} else if exists {
			return ErrMemberCodeExists
		}

		// 所属单位必须在写入时刻解析为活跃；并发停用由外键约束兜底
		unit, err := s.resolveActiveUnit(ctx, r, req.UnitID)
		if err != nil {
			return err
		}

		member = &model.Member{
			Code:     req.Code,
			Name:     req.Name,
			Address:  req.Address,
			Mobile:   req.Mobile,
			Salary:   req.Salary,
			UnitID:   unit.ID,
			IsActive: true,
		}
		if dob, ok := req.BirthDate(); ok {
			member.DateOfBirth = &dob
		}
		if err := r.Member.Create(ctx, member); err != nil {
			return err
		}
		member.Unit = unit
		return nil
	})
	if err != nil {
		s.logError("创建成员失败", err, zap.String("code", req.Code))
		return nil, err
	}

	invalidateKind(ctx, s.cache, s.logger, kindMember)
	return dto.NewMemberResponse(member), nil
}

// ────────────────────── Update ──────────────────────

func (s *memberService) Update(ctx context.Context, id string, req *dto.SaveMemberRequest) (*dto.MemberResponse, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidArgument, strings.Join(violations, "；"))
	}

	var member *model.Member
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		var err error
		member, err = r.Member.GetActiveByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		if exists, err := r.Member.ExistsByCode(ctx, req.Code, id); err != nil {
			return err
		} else if exists {
			return ErrMemberCodeExists
		}

		unit, err := s.resolveActiveUnit(ctx, r, req.UnitID)
		if err != nil {
			return err
		}

		member.Code = req.Code
		member.Name = req.Name
		member.Address = req.Address
		member.Mobile = req.Mobile
		member.Salary = req.Salary
		member.UnitID = unit.ID
		member.DateOfBirth = nil
		if dob, ok := req.BirthDate(); ok {
			member.DateOfBirth = &dob
		}
		if err := r.Member.Update(ctx, member); err != nil {
			return err
		}
		member.Unit = unit
		return nil
	})
	if err != nil {
		s.logError("更新成员失败", err, zap.String("id", id))
		return nil, err
	}

	invalidateKind(ctx, s.cache, s.logger, kindMember)
	return dto.NewMemberResponse(member), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *memberService) GetByID(ctx context.Context, id string) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("查询成员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewMemberResponse(member), nil
}

func (s *memberService) ListAll(ctx context.Context) ([]dto.MemberResponse, error) {
	members, err := s.repo.Member.ListAll(ctx)
	if err != nil {
		s.logger.Error("列出成员失败", zap.Error(err))
		return nil, err
	}
	return dto.NewMemberResponseList(members), nil
}

func (s *memberService) ListActive(ctx context.Context) ([]dto.MemberResponse, error) {
	var cached []dto.MemberResponse
	if cacheGet(ctx, s.cache, s.logger, memberActiveKey, &cached) {
		return cached, nil
	}

	members, err := s.repo.Member.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出活跃成员失败", zap.Error(err))
		return nil, err
	}

	result := dto.NewMemberResponseList(members)
	cacheSet(ctx, s.cache, s.logger, memberActiveKey, result)
	return result, nil
}

func (s *memberService) Search(ctx context.Context, c *dto.MemberSearchCriteria) ([]dto.MemberResponse, dto.PageMeta, error) {
	members, total, err := s.repo.Member.Search(ctx, c)
	if err != nil {
		s.logger.Error("搜索成员失败", zap.Error(err))
		return nil, dto.PageMeta{}, err
	}
	page, size := repository.NormalizeWindow(c.Page, c.Size)
	return dto.NewMemberResponseList(members), dto.PageMeta{Page: page, Size: size, Total: total}, nil
}

// ────────────────────── 生命周期 ──────────────────────

func (s *memberService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		member, err := r.Member.GetActiveByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		member.IsActive = false
		return r.Member.Update(ctx, member)
	})
	if err != nil {
		s.logError("删除成员失败", err, zap.String("id", id))
		return err
	}

	invalidateKind(ctx, s.cache, s.logger, kindMember)
	return nil
}

func (s *memberService) Restore(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		member, err := r.Member.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if member.IsActive {
			return ErrMemberAlreadyActive
		}
		member.IsActive = true
		return r.Member.Update(ctx, member)
	})
	if err != nil {
		s.logError("恢复成员失败", err, zap.String("id", id))
		return err
	}

	invalidateKind(ctx, s.cache, s.logger, kindMember)
	return nil
}

func (s *memberService) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var cached bool
	key := memberExistsCodeKey + code
	if cacheGet(ctx, s.cache, s.logger, key, &cached) {
		return cached, nil
	}
	result, err := s.repo.Member.ExistsByCode(ctx, code, "")
	if err != nil {
		s.logger.Error("存在性检查失败", zap.String("code", code), zap.Error(err))
		return false, err
	}
	cacheSet(ctx, s.cache, s.logger, key, result)
	return result, nil
}

// ────────────────────── 附件 ──────────────────────

// UploadAttachment 替换成员附件
// 顺序：校验 → 写入新文件 → 事务内更新引用 → 失效缓存 → 删除旧文件。
// 旧文件只在引用更新成功后删除；删除失败记为孤儿文件，不上抛
func (s *memberService) UploadAttachment(ctx context.Context, id, originalName string, content []byte) (string, error) {
	if err := validateAttachment(content); err != nil {
		return "", err
	}

	// 先确认成员可见，避免为不存在的成员落盘
	if _, err := s.repo.Member.GetActiveByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}

	name := binstore.NewName(originalName)
	if err := s.bin.Put(name, content); err != nil {
		s.logger.Error("写入附件失败", zap.String("member_id", id), zap.Error(err))
		return "", err
	}

	var old *string
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		member, err := r.Member.GetActiveByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		old = member.Attachment
		member.Attachment = &name
		return r.Member.Update(ctx, member)
	})
	if err != nil {
		// 引用未更新成功，新文件需要回收，旧文件保持不动
		if delErr := s.bin.Delete(name); delErr != nil {
			s.logger.Warn("回收新附件失败", zap.String("name", name), zap.Error(delErr))
		}
		s.logError("更新附件引用失败", err, zap.String("member_id", id))
		return "", err
	}

	invalidateKind(ctx, s.cache, s.logger, kindMember)

	if old != nil {
		if err := s.bin.Delete(*old); err != nil {
			// 非致命：引用已切换，旧文件成为孤儿，仅记录
			s.logger.Warn("删除旧附件失败", zap.String("name", *old), zap.Error(err))
		}
	}

	s.logger.Info("附件上传成功", zap.String("member_id", id), zap.String("name", name))
	return name, nil
}

// RemoveAttachment 删除成员附件；成员本无附件时为无操作成功
func (s *memberService) RemoveAttachment(ctx context.Context, id string) error {
	var old *string
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		member, err := r.Member.GetActiveByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if member.Attachment == nil {
			return nil
		}
		old = member.Attachment
		member.Attachment = nil
		return r.Member.Update(ctx, member)
	})
	if err != nil {
		s.logError("移除附件失败", err, zap.String("id", id))
		return err
	}
	if old == nil {
		return nil
	}

	invalidateKind(ctx, s.cache, s.logger, kindMember)

	if err := s.bin.Delete(*old); err != nil {
		s.logger.Warn("删除旧附件失败", zap.String("name", *old), zap.Error(err))
	}
	return nil
}

// ── 内部辅助方法 ──

// resolveActiveUnit 解析引用的单位：不存在与已停用是两类错误
func (s *memberService) resolveActiveUnit(ctx context.Context, r *repository.Repository, unitID string) (*model.Unit, error) {
	unit, err := r.Unit.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberUnitNotFound
		}
		return nil, err
	}
	if !unit.IsActive {
		return nil, ErrMemberUnitInactive
	}
	return unit, nil
}

// validateAttachment 快速失败校验：任何存储变更之前完成
func validateAttachment(content []byte) error {
	if len(content) == 0 {
		return ErrAttachmentEmpty
	}
	if len(content) > maxAttachmentSize {
		return ErrAttachmentTooLarge
	}
	if !allowedAttachmentTypes[http.DetectContentType(content)] {
		return ErrAttachmentType
	}
	return nil
}

func (s *memberService) logError(msg string, err error, fields ...zap.Field) {
	if errors.Is(err, pkgerrors.ErrNotFound) ||
		errors.Is(err, pkgerrors.ErrDuplicate) ||
		errors.Is(err, pkgerrors.ErrInvalidArgument) {
		return
	}
	s.logger.Error(msg, append(fields, zap.Error(err))...)
}

// [自证通过] internal/service/member_service.go
