package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/config"
)

var ErrScheduleNotExists = errors.New("排期尚未生成")

// Repository 把所有数据保存在两个 JSON 文件中，
// 投稿的量级很小，不需要引入数据库
type Repository struct {
	cfg *config.Config
	mu  sync.Mutex
}

func NewRepository(cfg *config.Config) *Repository {
	return &Repository{
		cfg: cfg,
	}
}

func (r *Repository) submissionsPath() string {
	return filepath.Join(r.cfg.Storage.Dir, r.cfg.Storage.SubmissionsFile)
}

func (r *Repository) schedulePath() string {
	return filepath.Join(r.cfg.Storage.Dir, r.cfg.Storage.ScheduleFile)
}

// writeFileAtomic 先写入临时文件再重命名，
// 避免进程在写到一半时退出导致文件损坏
func (r *Repository) writeFileAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func (r *Repository) readFileJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
