package repository

import (
	"errors"
	"io/fs"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
)

func (r *Repository) ReplaceSchedule(schedule *domain.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeFileAtomic(r.schedulePath(), schedule)
}

func (r *Repository) GetSchedule() (*domain.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule := &domain.Schedule{}
	if err := r.readFileJSON(r.schedulePath(), schedule); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrScheduleNotExists
		}
		return nil, err
	}

	return schedule, nil
}

// HasSchedule 用于判断投稿是否已经截止
func (r *Repository) HasSchedule() (bool, error) {
	if _, err := r.GetSchedule(); err != nil {
		if errors.Is(err, ErrScheduleNotExists) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
