package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/gate"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/repository"
)

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.repository.GetSchedule()
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotExists):
			// 排期还没生成时返回一个全部锁住的日历，前端不需要特殊处理
			schedule = &domain.Schedule{Days: map[int][]domain.CalendarSlot{}}
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	now := h.now().In(h.location)
	days := gate.Project(schedule.Days, now, time.Month(h.config.Calendar.TargetMonth), h.config.Calendar.RequiredDays)

	h.successResponse(w, r, "获取日历成功", days)
}
