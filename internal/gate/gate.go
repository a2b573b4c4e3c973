package gate

import (
	"time"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
)

// Redacted 是未解锁天数统一返回的占位内容，前端依赖这个固定值
const Redacted = "REDACTED"

// Project 根据当前时间对完整的日历做投影，只露出已解锁天数的真实内容
// now 由调用方显式传入，不在这里读时钟，方便测试
// 注意：这里只比较月和日，不比较年份，因为日历只在目标月份内上线，
// 前端和已有的快照都依赖这个行为，不要把它改成完整的日期比较
func Project(days map[int][]domain.CalendarSlot, now time.Time, targetMonth time.Month, fallbackDays int) map[int][]domain.CalendarSlot {
	maxDay := 0
	for day := range days {
		if day > maxDay {
			maxDay = day
		}
	}
	if maxDay <= 0 {
		// 日历数据缺失或为空时，按配置的天数全部上锁
		maxDay = fallbackDays
	}

	view := make(map[int][]domain.CalendarSlot, maxDay)

	for day := 1; day <= maxDay; day++ {
		slots := days[day]
		if !visible(now, targetMonth, day) || len(slots) == 0 {
			// 数据缺失的天数无论日期如何都按未解锁处理，宁可少露不可多露
			view[day] = []domain.CalendarSlot{{URL: Redacted, SubmitterName: Redacted}}
			continue
		}

		// 显式逐字段拷贝，保证对外只暴露链接和投稿人姓名，
		// 以后新增字段时必须在这里决定要不要放出去
		projected := make([]domain.CalendarSlot, len(slots))
		for i, slot := range slots {
			projected[i] = domain.CalendarSlot{
				URL:           slot.URL,
				SubmitterName: slot.SubmitterName,
			}
		}
		view[day] = projected
	}

	return view
}

func visible(now time.Time, targetMonth time.Month, day int) bool {
	switch {
	case now.Month() > targetMonth:
		// 目标月份已经过去，整个日历可见
		return true
	case now.Month() == targetMonth:
		return day <= now.Day()
	default:
		return false
	}
}
