package utils

import (
	"fmt"
	"strings"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
)

func ValidateSchedule(days map[int][]domain.CalendarSlot, requiredDays int, slotsPerDay int) error {
	// 检查每一天是否都存在并且格子数量正确
	for day := 1; day <= requiredDays; day++ {
		slots, exists := days[day]
		if !exists {
			return fmt.Errorf("第 %d 天不存在分配结果", day)
		}
		if len(slots) != slotsPerDay {
			return fmt.Errorf("第 %d 天的格子数量为 %d，应为 %d", day, len(slots), slotsPerDay)
		}
	}

	// 检查是否存在范围之外的天数
	for day := range days {
		if day < 1 || day > requiredDays {
			return fmt.Errorf("存在非法的天数 %d", day)
		}
	}

	// 检查某一天中是否有重复的投稿人
	for day, slots := range days {
		seen := make(map[string]bool)
		for _, slot := range slots {
			if seen[slot.SubmitterName] {
				return fmt.Errorf("第 %d 天中存在重复的投稿人 %s", day, slot.SubmitterName)
			}
			seen[slot.SubmitterName] = true
		}
	}

	return nil
}

func ValidateScheduleWithSubmissions(days map[int][]domain.CalendarSlot, submissions []*domain.Submission) error {
	// 按投稿人姓名汇总所有可用的链接，归一化规则和分配时保持一致
	remaining := make(map[string]map[string]int)
	for _, submission := range submissions {
		name := strings.TrimSpace(submission.Name)
		if name == "" {
			continue
		}
		for _, link := range submission.Links {
			link = strings.TrimSpace(link)
			if link == "" {
				continue
			}
			if _, exists := remaining[name]; !exists {
				remaining[name] = make(map[string]int)
			}
			remaining[name][link]++
		}
	}

	// 检查每个格子里的链接确实属于对应的投稿人，并且同一条链接最多被用一次
	for day, slots := range days {
		for _, slot := range slots {
			pool, exists := remaining[slot.SubmitterName]
			if !exists {
				return fmt.Errorf("第 %d 天中的投稿人 %s 没有提交过任何链接", day, slot.SubmitterName)
			}
			if pool[slot.URL] <= 0 {
				return fmt.Errorf("第 %d 天中的链接 %s 不属于投稿人 %s 或已被重复使用", day, slot.URL, slot.SubmitterName)
			}
			pool[slot.URL]--
		}
	}

	return nil
}
