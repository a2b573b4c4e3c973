package allocator

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/utils"
)

var (
	ErrInsufficientLinks      = errors.New("链接总数不足")
	ErrInsufficientSubmitters = errors.New("拥有链接的投稿人数量不足")
	ErrDayUnfillable          = errors.New("无法用互不相同的投稿人填满这一天")
)

type Allocator struct {
	parameters  *Parameters
	names       []string            // 有序的投稿人名单，保证遍历顺序固定
	pools       map[string][]string // 每个投稿人剩余的链接队列
	usage       map[string]int      // 每个投稿人已被采用的链接数量
	rng         *rand.Rand
	submissions []*domain.Submission // 仅做最后的校验使用
}

func New(parameters *Parameters, submissions []*domain.Submission, rng *rand.Rand) (*Allocator, error) {
	if parameters.RequiredDays <= 0 {
		return nil, errors.New("需要填满的天数必须为正数")
	}
	if parameters.SlotsPerDay <= 0 {
		return nil, errors.New("每天的格子数量必须为正数")
	}
	if rng == nil {
		// 随机源必须显式传入，避免依赖全局随机状态，否则测试无法复现结果
		return nil, errors.New("未传入随机源")
	}

	a := &Allocator{
		parameters:  parameters,
		pools:       make(map[string][]string),
		usage:       make(map[string]int),
		rng:         rng,
		submissions: submissions,
	}

	// 按投稿人姓名合并所有链接，姓名和链接都去掉首尾空格，空的直接丢弃
	// 姓名区分大小写
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
			a.pools[name] = append(a.pools[name], link)
		}
	}

	// map 的遍历顺序不固定，为了保证同一个种子下结果可复现，这里维护一个有序名单
	a.names = make([]string, 0, len(a.pools))
	for name := range a.pools {
		a.names = append(a.names, name)
	}
	sort.Strings(a.names)

	// 用 Fisher-Yates 打乱每个投稿人自己的链接队列
	// 这一步只决定某条链接出现在哪一天，不影响投稿人之间的公平性
	for _, name := range a.names {
		pool := a.pools[name]
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		a.usage[name] = 0
	}

	return a, nil
}

// Allocate 把所有投稿的链接公平地分配到日历的每一天上
// 返回的要么是完整合法的日历，要么是 nil，部分填好的结果一律丢弃
func (a *Allocator) Allocate() (map[int][]domain.CalendarSlot, error) {
	// 先检查链接总数在数学上是否足够填满整个日历
	total := 0
	for _, pool := range a.pools {
		total += len(pool)
	}
	required := a.parameters.RequiredDays * a.parameters.SlotsPerDay
	if total < required {
		return nil, fmt.Errorf("%w: 共需要 %d 条，实际只有 %d 条", ErrInsufficientLinks, required, total)
	}

	// 再检查拥有链接的投稿人数量是否足够填满一天
	if len(a.names) < a.parameters.SlotsPerDay {
		return nil, fmt.Errorf("%w: 每天需要 %d 位不同的投稿人，实际只有 %d 位", ErrInsufficientSubmitters, a.parameters.SlotsPerDay, len(a.names))
	}

	days := make(map[int][]domain.CalendarSlot, a.parameters.RequiredDays)

	for day := 1; day <= a.parameters.RequiredDays; day++ {
		slots := make([]domain.CalendarSlot, 0, a.parameters.SlotsPerDay)
		chosen := make(map[string]bool, a.parameters.SlotsPerDay)

		for slot := 0; slot < a.parameters.SlotsPerDay; slot++ {
			name, ok := a.pickSubmitter(chosen)
			if !ok {
				// 链接总数够并不代表每天都能填满
				// 比如链接集中在少数投稿人手里时就会走到这里
				return nil, fmt.Errorf("%w: 第 %d 天", ErrDayUnfillable, day)
			}

			// 从队列头部取出一条链接，队列在初始化时已经打乱过
			link := a.pools[name][0]
			a.pools[name] = a.pools[name][1:]

			slots = append(slots, domain.CalendarSlot{
				URL:           link,
				SubmitterName: name,
			})
			chosen[name] = true
			a.usage[name]++
		}

		days[day] = slots
	}

	// 返回前还需要校验一遍结果是否满足约束条件（调用 utils 包中的方法就可以了）
	if err := utils.ValidateSchedule(days, a.parameters.RequiredDays, a.parameters.SlotsPerDay); err != nil {
		return nil, err
	}
	if err := utils.ValidateScheduleWithSubmissions(days, a.submissions); err != nil {
		return nil, err
	}

	return days, nil
}
