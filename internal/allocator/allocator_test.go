package allocator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
)

func newSubmission(name string, links ...string) *domain.Submission {
	return &domain.Submission{
		Name:  name,
		Links: links,
	}
}

func TestAllocate_EveryDayHasDistinctSubmitters(t *testing.T) {
	submissions := []*domain.Submission{
		newSubmission("王伟", "https://example.com/a1", "https://example.com/a2"),
		newSubmission("李娜", "https://example.com/b1", "https://example.com/b2"),
		newSubmission("张敏", "https://example.com/c1", "https://example.com/c2"),
	}

	alloc, err := New(&Parameters{RequiredDays: 2, SlotsPerDay: 3}, submissions, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	days, err := alloc.Allocate()
	require.NoError(t, err)
	require.Len(t, days, 2)

	usedLinks := make(map[string]bool)
	for day := 1; day <= 2; day++ {
		slots := days[day]
		require.Len(t, slots, 3)

		// 每一天都应该恰好出现三位不同的投稿人
		submitters := make(map[string]bool)
		for _, slot := range slots {
			submitters[slot.SubmitterName] = true
			require.False(t, usedLinks[slot.URL], "链接 %s 被重复使用", slot.URL)
			usedLinks[slot.URL] = true
		}
		require.Equal(t, map[string]bool{"王伟": true, "李娜": true, "张敏": true}, submitters)
	}
}

func TestAllocate_InsufficientSubmitters(t *testing.T) {
	submissions := []*domain.Submission{
		newSubmission("王伟", "https://example.com/a1", "https://example.com/a2"),
		newSubmission("李娜", "https://example.com/b1", "https://example.com/b2"),
	}

	alloc, err := New(&Parameters{RequiredDays: 1, SlotsPerDay: 3}, submissions, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	days, err := alloc.Allocate()
	require.ErrorIs(t, err, ErrInsufficientSubmitters)
	require.Nil(t, days)
}

func TestAllocate_InsufficientLinks(t *testing.T) {
	// 虽然有三位投稿人，但链接总数不够，应该优先报链接不足
	submissions := []*domain.Submission{
		newSubmission("王伟", "https://example.com/a1"),
		newSubmission("李娜"),
		newSubmission("张敏"),
	}

	alloc, err := New(&Parameters{RequiredDays: 1, SlotsPerDay: 3}, submissions, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	days, err := alloc.Allocate()
	require.ErrorIs(t, err, ErrInsufficientLinks)
	require.Nil(t, days)
}

func TestAllocate_DayUnfillable(t *testing.T) {
	// 链接总数够（12 条），但集中在一个人手里，
	// 其他两人的链接用完之后就再也凑不出三位不同的投稿人了
	submissions := []*domain.Submission{
		newSubmission("王伟",
			"https://example.com/a1", "https://example.com/a2", "https://example.com/a3",
			"https://example.com/a4", "https://example.com/a5", "https://example.com/a6",
			"https://example.com/a7", "https://example.com/a8", "https://example.com/a9",
			"https://example.com/a10"),
		newSubmission("李娜", "https://example.com/b1"),
		newSubmission("张敏", "https://example.com/c1"),
	}

	alloc, err := New(&Parameters{RequiredDays: 4, SlotsPerDay: 3}, submissions, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// 失败时不允许返回部分填好的结果
	days, err := alloc.Allocate()
	require.ErrorIs(t, err, ErrDayUnfillable)
	require.Nil(t, days)
}

func TestAllocate_DeterministicWithSameSeed(t *testing.T) {
	buildSubmissions := func() []*domain.Submission {
		return []*domain.Submission{
			newSubmission("王伟", "https://example.com/a1", "https://example.com/a2", "https://example.com/a3"),
			newSubmission("李娜", "https://example.com/b1", "https://example.com/b2", "https://example.com/b3"),
			newSubmission("张敏", "https://example.com/c1", "https://example.com/c2", "https://example.com/c3"),
			newSubmission("刘洋", "https://example.com/d1", "https://example.com/d2", "https://example.com/d3"),
		}
	}

	run := func(seed int64) map[int][]domain.CalendarSlot {
		alloc, err := New(&Parameters{RequiredDays: 3, SlotsPerDay: 3}, buildSubmissions(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		days, err := alloc.Allocate()
		require.NoError(t, err)
		return days
	}

	require.Equal(t, run(42), run(42))
}

func TestAllocate_UsageStaysBalanced(t *testing.T) {
	links := func(prefix string, n int) []string {
		result := make([]string, 0, n)
		for i := 0; i < n; i++ {
			result = append(result, "https://example.com/"+prefix+string(rune('a'+i)))
		}
		return result
	}

	for seed := int64(1); seed <= 10; seed++ {
		submissions := []*domain.Submission{
			newSubmission("王伟", links("w", 10)...),
			newSubmission("李娜", links("l", 10)...),
			newSubmission("张敏", links("z", 10)...),
			newSubmission("刘洋", links("y", 10)...),
		}

		alloc, err := New(&Parameters{RequiredDays: 10, SlotsPerDay: 3}, submissions, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		days, err := alloc.Allocate()
		require.NoError(t, err)

		// 没有人的链接被用完，所以任意两人被采用的数量最多差 1
		used := make(map[string]int)
		for _, slots := range days {
			for _, slot := range slots {
				used[slot.SubmitterName]++
			}
		}
		require.Len(t, used, 4)

		minUsed, maxUsed := -1, -1
		for _, cnt := range used {
			if minUsed == -1 || cnt < minUsed {
				minUsed = cnt
			}
			if cnt > maxUsed {
				maxUsed = cnt
			}
		}
		require.LessOrEqual(t, maxUsed-minUsed, 1, "seed=%d 时分配不均衡: %v", seed, used)
	}
}

func TestNew_NormalizesNamesAndLinks(t *testing.T) {
	// 同一个人分多次投稿、姓名带空格时应该合并成同一个池子
	submissions := []*domain.Submission{
		newSubmission("  王伟  ", "  https://example.com/a1  ", ""),
		newSubmission("王伟", "https://example.com/a2"),
		newSubmission("   ", "https://example.com/ghost"),
		newSubmission("李娜", "   "),
	}

	alloc, err := New(&Parameters{RequiredDays: 1, SlotsPerDay: 1}, submissions, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	require.Equal(t, []string{"王伟"}, alloc.names)
	require.ElementsMatch(t, []string{"https://example.com/a1", "https://example.com/a2"}, alloc.pools["王伟"])
}

func TestNew_RequiresRandomSource(t *testing.T) {
	_, err := New(&Parameters{RequiredDays: 1, SlotsPerDay: 1}, nil, nil)
	require.Error(t, err)
}

func TestNew_RejectsInvalidParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := New(&Parameters{RequiredDays: 0, SlotsPerDay: 3}, nil, rng)
	require.Error(t, err)

	_, err = New(&Parameters{RequiredDays: 24, SlotsPerDay: 0}, nil, rng)
	require.Error(t, err)
}
