package allocator

// 分配参数
type Parameters struct {
	RequiredDays int // 需要填满的天数
	SlotsPerDay  int // 每天的格子数量，同一天内的投稿人必须互不相同
}
