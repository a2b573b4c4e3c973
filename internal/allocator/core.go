package allocator

// pickSubmitter 在今天还没被选中且仍有剩余链接的投稿人中，
// 选出已采用数量最少的一位，数量相同时用随机源均匀随机打破平局
// 因为投稿人和天数的规模都很小，这里直接线性扫描，不需要维护堆
func (a *Allocator) pickSubmitter(chosen map[string]bool) (string, bool) {
	var candidates []string
	minUsage := 0

	for _, name := range a.names {
		if chosen[name] || len(a.pools[name]) == 0 {
			continue
		}

		switch {
		case len(candidates) == 0 || a.usage[name] < minUsage:
			minUsage = a.usage[name]
			candidates = append(candidates[:0], name)
		case a.usage[name] == minUsage:
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 0 {
		return "", false
	}

	return candidates[a.rng.Intn(len(candidates))], true
}
