package main

import (
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/allocator"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/repository"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 解析命令行参数
	 **********************************************/
	days := flag.Int("days", 0, "日历的天数，不指定时使用配置中的值")
	seed := flag.Int64("seed", 0, "随机数种子，不指定时使用当前时间")
	dryRun := flag.Bool("dry-run", false, "只生成并打印结果，不写入文件")
	flag.Parse()

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		os.Exit(1)
	}

	if *days > 0 {
		cfg.Calendar.RequiredDays = *days
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	/**********************************************
	 * 读取所有投稿
	 **********************************************/
	repo := repository.NewRepository(cfg)

	submissions, err := repo.GetAllSubmissions()
	if err != nil {
		logger.Error("无法读取投稿", "error", err)
		os.Exit(1)
	}
	logger.Info("已读取投稿", "count", len(submissions))

	/**********************************************
	 * 生成排期
	 **********************************************/
	rng := rand.New(rand.NewSource(*seed))
	alloc, err := allocator.New(&allocator.Parameters{
		RequiredDays: cfg.Calendar.RequiredDays,
		SlotsPerDay:  cfg.Calendar.SlotsPerDay,
	}, submissions, rng)
	if err != nil {
		logger.Error("无法创建分配器", "error", err)
		os.Exit(1)
	}

	scheduleDays, err := alloc.Allocate()
	if err != nil {
		switch {
		case errors.Is(err, allocator.ErrInsufficientLinks),
			errors.Is(err, allocator.ErrInsufficientSubmitters),
			errors.Is(err, allocator.ErrDayUnfillable):
			logger.Error("投稿不足以生成排期", "error", err)
		default:
			logger.Error("生成排期失败", "error", err)
		}
		os.Exit(1)
	}

	/**********************************************
	 * 打印每位投稿人的占用情况
	 **********************************************/
	used := make(map[string]int)
	for _, slots := range scheduleDays {
		for _, slot := range slots {
			used[slot.SubmitterName]++
		}
	}
	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Info("投稿人占用情况", "name", name, "used", used[name])
	}

	if *dryRun {
		logger.Info("dry-run 模式，不写入文件", "days", cfg.Calendar.RequiredDays, "seed", *seed)
		return
	}

	/**********************************************
	 * 写入排期
	 **********************************************/
	schedule := &domain.Schedule{
		GeneratedAt: time.Now(),
		Seed:        *seed,
		Days:        scheduleDays,
	}
	if err := repo.ReplaceSchedule(schedule); err != nil {
		logger.Error("无法写入排期", "error", err)
		os.Exit(1)
	}

	logger.Info("排期生成成功", "days", cfg.Calendar.RequiredDays, "seed", *seed)
}
