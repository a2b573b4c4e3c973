package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/repository"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/utils"
)

func main() {
	var n int
	flag.IntVar(&n, "n", 10, "要插入的随机投稿数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建 repository
	repo := repository.NewRepository(cfg)

	if n <= 0 {
		slog.Error("请输入合法的投稿数量")
		return
	}

	cnt := n
	for i := 0; i < n; i++ {
		submission := utils.GenerateRandomSubmission()
		if err := repo.InsertSubmission(submission); err != nil {
			slog.Error("无法插入投稿", slog.String("error", err.Error()))
			continue
		}

		cnt--
	}

	slog.Info("插入随机投稿成功", slog.Int("count", n-cnt))
}
