package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/repository"
)

// 本程序由 cron 每天调用一次，把当天解锁的内容投递到消息队列中，
// 真正的发送由 notify 程序完成
func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		logger.Error("无法加载时区", "timezone", cfg.Calendar.Timezone, "error", err)
		os.Exit(1)
	}

	/**********************************************
	 * 检查今天是否在日历窗口内
	 **********************************************/
	now := time.Now().In(loc)
	if int(now.Month()) != cfg.Calendar.TargetMonth || now.Day() > cfg.Calendar.RequiredDays {
		logger.Info("今天不在日历窗口内，无需通知", "date", now.Format("2006-01-02"))
		return
	}

	/**********************************************
	 * 读取今天的排期
	 **********************************************/
	repo := repository.NewRepository(cfg)

	schedule, err := repo.GetSchedule()
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotExists):
			logger.Error("已经进入日历窗口但排期还没有生成")
		default:
			logger.Error("无法读取排期", "error", err)
		}
		os.Exit(1)
	}

	slots := schedule.Days[now.Day()]
	if len(slots) == 0 {
		logger.Warn("今天的排期为空，跳过通知", "day", now.Day())
		return
	}

	/**********************************************
	 * 连接 redis，抢当天的锁
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.OperationExpiration)*time.Second)
	defer cancel()

	lockKey := fmt.Sprintf("daily_notify_lock_%s", now.Format("2006-01-02"))
	acquired, err := rdb.SetNX(ctx, lockKey, 1, time.Duration(cfg.Notify.LockExpiration)*time.Second).Result()
	if err != nil {
		logger.Error("无法获取通知锁", "error", err)
		os.Exit(1)
	}
	if !acquired {
		logger.Info("今天的通知已经投递过，跳过", "key", lockKey)
		return
	}

	/**********************************************
	 * 连接 rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 rabbitmq", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法建立通道", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法声明队列", "error", err)
		os.Exit(1)
	}

	/**********************************************
	 * 逐个投递通知
	 **********************************************/
	urls := make([]string, 0, len(slots))
	for _, slot := range slots {
		urls = append(urls, slot.URL)
	}
	data, err := json.Marshal(domain.DailyUnlockData{
		Day:     now.Day(),
		URLs:    urls,
		PageURL: cfg.Calendar.PageURL,
	})
	if err != nil {
		logger.Error("无法序列化通知内容", "error", err)
		os.Exit(1)
	}

	publish := func(msg domain.NotificationMessage) error {
		body, err := json.Marshal(msg)
		if err != nil {
			return err
		}

		pubCtx, pubCancel := context.WithTimeout(context.Background(), time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
		defer pubCancel()

		return ch.PublishWithContext(
			pubCtx,
			"",
			"notification_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
	}

	cnt := 0
	for _, to := range cfg.Notify.SMSRecipients {
		if err := publish(domain.NotificationMessage{Channel: "sms", Type: "daily_unlock", To: to, Data: data}); err != nil {
			logger.Error("无法投递短信通知", "to", to, "error", err)
			continue
		}
		cnt++
	}
	for _, to := range cfg.Notify.EmailRecipients {
		if err := publish(domain.NotificationMessage{Channel: "email", Type: "daily_unlock", To: to, Data: data}); err != nil {
			logger.Error("无法投递邮件通知", "to", to, "error", err)
			continue
		}
		cnt++
	}

	logger.Info("通知投递完成", "day", now.Day(), "count", cnt)
}
