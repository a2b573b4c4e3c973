package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
		StaticDir       string `env:"STATIC_DIR" envDefault:"./static"`
	} `envPrefix:"SERVER_"`
	Storage struct {
		Dir             string `env:"DIR" envDefault:"./data"`
		SubmissionsFile string `env:"SUBMISSIONS_FILE" envDefault:"submissions.json"`
		ScheduleFile    string `env:"SCHEDULE_FILE" envDefault:"schedule.json"`
	} `envPrefix:"STORAGE_"`
	Calendar struct {
		RequiredDays int    `env:"REQUIRED_DAYS" envDefault:"24"`
		SlotsPerDay  int    `env:"SLOTS_PER_DAY" envDefault:"3"`
		TargetMonth  int    `env:"TARGET_MONTH" envDefault:"12"`
		Timezone     string `env:"TIMEZONE" envDefault:"Asia/Shanghai"`
		PageURL      string `env:"PAGE_URL" envDefault:"http://localhost:3000"`
	} `envPrefix:"CALENDAR_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD,required"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Notify struct {
		SMSRecipients   []string `env:"SMS_RECIPIENTS" envSeparator:","`
		EmailRecipients []string `env:"EMAIL_RECIPIENTS" envSeparator:","`
		LockExpiration  int      `env:"LOCK_EXPIRATION" envDefault:"93600"` // 26 小时，防止 cron 重复触发当天的通知
	} `envPrefix:"NOTIFY_"`
	SMS struct {
		Endpoint    string `env:"ENDPOINT,required"`
		AppKey      string `env:"APP_KEY,required"`
		Sign        string `env:"SIGN" envDefault:"【ECNC】"`
		SendTimeout int    `env:"SEND_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SMS_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if cfg.Calendar.TargetMonth < 1 || cfg.Calendar.TargetMonth > 12 {
		return nil, fmt.Errorf("CALENDAR_TARGET_MONTH 必须在 1 到 12 之间，当前为 %d", cfg.Calendar.TargetMonth)
	}
	if cfg.Calendar.RequiredDays <= 0 {
		return nil, fmt.Errorf("CALENDAR_REQUIRED_DAYS 必须为正数，当前为 %d", cfg.Calendar.RequiredDays)
	}
	if cfg.Calendar.SlotsPerDay <= 0 {
		return nil, fmt.Errorf("CALENDAR_SLOTS_PER_DAY 必须为正数，当前为 %d", cfg.Calendar.SlotsPerDay)
	}

	return cfg, nil
}
