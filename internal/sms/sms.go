package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/config"
)

// Client 对接短信服务商的 HTTP 接口
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.SMS.SendTimeout) * time.Second,
		},
	}
}

type sendRequest struct {
	AppKey  string `json:"appKey"`
	To      string `json:"to"`
	Content string `json:"content"`
}

type sendResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) Send(ctx context.Context, to string, content string) error {
	body, err := json.Marshal(sendRequest{
		AppKey:  c.cfg.SMS.AppKey,
		To:      to,
		Content: c.cfg.SMS.Sign + content,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.SMS.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("短信服务商返回了异常状态码 %d", resp.StatusCode)
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("无法解析短信服务商的响应: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("短信发送失败: code=%d, message=%s", result.Code, result.Message)
	}

	return nil
}
