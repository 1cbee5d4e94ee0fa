package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Pusher 把通知转发到外部推送服务
type Pusher interface {
	Push(token, title, body string, data map[string]string) error
}

// FCMPusher 调用 FCM 的 legacy send 接口
type FCMPusher struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewFCMPusherFromEnv 没有配置服务端密钥时返回 nil，调用方按未启用处理
func NewFCMPusherFromEnv() *FCMPusher {
	serverKey := os.Getenv("FCM_SERVER_KEY")
	if serverKey == "" {
		return nil
	}
	endpoint := os.Getenv("FCM_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://fcm.googleapis.com/fcm/send"
	}
	return &FCMPusher{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *FCMPusher) Push(token, title, body string, data map[string]string) error {
	payload := map[string]interface{}{
		"to": token,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
		"data": data,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequest("POST", p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+p.serverKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
