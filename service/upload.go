package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"skilllink/pkg/errors"
)

// UploadService 把 base64 图片转发给外部图床（Cloudinary 风格的
// unsigned upload 接口），本服务不落地任何文件。
type UploadService struct {
	endpoint string
	preset   string
	client   *http.Client
}

func NewUploadServiceFromEnv() *UploadService {
	return &UploadService{
		endpoint: os.Getenv("UPLOAD_URL"),
		preset:   os.Getenv("UPLOAD_PRESET"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type UploadResult struct {
	Url      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

func (s *UploadService) UploadImage(base64Image string) (*UploadResult, error) {
	if base64Image == "" {
		return nil, errors.InvalidArg("base64Image is required")
	}
	if s.endpoint == "" {
		return nil, errors.Internal("Image upload is not configured", nil)
	}

	form := url.Values{}
	form.Set("file", base64Image)
	form.Set("upload_preset", s.preset)
	form.Set("folder", "skilllink")

	resp, err := s.client.PostForm(s.endpoint, form)
	if err != nil {
		return nil, errors.Internal("Failed to upload image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal("Failed to upload image",
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var uploaded struct {
		SecureUrl string `json:"secure_url"`
		PublicID  string `json:"public_id"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, errors.Internal("Failed to upload image", err)
	}
	return &UploadResult{
		Url:      uploaded.SecureUrl,
		PublicID: uploaded.PublicID,
		Width:    uploaded.Width,
		Height:   uploaded.Height,
	}, nil
}
