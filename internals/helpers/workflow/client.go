// file: internals/helpers/workflow/client.go
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"gorm.io/datatypes"

	"materiku_backend/internals/configs"
)

// TriggerPayload: body webhook outbound ke n8n saat job dibuat/di-retry.
// Payload diteruskan apa adanya dari kolom JSONB job, tanpa decode ulang.
type TriggerPayload struct {
	JobID      string         `json:"job_id"`
	MaterialID string         `json:"material_id,omitempty"`
	Action     string         `json:"action"`
	Payload    datatypes.JSON `json:"payload,omitempty"`
}

// Client memanggil webhook workflow engine (n8n). Fire-and-forget:
// kegagalan cuma dicatat, tidak menggagalkan request pembuat job.
type Client struct {
	cfg  configs.WorkflowConfig
	http *http.Client
}

func NewClient(cfg configs.WorkflowConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// TriggerJob mengirim payload ke n8n di goroutine terpisah. URL kosong =
// trigger dimatikan, cukup dicatat.
func (c *Client) TriggerJob(p TriggerPayload) {
	if !c.cfg.Enabled() {
		log.Printf("[INFO] n8n webhook tidak dikonfigurasi, skip trigger job %s", p.JobID)
		return
	}
	go func() {
		if err := c.send(p); err != nil {
			log.Printf("[WARN] n8n trigger job %s gagal: %v", p.JobID, err)
		}
	}()
}

func (c *Client) send(p TriggerPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	attempts := c.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(c.cfg.RetryDelay)
		}
		lastErr = c.post(body)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Client) post(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("n8n webhook status %d", resp.StatusCode)
	}
	return nil
}
