package workflow

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"materiku_backend/internals/configs"
	jobModel "materiku_backend/internals/features/jobs/model"
)

// Payload JSONB dari job harus diteruskan sebagai objek JSON, bukan
// string base64 hasil marshal []byte.
func TestTriggerPayloadMarshalFromJob(t *testing.T) {
	job := jobModel.JobModel{
		MaterialID: "MTRABCD1234",
		Action:     jobModel.JobActionDigitalize,
		Payload:    datatypes.JSON([]byte(`{"source_file_link":"https://drive.google.com/file/d/abc","subject_name":"Biologi"}`)),
	}

	p := TriggerPayload{
		JobID:      "9f0c2a34-0000-0000-0000-000000000001",
		MaterialID: job.MaterialID,
		Action:     job.Action,
		Payload:    job.Payload,
	}

	body, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded struct {
		JobID      string         `json:"job_id"`
		MaterialID string         `json:"material_id"`
		Action     string         `json:"action"`
		Payload    map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "MTRABCD1234", decoded.MaterialID)
	assert.Equal(t, jobModel.JobActionDigitalize, decoded.Action)
	require.NotNil(t, decoded.Payload)
	assert.Equal(t, "https://drive.google.com/file/d/abc", decoded.Payload["source_file_link"])
	assert.Equal(t, "Biologi", decoded.Payload["subject_name"])
}

func TestTriggerPayloadOmitsEmptyPayload(t *testing.T) {
	body, err := json.Marshal(TriggerPayload{JobID: "j1", Action: "digitalize"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"payload"`)
}

func TestClientSendForwardsPayloadAndToken(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(configs.WorkflowConfig{
		WebhookURL:    srv.URL,
		APIToken:      "rahasia",
		Timeout:       2 * time.Second,
		RetryAttempts: 1,
	})

	err := c.send(TriggerPayload{
		JobID:      "j1",
		MaterialID: "MTR1",
		Action:     jobModel.JobActionDigitalize,
		Payload:    datatypes.JSON([]byte(`{"k":"v"}`)),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer rahasia", gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	var received map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &received))
	payload, ok := received["payload"].(map[string]any)
	require.True(t, ok, "payload harus objek JSON")
	assert.Equal(t, "v", payload["k"])
}
