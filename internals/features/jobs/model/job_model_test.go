package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestJobLifecycleHappyPath(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	job := JobModel{Status: JobStatusPending, Action: JobActionDigitalize}

	require.NoError(t, job.MarkProcessing(now))
	require.Equal(t, JobStatusProcessing, job.Status)
	require.Equal(t, 1, job.Attempts)
	require.NotNil(t, job.StartedAt)

	result := datatypes.JSON([]byte(`{"video_url":"https://drive.example/v"}`))
	require.NoError(t, job.MarkDone(now.Add(time.Minute), result))
	require.Equal(t, JobStatusDone, job.Status)
	require.NotNil(t, job.FinishedAt)
	require.Empty(t, job.ErrorMessage)
}

func TestJobFailThenRetry(t *testing.T) {
	now := time.Now().UTC()
	job := JobModel{Status: JobStatusPending}

	require.NoError(t, job.MarkProcessing(now))
	require.NoError(t, job.MarkFailed(now, "pipeline timeout"))
	require.Equal(t, JobStatusFailed, job.Status)
	require.Equal(t, "pipeline timeout", job.ErrorMessage)

	require.NoError(t, job.Retry())
	require.Equal(t, JobStatusPending, job.Status)
	require.Empty(t, job.ErrorMessage)
	require.Nil(t, job.StartedAt)
	require.Nil(t, job.FinishedAt)

	// Retry menambah attempts lewat MarkProcessing berikutnya
	require.NoError(t, job.MarkProcessing(now))
	require.Equal(t, 2, job.Attempts)
}

func TestJobIllegalTransitions(t *testing.T) {
	now := time.Now().UTC()

	done := JobModel{Status: JobStatusDone}
	require.Error(t, done.MarkProcessing(now))
	require.Error(t, done.MarkFailed(now, "x"))
	require.Error(t, done.Retry())

	pending := JobModel{Status: JobStatusPending}
	require.Error(t, pending.MarkDone(now, nil), "pending tidak boleh langsung done")
	require.Error(t, pending.Retry())

	processing := JobModel{Status: JobStatusProcessing}
	require.Error(t, processing.MarkProcessing(now))
	require.Error(t, processing.Retry())
}
