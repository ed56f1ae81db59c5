package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Aksi yang dicatat di audit trail
const (
	ActionMaterialUploaded  = "material.uploaded"
	ActionMaterialPublished = "material.published"
	ActionGenerateRequested = "material.generate_requested"
	ActionJobRetried        = "job.retried"
	ActionUserLoggedIn      = "user.logged_in"
	ActionUserLoggedOut     = "user.logged_out"
	ActionUserDeactivated   = "user.deactivated"
	ActionSyncTriggered     = "system.sync_triggered"
)

type AuditLogModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	UserEmail string         `gorm:"size:255" json:"user_email,omitempty"`
	Action    string         `gorm:"size:60;not null;index" json:"action"`
	EntityID  string         `gorm:"size:60;index" json:"entity_id,omitempty"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	IPAddress string         `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
