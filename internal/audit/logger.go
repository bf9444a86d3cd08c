package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:   ev.ActorID,
		ActorKind: ev.ActorKind,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}

	return l.db.Create(&entry).Error
}
