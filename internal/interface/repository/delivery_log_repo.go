package repository

import (
	"context"
	"time"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormDeliveryLogRepository implements the DeliveryLogRepository interface
type GormDeliveryLogRepository struct {
	db *gorm.DB
}

// DeliveryLogs GORM model for database mapping
type DeliveryLogs struct {
	ID          uint      `gorm:"primaryKey"`
	Kind        string    `gorm:"column:kind;index"`
	Recipient   string    `gorm:"column:recipient"`
	SlotTime    time.Time `gorm:"column:slot_time;index"`
	Succeeded   bool      `gorm:"column:succeeded"`
	ErrorDetail string    `gorm:"column:error_detail"`
	CreatedAt   time.Time
}

// TableName overrides the default table name
func (DeliveryLogs) TableName() string {
	return "t_delivery_logs"
}

// NewGormDeliveryLogRepository creates a new GORM delivery log repository
func NewGormDeliveryLogRepository(db *gorm.DB) (repository.DeliveryLogRepository, error) {
	if err := db.AutoMigrate(&DeliveryLogs{}); err != nil {
		return nil, err
	}
	return &GormDeliveryLogRepository{db: db}, nil
}

// Record writes one send attempt to the log
func (r *GormDeliveryLogRepository) Record(ctx context.Context, entry *entity.DeliveryLog) error {
	row := DeliveryLogs{
		Kind:        entry.Kind,
		Recipient:   entry.Recipient,
		SlotTime:    entry.SlotTime,
		Succeeded:   entry.Succeeded,
		ErrorDetail: entry.ErrorDetail,
	}

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return result.Error
	}

	entry.ID = row.ID
	entry.CreatedAt = row.CreatedAt
	return nil
}
