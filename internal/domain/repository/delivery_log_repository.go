package repository

import (
	"context"

	"bookcast-service/internal/domain/entity"
)

// DeliveryLogRepository defines the interface for the email delivery audit log
type DeliveryLogRepository interface {
	Record(ctx context.Context, entry *entity.DeliveryLog) error
}
