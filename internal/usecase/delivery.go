package usecase

import (
	"context"
	"time"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/internal/domain/repository"
	"bookcast-service/pkg/logger"
)

// recordDelivery writes one send attempt to the delivery log. The log is
// best-effort: a failed write never fails the calling flow.
func recordDelivery(ctx context.Context, repo repository.DeliveryLogRepository, log logger.Logger, kind, recipient string, slot time.Time, sendErr error) {
	entry := &entity.DeliveryLog{
		Kind:      kind,
		Recipient: recipient,
		SlotTime:  slot,
		Succeeded: sendErr == nil,
	}
	if sendErr != nil {
		entry.ErrorDetail = sendErr.Error()
	}

	if err := repo.Record(ctx, entry); err != nil {
		log.Warn("Failed to record delivery attempt",
			"kind", kind,
			"recipient", recipient,
			"error", err)
	}
}
