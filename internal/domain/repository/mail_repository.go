package repository

import (
	"context"

	"bookcast-service/internal/domain/entity"
)

// MailRepository defines the interface for delivering outbound email
type MailRepository interface {
	Send(ctx context.Context, email *entity.OutboundEmail) error
}
