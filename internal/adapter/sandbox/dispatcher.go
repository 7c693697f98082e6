package sandbox

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// Dispatcher accepts every message without delivering it. Addresses on a
// reserved test domain are rejected so failure handling can be exercised
// end to end.
type Dispatcher struct {
	log          *slog.Logger
	rejectDomain string
}

var _ port.EmailDispatcher = (*Dispatcher)(nil)

// NewDispatcher returns a sandbox dispatcher. Messages to addresses ending
// in "@"+rejectDomain fail with a terminal error; an empty rejectDomain
// accepts everything.
func NewDispatcher(log *slog.Logger, rejectDomain string) *Dispatcher {
	return &Dispatcher{log: log, rejectDomain: strings.ToLower(rejectDomain)}
}

// Send records the message and returns a generated message id.
func (d *Dispatcher) Send(ctx context.Context, msg port.OutboundEmail) (port.SendResult, error) {
	if err := ctx.Err(); err != nil {
		return port.SendResult{ErrorKind: domain.ErrorKindRetryable, Error: err.Error()}, nil
	}
	if d.rejectDomain != "" && strings.HasSuffix(strings.ToLower(msg.Recipient.Email), "@"+d.rejectDomain) {
		return port.SendResult{ErrorKind: domain.ErrorKindTerminal, Error: "sandbox: recipient rejected"}, nil
	}

	id := uuid.NewString()
	content := msg.Content.For(msg.Recipient)
	d.log.Debug("sandbox send",
		slog.String("campaign_id", msg.CampaignID),
		slog.String("variant", string(msg.Variant)),
		slog.String("email", msg.Recipient.Email),
		slog.String("subject", content.Subject),
		slog.String("message_id", id))
	return port.SendResult{Success: true, MessageID: id}, nil
}
