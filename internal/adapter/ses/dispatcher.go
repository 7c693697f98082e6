package ses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// API is the subset of the SES v2 client used by the dispatcher.
type API interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// credentialErrorCodes are API error codes meaning no message can be sent
// with the current identity.
var credentialErrorCodes = map[string]struct{}{
	"UnrecognizedClientException": {},
	"InvalidClientTokenId":        {},
	"AccessDeniedException":       {},
	"SignatureDoesNotMatch":       {},
	"ExpiredTokenException":       {},
}

// Dispatcher sends campaign mail through Amazon SES. Engagement events are
// tracked through the configuration set, and every message is tagged with
// its campaign and variant.
type Dispatcher struct {
	api       API
	from      string
	configSet string
	log       *slog.Logger
}

var _ port.EmailDispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher sending from the given address.
func NewDispatcher(api API, from, configSet string, log *slog.Logger) (*Dispatcher, error) {
	if from == "" {
		return nil, errors.New("ses: sender address is required")
	}
	return &Dispatcher{api: api, from: from, configSet: configSet, log: log}, nil
}

// NewClient builds an SES v2 client from cfg.
func NewClient(cfg aws.Config) *sesv2.Client {
	return sesv2.NewFromConfig(cfg)
}

// Send delivers one message. Throttling and rejected recipients are
// reported in the result; account level failures wrap
// port.ErrDispatcherUnavailable.
func (d *Dispatcher) Send(ctx context.Context, msg port.OutboundEmail) (port.SendResult, error) {
	content := msg.Content.For(msg.Recipient)
	body := content.Body
	if content.Footer != "" {
		body += "\n\n" + content.Footer
	}

	in := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(d.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.Recipient.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(content.Subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String("campaign_id"), Value: aws.String(msg.CampaignID)},
			{Name: aws.String("variant"), Value: aws.String(string(msg.Variant))},
		},
	}
	if d.configSet != "" {
		in.ConfigurationSetName = aws.String(d.configSet)
	}

	out, err := d.api.SendEmail(ctx, in)
	if err != nil {
		return d.classify(msg, err)
	}
	return port.SendResult{Success: true, MessageID: aws.ToString(out.MessageId)}, nil
}

func (d *Dispatcher) classify(msg port.OutboundEmail, err error) (port.SendResult, error) {
	var (
		throttled   *types.TooManyRequestsException
		limited     *types.LimitExceededException
		rejected    *types.MessageRejected
		unverified  *types.MailFromDomainNotVerifiedException
		badRequest  *types.BadRequestException
		suspended   *types.AccountSuspendedException
		paused      *types.SendingPausedException
		notFound    *types.NotFoundException
		apiErr      smithy.APIError
		unavailable = func() (port.SendResult, error) {
			return port.SendResult{ErrorKind: domain.ErrorKindTerminal, Error: err.Error()},
				fmt.Errorf("ses: %w: %w", port.ErrDispatcherUnavailable, err)
		}
	)

	switch {
	case errors.As(err, &suspended), errors.As(err, &paused), errors.As(err, &notFound):
		return unavailable()
	case errors.As(err, &throttled), errors.As(err, &limited):
		return port.SendResult{ErrorKind: domain.ErrorKindRetryable, Error: err.Error()}, nil
	case errors.As(err, &rejected), errors.As(err, &unverified), errors.As(err, &badRequest):
		d.log.Warn("ses rejected message",
			slog.String("campaign_id", msg.CampaignID),
			slog.String("email", msg.Recipient.Email),
			slog.Any("error", err))
		return port.SendResult{ErrorKind: domain.ErrorKindTerminal, Error: err.Error()}, nil
	case errors.As(err, &apiErr):
		if _, ok := credentialErrorCodes[apiErr.ErrorCode()]; ok {
			return unavailable()
		}
	}
	return port.SendResult{ErrorKind: domain.ErrorKindRetryable, Error: err.Error()}, nil
}
