package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
	"mesa-campaigns/internal/core/port/mocks"
)

func readyState(n int) domain.CampaignState {
	st := domain.NewCampaignState("camp-1", "brief", "", 1, testNow)
	st.Stage = domain.StageAwaitingDispatch
	st.Groups[domain.LabelA] = makeRecipients(n)
	st.Content[domain.LabelA] = cleanContent(domain.LabelA)
	return st
}

func accept(_ context.Context, msg port.OutboundEmail) (port.SendResult, error) {
	return port.SendResult{Success: true, MessageID: "msg-" + msg.Recipient.ID}, nil
}

// TestDispatchAttemptsEveryRecipient checks that one failing recipient does
// not abort the batch and outcomes line up with the group.
func TestDispatchAttemptsEveryRecipient(t *testing.T) {
	defer goleak.VerifyNone(t)

	dispatcher := mocks.NewMockEmailDispatcher(t)
	dispatcher.EXPECT().
		Send(mock.Anything, mock.AnythingOfType("port.OutboundEmail")).
		RunAndReturn(func(ctx context.Context, msg port.OutboundEmail) (port.SendResult, error) {
			if msg.Recipient.ID == "r5" {
				return port.SendResult{ErrorKind: domain.ErrorKindTerminal, Error: "mailbox unavailable"}, nil
			}
			return accept(ctx, msg)
		}).
		Times(10)

	st := readyState(10)
	coord := NewDispatchCoordinator(dispatcher, 3, discardLogger(), fixedClock)

	out, err := coord.Dispatch(context.Background(), st, domain.LabelA)
	require.NoError(t, err)

	rec := out.Dispatch[domain.LabelA]
	assert.True(t, rec.Sent)
	assert.Equal(t, testNow, rec.AttemptedAt)
	require.Len(t, rec.Outcomes, 10)
	assert.Equal(t, 9, rec.Succeeded())
	assert.Equal(t, 1, rec.Failed())
	for i, o := range rec.Outcomes {
		assert.Equal(t, st.Groups[domain.LabelA][i], o.Recipient)
	}
	assert.False(t, rec.Outcomes[5].Success)
	assert.Equal(t, domain.ErrorKindTerminal, rec.Outcomes[5].ErrorKind)
	assert.Equal(t, "msg-r4", rec.Outcomes[4].ExternalMessageID)

	// the input state is left untouched
	assert.False(t, st.Dispatch[domain.LabelA].Sent)
}

func TestDispatchSentVariantIsNoop(t *testing.T) {
	dispatcher := mocks.NewMockEmailDispatcher(t)
	st := readyState(3)
	st.Dispatch[domain.LabelA] = domain.DispatchRecord{Sent: true, AttemptedAt: testNow}

	out, err := NewDispatchCoordinator(dispatcher, 2, discardLogger(), fixedClock).
		Dispatch(context.Background(), st, domain.LabelA)

	require.NoError(t, err)
	assert.Equal(t, st.Dispatch[domain.LabelA], out.Dispatch[domain.LabelA])
	dispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatchValidation(t *testing.T) {
	cases := map[string]func(st *domain.CampaignState){
		"missing group": func(st *domain.CampaignState) { delete(st.Groups, domain.LabelA) },
		"empty group":   func(st *domain.CampaignState) { st.Groups[domain.LabelA] = []domain.Recipient{} },
		"missing content": func(st *domain.CampaignState) {
			delete(st.Content, domain.LabelA)
		},
		"empty content": func(st *domain.CampaignState) { st.Content[domain.LabelA] = domain.Content{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			dispatcher := mocks.NewMockEmailDispatcher(t)
			st := readyState(2)
			mutate(&st)

			_, err := NewDispatchCoordinator(dispatcher, 2, discardLogger(), fixedClock).
				Dispatch(context.Background(), st, domain.LabelA)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, domain.LabelA, verr.Label)
		})
	}
}

func TestDispatchUnavailableLeavesVariantUnsent(t *testing.T) {
	defer goleak.VerifyNone(t)

	dispatcher := mocks.NewMockEmailDispatcher(t)
	dispatcher.EXPECT().
		Send(mock.Anything, mock.Anything).
		Return(port.SendResult{}, fmt.Errorf("invalid credentials: %w", port.ErrDispatcherUnavailable)).
		Once()

	st := readyState(6)
	out, err := NewDispatchCoordinator(dispatcher, 1, discardLogger(), fixedClock).
		Dispatch(context.Background(), st, domain.LabelA)

	var unavailable *domain.DispatchUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, domain.LabelA, unavailable.Label)
	assert.ErrorIs(t, err, port.ErrDispatcherUnavailable)
	assert.False(t, out.Dispatch[domain.LabelA].Sent)
}

func TestDispatchTransportErrorIsRetryableOutcome(t *testing.T) {
	dispatcher := mocks.NewMockEmailDispatcher(t)
	dispatcher.EXPECT().
		Send(mock.Anything, mock.Anything).
		Return(port.SendResult{}, errors.New("connection reset")).
		Times(2)

	out, err := NewDispatchCoordinator(dispatcher, 2, discardLogger(), fixedClock).
		Dispatch(context.Background(), readyState(2), domain.LabelA)

	require.NoError(t, err)
	rec := out.Dispatch[domain.LabelA]
	assert.True(t, rec.Sent)
	assert.Equal(t, 0, rec.Succeeded())
	for _, o := range rec.Outcomes {
		assert.Equal(t, domain.ErrorKindRetryable, o.ErrorKind)
		assert.Equal(t, "connection reset", o.Error)
	}
}

func TestDispatchRespectsWorkerLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	var inFlight, peak atomic.Int32
	dispatcher := mocks.NewMockEmailDispatcher(t)
	dispatcher.EXPECT().
		Send(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, msg port.OutboundEmail) (port.SendResult, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return accept(ctx, msg)
		}).
		Times(12)

	out, err := NewDispatchCoordinator(dispatcher, 2, discardLogger(), fixedClock).
		Dispatch(context.Background(), readyState(12), domain.LabelA)

	require.NoError(t, err)
	assert.Equal(t, 12, out.Dispatch[domain.LabelA].Succeeded())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDispatchIgnoresCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	dispatcher := mocks.NewMockEmailDispatcher(t)
	dispatcher.EXPECT().
		Send(mock.Anything, mock.Anything).
		RunAndReturn(func(sctx context.Context, msg port.OutboundEmail) (port.SendResult, error) {
			if calls.Add(1) == 3 {
				cancel()
			}
			return accept(sctx, msg)
		}).
		Times(12)

	coord := NewDispatchCoordinator(dispatcher, 2, discardLogger(), fixedClock)
	out, err := coord.Dispatch(ctx, readyState(12), domain.LabelA)
	require.NoError(t, err)

	rec := out.Dispatch[domain.LabelA]
	assert.True(t, rec.Sent)
	require.Len(t, rec.Outcomes, 12)
	assert.Equal(t, 12, rec.Succeeded())
}

func TestDispatchValidateHasNoSideEffects(t *testing.T) {
	coord := NewDispatchCoordinator(mocks.NewMockEmailDispatcher(t), 2, discardLogger(), fixedClock)

	st := readyState(0)
	var verr *domain.ValidationError
	require.ErrorAs(t, coord.Validate(st, domain.LabelA), &verr)
	require.ErrorAs(t, coord.Validate(st, domain.LabelB), &verr)
	assert.NoError(t, coord.Validate(readyState(3), domain.LabelA))
}
