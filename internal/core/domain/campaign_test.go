package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func TestStageOrder(t *testing.T) {
	assert.True(t, StageInitialized.Before(StageAwaitingDispatch))
	assert.False(t, StageFinalized.Before(StageAllDispatched))
	assert.False(t, StageFailed.Before(StageFinalized))
	assert.True(t, StageFailed.Valid())
	assert.False(t, Stage("paused").Valid())

	assert.True(t, StagePartiallyDispatched.Dispatchable())
	assert.False(t, StageContentReady.Dispatchable())
}

func TestContentFor(t *testing.T) {
	c := Content{Subject: "{name}, your offer", Body: "Hello {name}!", Footer: "Team"}

	assert.Equal(t, "Ada, your offer", c.For(Recipient{Name: "Ada"}).Subject)
	assert.Equal(t, "Hello there!", c.For(Recipient{}).Body)
	assert.Equal(t, "{name}, your offer", c.Subject)
}

func TestCloneIsIndependent(t *testing.T) {
	st := NewCampaignState("c1", "brief", "", 2, testNow)
	st.Groups[LabelA] = []Recipient{{ID: "1"}}
	st.Error = &StateError{Step: StepContent}

	cp := st.Clone()
	cp.Groups[LabelB] = []Recipient{{ID: "2"}}
	cp.Dispatch[LabelA] = DispatchRecord{Sent: true}
	cp.Error.Message = "changed"

	assert.Len(t, st.Groups, 1)
	assert.Empty(t, st.Dispatch)
	assert.Empty(t, st.Error.Message)
}

func TestAllSentAndFail(t *testing.T) {
	st := NewCampaignState("c1", "brief", "", 2, testNow)
	assert.False(t, st.AllSent())

	st.Groups[LabelA] = []Recipient{{ID: "1"}}
	st.Groups[LabelB] = []Recipient{{ID: "2"}}
	st.Dispatch[LabelA] = DispatchRecord{Sent: true}
	assert.False(t, st.AllSent())
	st.Dispatch[LabelB] = DispatchRecord{Sent: true}
	assert.True(t, st.AllSent())
	assert.Equal(t, []Label{LabelA, LabelB}, st.PresentLabels())

	st.Stage = StageSegmented
	st.Fail(StepContent, errors.New("model down"), testNow)
	require.NotNil(t, st.Error)
	assert.Equal(t, StageFailed, st.Stage)
	assert.Equal(t, StageSegmented, st.Error.From)

	require.NoError(t, st.Advance(StageContentReady, testNow))
	assert.Nil(t, st.Error)
}

func TestAllSentSkipsEmptyGroups(t *testing.T) {
	st := NewCampaignState("c1", "brief", "", 2, testNow)
	st.Groups[LabelA] = nil
	st.Groups[LabelB] = []Recipient{{ID: "1"}}
	assert.False(t, st.AllSent())

	st.Dispatch[LabelB] = DispatchRecord{Sent: true}
	assert.True(t, st.AllSent())

	empty := NewCampaignState("c2", "brief", "", 2, testNow)
	empty.Groups[LabelA] = nil
	empty.Groups[LabelB] = nil
	assert.False(t, empty.AllSent())
}

func TestAdvanceNeverMovesBackwards(t *testing.T) {
	st := NewCampaignState("c1", "brief", "", 2, testNow)

	require.NoError(t, st.Advance(StageContentReady, testNow))
	require.NoError(t, st.Advance(StageContentReady, testNow))
	assert.ErrorIs(t, st.Advance(StageSegmented, testNow), ErrInvalidStage)
	assert.ErrorIs(t, st.Advance(StageFailed, testNow), ErrInvalidStage)
	assert.ErrorIs(t, st.Advance(Stage("paused"), testNow), ErrInvalidStage)
	assert.Equal(t, StageContentReady, st.Stage)

	st.Fail(StepDeliverability, errors.New("boom"), testNow)
	require.NoError(t, st.Advance(StageStrategyReady, testNow))
	assert.Equal(t, StageStrategyReady, st.Stage)
}

func TestDispatchRecordInProgress(t *testing.T) {
	at := testNow
	assert.False(t, DispatchRecord{}.InProgress())
	assert.True(t, DispatchRecord{ClaimedAt: &at}.InProgress())
	assert.False(t, DispatchRecord{ClaimedAt: &at, Sent: true}.InProgress())
}

func TestMetricsMergeKeepsMaximum(t *testing.T) {
	a := MetricsSnapshot{Delivered: 10, Opened: 4, Clicked: 1}
	b := MetricsSnapshot{Delivered: 8, Opened: 6, Clicked: -3, Converted: 2}

	assert.Equal(t, MetricsSnapshot{Delivered: 10, Opened: 6, Clicked: 1, Converted: 2}, a.Merge(b))
}

func TestParseLabel(t *testing.T) {
	l, ok := ParseLabel("C")
	assert.True(t, ok)
	assert.Equal(t, LabelC, l)

	_, ok = ParseLabel("a")
	assert.False(t, ok)
}
