package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"mesa-campaigns/internal/core/domain"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeRecipients(n int) []domain.Recipient {
	out := make([]domain.Recipient, n)
	for i := range n {
		out[i] = domain.Recipient{
			ID:    fmt.Sprintf("r%d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
			Name:  fmt.Sprintf("User %d", i),
		}
	}
	return out
}

func cleanContent(label domain.Label) domain.Content {
	return domain.Content{
		Subject: fmt.Sprintf("Your March product update (%s)", label),
		Body:    "Hi there, here is what changed this month. You can unsubscribe at any time.",
		Footer:  "Acme Inc, 1 Main Street, Springfield",
	}
}

// dispatchedState builds a campaign whose labels were all sent to the
// given number of recipients with sequential message ids.
func dispatchedState(sizes map[domain.Label]int) domain.CampaignState {
	st := domain.NewCampaignState("camp-1", "brief", "", len(sizes), testNow)
	st.Stage = domain.StageAllDispatched
	for _, l := range domain.Labels {
		n, ok := sizes[l]
		if !ok {
			continue
		}
		group := makeRecipients(n)
		st.Groups[l] = group
		st.Content[l] = cleanContent(l)
		outcomes := make([]domain.RecipientOutcome, n)
		for i, r := range group {
			outcomes[i] = domain.RecipientOutcome{
				Recipient:         r,
				Success:           true,
				ExternalMessageID: fmt.Sprintf("%s-%s", l, r.ID),
			}
		}
		st.Dispatch[l] = domain.DispatchRecord{Sent: true, AttemptedAt: testNow, Outcomes: outcomes}
	}
	return st
}
