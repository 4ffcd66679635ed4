package decision

import (
	"testing"
	"time"
)

func TestDerive(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name    string
		history []Decision
		want    ApproverStatus
	}{
		{
			name:    "empty history",
			history: nil,
			want:    ApproverNotResponded,
		},
		{
			name: "single rejection",
			history: []Decision{
				{ID: 1, Status: StatusRejected, DecidedAt: at(0)},
			},
			want: ApproverRejected,
		},
		{
			name: "approval is terminal even if older than a rejection",
			history: []Decision{
				{ID: 1, Status: StatusApproved, DecidedAt: at(0)},
				{ID: 2, Status: StatusRejected, DecidedAt: at(5)},
			},
			want: ApproverApproved,
		},
		{
			name: "latest of several rejections wins",
			history: []Decision{
				{ID: 1, Status: StatusRejected, DecidedAt: at(0)},
				{ID: 2, Status: StatusRejected, DecidedAt: at(10)},
			},
			want: ApproverRejected,
		},
		{
			name: "same timestamp breaks ties by id",
			history: []Decision{
				{ID: 2, Status: StatusRejected, DecidedAt: at(0)},
				{ID: 1, Status: StatusRejected, DecidedAt: at(0)},
			},
			want: ApproverRejected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.history); got != tt.want {
				t.Fatalf("Derive() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveApprovedCountNeverExceedsOne(t *testing.T) {
	// the ledger enforces at most one APPROVED decision per approver; Derive
	// must still behave if handed a malformed history
	h := []Decision{
		{ID: 1, Status: StatusApproved, DecidedAt: time.Now().UTC()},
		{ID: 2, Status: StatusApproved, DecidedAt: time.Now().UTC()},
	}
	if got := Derive(h); got != ApproverApproved {
		t.Fatalf("Derive() = %s, want APPROVED", got)
	}
}
