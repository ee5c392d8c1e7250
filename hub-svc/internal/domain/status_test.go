package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{input: "pending", want: StatusPending},
		{input: " Out_For_Delivery ", want: StatusOutForDelivery},
		{input: "pending_approval", want: StatusPendingApproval},
		{input: "served", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			got, err := ParseStatus(testCase.input)
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{name: "approve", from: StatusPendingApproval, to: StatusPending, ok: true},
		{name: "reject", from: StatusPendingApproval, to: StatusCancelled, ok: true},
		{name: "start cooking", from: StatusPending, to: StatusPreparing, ok: true},
		{name: "dine-in done", from: StatusPreparing, to: StatusCompleted, ok: true},
		{name: "walk-in done", from: StatusPreparing, to: StatusDelivered, ok: true},
		{name: "dispatch", from: StatusPreparing, to: StatusOutForDelivery, ok: true},
		{name: "drop off", from: StatusOutForDelivery, to: StatusDelivered, ok: true},
		{name: "skip kitchen", from: StatusPending, to: StatusDelivered},
		{name: "reopen cancelled", from: StatusCancelled, to: StatusPending},
		{name: "approve twice", from: StatusPending, to: StatusPending},
		{name: "completed is closed by settlement only", from: StatusCompleted, to: StatusCancelled},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := CheckTransition(testCase.from, testCase.to)
			if testCase.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrIllegalTransition))
			}
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, st := range TerminalStatuses() {
		assert.True(t, st.IsTerminal(), st)
	}
	for _, st := range []Status{StatusPendingApproval, StatusPending, StatusPreparing, StatusOutForDelivery} {
		assert.False(t, st.IsTerminal(), st)
	}
	assert.False(t, StatusCompleted.Settled())
	assert.True(t, StatusDelivered.Settled())
}
