package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}
	assert.True(t, b.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, b.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, b.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, b.CanTransitionTo(BookingStatusCheckedIn))

	b.Status = BookingStatusConfirmed
	assert.True(t, b.CanTransitionTo(BookingStatusCheckedIn))
	assert.False(t, b.CanTransitionTo(BookingStatusPending))

	b.Status = BookingStatusCompleted
	assert.False(t, b.CanTransitionTo(BookingStatusCancelled))
}

func TestTM30Transitions(t *testing.T) {
	r := &TM30Registration{Status: TM30StatusDraft}
	assert.True(t, r.CanTransitionTo(TM30StatusProcessing))
	assert.False(t, r.CanTransitionTo(TM30StatusSubmitted))
	assert.False(t, r.CanTransitionTo(TM30StatusApproved))

	r.Status = TM30StatusProcessing
	assert.True(t, r.CanTransitionTo(TM30StatusSubmitted))
	assert.True(t, r.CanTransitionTo(TM30StatusApproved))
	assert.True(t, r.CanTransitionTo(TM30StatusFailed))

	// Failed registrations can be re-dispatched; approved ones are final.
	r.Status = TM30StatusFailed
	assert.True(t, r.CanTransitionTo(TM30StatusProcessing))

	r.Status = TM30StatusApproved
	assert.True(t, r.IsTerminal())
	assert.False(t, r.CanTransitionTo(TM30StatusProcessing))
	assert.False(t, r.CanTransitionTo(TM30StatusFailed))
}

func TestAgentDecisionTransitions(t *testing.T) {
	d := &AgentDecision{Status: AgentStatusPending}
	assert.True(t, d.CanTransitionTo(AgentStatusApproved))
	assert.True(t, d.CanTransitionTo(AgentStatusRejected))
	assert.False(t, d.CanTransitionTo(AgentStatusExecuted))
	assert.False(t, d.CanTransitionTo(AgentStatusRolledBack))

	d.Status = AgentStatusApproved
	assert.True(t, d.CanTransitionTo(AgentStatusExecuted))
	assert.False(t, d.CanTransitionTo(AgentStatusRejected))

	// Rollback is only reachable from executed.
	d.Status = AgentStatusExecuted
	assert.True(t, d.CanTransitionTo(AgentStatusRolledBack))

	d.Status = AgentStatusRejected
	assert.False(t, d.CanTransitionTo(AgentStatusExecuted))

	d.Status = AgentStatusRolledBack
	assert.False(t, d.CanTransitionTo(AgentStatusExecuted))
}
