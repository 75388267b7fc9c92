package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_SendAndStop(t *testing.T) {
	c := NewConversation()
	require.Equal(t, StateIdle, c.State())

	c.StartSend("hello")
	assert.Equal(t, StateSending, c.State())
	require.Len(t, c.Messages, 1)
	assert.Equal(t, VariantUser, c.Messages[0].Variant)
	assert.True(t, c.Thinking())

	c.SendAccepted("task-1")
	assert.Equal(t, StateFastPolling, c.State())

	// Agent still working: no stop yet.
	c.ApplyPoll([]Message{
		{Variant: VariantUser, Content: "hello"},
	}, "running", true)
	assert.Equal(t, StateFastPolling, c.State())

	// Status idle plus an assistant reply terminates the session.
	c.ApplyPoll([]Message{
		{Variant: VariantUser, Content: "hello"},
		{Variant: VariantAssistant, Content: "done"},
	}, "idle", true)
	assert.Equal(t, StateStopped, c.State())
	assert.False(t, c.Thinking())
}

func TestConversation_IdleStatusWithoutReplyKeepsPolling(t *testing.T) {
	c := NewConversation()
	c.StartSend("hello")
	c.SendAccepted("task-1")

	c.ApplyPoll([]Message{{Variant: VariantUser, Content: "hello"}}, "idle", true)
	assert.Equal(t, StateFastPolling, c.State(),
		"no assistant reply yet, the status alone must not stop polling")
}

func TestConversation_HardPollCap(t *testing.T) {
	c := NewConversation()
	c.StartSend("hello")
	c.SendAccepted("task-1")

	transcript := []Message{{Variant: VariantUser, Content: "hello"}}
	for i := 0; i < maxPollCount-1; i++ {
		// Vary the transcript each poll so the stable counter never fires.
		transcript = append(transcript, Message{Variant: VariantToolCall, Content: "Executing: step"})
		c.ApplyPoll(transcript, "running", true)
		require.Equal(t, StateFastPolling, c.State(), "poll %d", i)
	}

	transcript = append(transcript, Message{Variant: VariantToolCall, Content: "Executing: step"})
	c.ApplyPoll(transcript, "running", true)
	assert.Equal(t, StateStopped, c.State())
	assert.True(t, c.Thinking(), "status was still running when the cap fired")
}

func TestConversation_StableFallback(t *testing.T) {
	c := NewConversation()
	c.StartSend("hello")
	c.SendAccepted("task-1")

	transcript := []Message{{Variant: VariantUser, Content: "hello"}}
	c.ApplyPoll(transcript, "unknown", true)

	for i := 0; i < stablePollThreshold-1; i++ {
		c.ApplyPoll(transcript, "unknown", true)
		require.Equal(t, StateFastPolling, c.State(), "stable poll %d", i)
	}

	c.ApplyPoll(transcript, "unknown", true)
	assert.Equal(t, StateStopped, c.State())
	assert.False(t, c.Thinking())
}

func TestConversation_StableFallbackBlockedWhileRunning(t *testing.T) {
	c := NewConversation()
	c.StartSend("hello")
	c.SendAccepted("task-1")

	transcript := []Message{{Variant: VariantUser, Content: "hello"}}
	for i := 0; i < stablePollThreshold+5; i++ {
		c.ApplyPoll(transcript, "running", true)
	}
	assert.Equal(t, StateFastPolling, c.State(),
		"running status must hold off the stable-polls fallback")
}

func TestConversation_ReconciliationReplacesAndResets(t *testing.T) {
	c := NewConversation()
	c.LoadTask("task-1")

	first := []Message{
		{Variant: VariantUser, Content: "do it"},
		{Variant: VariantToolCall, Content: "Executing: preview"},
	}
	c.ApplyPoll(first, "running", true)
	c.ApplyPoll(first, "running", true)
	assert.Equal(t, 1, c.StablePolls())

	// Same pairs, different order: still a difference.
	reordered := []Message{first[1], first[0]}
	c.ApplyPoll(reordered, "running", true)
	assert.Equal(t, 0, c.StablePolls())
	assert.Equal(t, reordered, c.Messages)
}

func TestConversation_DuplicatesPreserved(t *testing.T) {
	c := NewConversation()
	c.LoadTask("task-1")

	doubled := []Message{
		{Variant: VariantToolCall, Content: "Executing: up"},
		{Variant: VariantToolCall, Content: "Executing: up"},
	}
	c.ApplyPoll(doubled, "running", true)
	assert.Len(t, c.Messages, 2, "identical consecutive messages are kept")
}

func TestConversation_MetadataFailureKeepsLastStatus(t *testing.T) {
	c := NewConversation()
	c.LoadTask("task-1")

	c.ApplyPoll(nil, "running", true)
	c.ApplyPoll([]Message{{Variant: VariantAssistant, Content: "ok"}}, "", false)

	assert.Equal(t, "running", c.LastStatus)
	assert.Equal(t, StateFastPolling, c.State())
}

func TestConversation_StaleResultsIgnoredWhenStopped(t *testing.T) {
	c := NewConversation()
	c.LoadTask("task-1")
	c.ApplyPoll([]Message{{Variant: VariantAssistant, Content: "done"}}, "idle", true)
	require.Equal(t, StateStopped, c.State())

	before := c.Messages
	c.ApplyPoll([]Message{{Variant: VariantUser, Content: "late"}}, "running", true)
	assert.Equal(t, before, c.Messages)
	assert.Equal(t, StateStopped, c.State())
}

func TestConversation_TickCadence(t *testing.T) {
	c := NewConversation()
	c.LoadTask("task-1")

	due := 0
	for i := 0; i < fastPollTicks*3; i++ {
		if c.Tick() {
			due++
		}
	}
	assert.Equal(t, 3, due, "fast polling fires every %d ticks", fastPollTicks)

	c.ApplyPoll([]Message{{Variant: VariantAssistant, Content: "done"}}, "idle", true)
	require.Equal(t, StateStopped, c.State())
	assert.False(t, c.Tick(), "stopped conversations never poll")

	c.Suspend()
	require.Equal(t, StateBackgroundPolling, c.State())
	due = 0
	for i := 0; i < backgroundPollTicks*2; i++ {
		if c.Tick() {
			due++
		}
	}
	assert.Equal(t, 2, due, "background polling fires every %d ticks", backgroundPollTicks)
}

func TestConversation_SuspendRequiresTask(t *testing.T) {
	c := NewConversation()
	c.StartSend("hello")
	c.SendFailed()
	require.Equal(t, StateStopped, c.State())

	c.Suspend()
	assert.Equal(t, StateStopped, c.State(), "no task id, nothing to poll")
}

func TestConversation_PauseStopsBackgroundPolling(t *testing.T) {
	c := NewConversation()
	c.LoadTask("task-1")
	c.ApplyPoll([]Message{{Variant: VariantAssistant, Content: "done"}}, "idle", true)
	require.Equal(t, StateStopped, c.State())

	c.Suspend()
	require.Equal(t, StateBackgroundPolling, c.State())

	c.Pause()
	assert.Equal(t, StateStopped, c.State())
	for i := 0; i < 2*backgroundPollTicks; i++ {
		assert.False(t, c.Tick(), "no poll may fire while paused")
	}

	// Pause is a no-op outside background polling.
	c.LoadTask("task-2")
	c.Pause()
	assert.Equal(t, StateFastPolling, c.State())
}

func TestConversation_ResetClearsEverything(t *testing.T) {
	c := NewConversation()
	c.LoadTask("task-1")
	c.ApplyPoll([]Message{{Variant: VariantAssistant, Content: "done"}}, "idle", true)

	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, c.Messages)
	assert.Empty(t, c.TaskID)
	assert.False(t, c.Thinking())
}
