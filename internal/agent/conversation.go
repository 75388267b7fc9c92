package agent

// State is the conversation's polling state.
type State int

const (
	// StateIdle means no active task.
	StateIdle State = iota
	// StateSending means a create or continue request is in flight.
	StateSending
	// StateFastPolling polls every few ticks while the agent works.
	StateFastPolling
	// StateBackgroundPolling keeps a loaded task loosely up to date.
	StateBackgroundPolling
	// StateStopped means polling is suspended and the transcript is current.
	StateStopped
)

// Poll cadence and termination thresholds, counted in UI ticks (~100ms).
const (
	fastPollTicks       = 5  // ~500ms
	backgroundPollTicks = 30 // ~3s
	maxPollCount        = 60 // safety timeout per fast-poll session
	stablePollThreshold = 20
)

// Conversation is the state machine behind the agent tab. All methods run
// on the UI goroutine; poll results arrive as values, never via shared state.
type Conversation struct {
	TaskID     string
	Messages   []Message
	LastStatus string

	state       State
	pollCount   int
	stablePolls int
	tickCount   int
	thinking    bool
}

// NewConversation returns an idle conversation.
func NewConversation() *Conversation {
	return &Conversation{state: StateIdle}
}

// State returns the current polling state.
func (c *Conversation) State() State { return c.state }

// Thinking reports whether the remote agent is believed to still be working.
func (c *Conversation) Thinking() bool { return c.thinking }

// PollCount returns how many polls ran in the current fast-poll session.
func (c *Conversation) PollCount() int { return c.pollCount }

// StablePolls returns how many consecutive polls saw no transcript change.
func (c *Conversation) StablePolls() int { return c.stablePolls }

// Reset clears the conversation for a brand-new task.
func (c *Conversation) Reset() {
	*c = Conversation{state: StateIdle}
}

// LoadTask points the conversation at an existing task and starts fast
// polling to pull its transcript.
func (c *Conversation) LoadTask(taskID string) {
	c.Reset()
	c.TaskID = taskID
	c.startFastPolling()
}

// StartSend records a submitted user message. The message is appended
// immediately so the user sees it without waiting for the round trip.
func (c *Conversation) StartSend(content string) {
	c.Messages = append(c.Messages, Message{Variant: VariantUser, Content: content})
	c.state = StateSending
	c.thinking = true
}

// SendAccepted transitions to fast polling once the server knows the task.
func (c *Conversation) SendAccepted(taskID string) {
	c.TaskID = taskID
	c.startFastPolling()
}

// SendFailed stops the conversation; the caller surfaces the error.
func (c *Conversation) SendFailed() {
	c.state = StateStopped
	c.thinking = false
}

func (c *Conversation) startFastPolling() {
	c.state = StateFastPolling
	c.pollCount = 0
	c.stablePolls = 0
	c.tickCount = 0
	c.thinking = true
}

// Suspend moves a stopped conversation with a loaded task into background
// polling. Called when the agent tab stays visible after termination.
func (c *Conversation) Suspend() {
	if c.state == StateStopped && c.TaskID != "" {
		c.state = StateBackgroundPolling
		c.tickCount = 0
	}
}

// Pause drops a background-polling conversation back to Stopped. Background
// polls only run while the agent tab is visible; Suspend restores the
// cadence when the tab returns.
func (c *Conversation) Pause() {
	if c.state == StateBackgroundPolling {
		c.state = StateStopped
	}
}

// Tick advances the cadence counter and reports whether a poll is due.
func (c *Conversation) Tick() bool {
	var interval int
	switch c.state {
	case StateFastPolling:
		interval = fastPollTicks
	case StateBackgroundPolling:
		interval = backgroundPollTicks
	default:
		return false
	}

	c.tickCount++
	if c.tickCount < interval {
		return false
	}
	c.tickCount = 0
	return true
}

// statusRunning reports whether a task status means the agent is still
// actively working.
func statusRunning(status string) bool {
	switch status {
	case "running", "in_progress", "pending":
		return true
	}
	return false
}

// sameTranscript compares by (variant, content) pairs in order. Order
// matters and genuine duplicates count, so two polls that merely reorder
// identical messages still trigger a replace.
func sameTranscript(a, b []Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Variant != b[i].Variant || a[i].Content != b[i].Content {
			return false
		}
	}
	return true
}

// ApplyPoll reconciles one poll's translated events and status with the
// transcript, then evaluates the termination rule. statusKnown is false
// when the metadata fetch failed; the poll still counts but the previous
// status stands.
func (c *Conversation) ApplyPoll(incoming []Message, status string, statusKnown bool) {
	if c.state != StateFastPolling && c.state != StateBackgroundPolling {
		// Stale result from a worker that finished after a state change.
		return
	}

	c.pollCount++
	if statusKnown {
		c.LastStatus = status
	}

	if sameTranscript(c.Messages, incoming) {
		c.stablePolls++
	} else {
		c.Messages = incoming
		c.stablePolls = 0
	}

	if c.state == StateFastPolling && c.shouldStop() {
		c.state = StateStopped
		// The indicator tracks remote state: keep it up only if the last
		// observed status says the agent is still working.
		c.thinking = statusRunning(c.LastStatus)
	}
}

// shouldStop is the fast-poll termination rule.
func (c *Conversation) shouldStop() bool {
	if !statusRunning(c.LastStatus) && c.hasAssistantReply() {
		return true
	}
	if c.pollCount >= maxPollCount {
		return true
	}
	if c.stablePolls >= stablePollThreshold && c.LastStatus != "running" {
		return true
	}
	return false
}

func (c *Conversation) hasAssistantReply() bool {
	for _, m := range c.Messages {
		if m.Variant == VariantAssistant && m.Content != "" {
			return true
		}
	}
	return false
}
