package telegram

// Conversation state machines, one explicit type per flow, keyed by
// chat id. Transitions happen only in the handlers; there is no shared
// scratchpad between flows.

// regState is the registration flow.
type regState int

const (
	regAwaitingName regState = iota + 1
	regAwaitingPhone
)

type regFlow struct {
	state    regState
	fullName string // captured after regAwaitingName
}

// trackState is the admin track-code assignment flow.
type trackState int

const (
	trackAwaitingPhone trackState = iota + 1
	trackAwaitingCode
)

type trackFlow struct {
	state trackState
	phone string // captured after trackAwaitingPhone
}

// promptState is a single-question admin prompt.
type promptState int

const (
	promptChannel  promptState = iota + 1 // waiting for a channel id
	promptSendTime                        // waiting for an HH:MM time
)

func (r *Router) beginRegistration(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reg[chatID] = &regFlow{state: regAwaitingName}
}

func (r *Router) regFlowFor(chatID int64) *regFlow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reg[chatID]
}

func (r *Router) endRegistration(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reg, chatID)
}

func (r *Router) beginTrackAssign(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.track[chatID] = &trackFlow{state: trackAwaitingPhone}
}

func (r *Router) trackFlowFor(chatID int64) *trackFlow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.track[chatID]
}

func (r *Router) endTrackAssign(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.track, chatID)
}

func (r *Router) beginPrompt(chatID int64, p promptState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompt[chatID] = p
}

func (r *Router) promptFor(chatID int64) (promptState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prompt[chatID]
	return p, ok
}

func (r *Router) endPrompt(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.prompt, chatID)
}

// cancelFlows aborts every pending flow for a chat.
func (r *Router) cancelFlows(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reg, chatID)
	delete(r.track, chatID)
	delete(r.prompt, chatID)
}
