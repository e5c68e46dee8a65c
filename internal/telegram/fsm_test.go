package telegram

import "testing"

func newBareRouter() *Router {
	return &Router{
		reg:    make(map[int64]*regFlow),
		track:  make(map[int64]*trackFlow),
		prompt: make(map[int64]promptState),
	}
}

func TestRegistrationFlowStates(t *testing.T) {
	r := newBareRouter()
	const chat = int64(42)

	if f := r.regFlowFor(chat); f != nil {
		t.Fatal("no flow expected before /start")
	}

	r.beginRegistration(chat)
	f := r.regFlowFor(chat)
	if f == nil || f.state != regAwaitingName {
		t.Fatalf("flow = %+v, want AwaitingName", f)
	}

	f.fullName = "Ann"
	f.state = regAwaitingPhone
	if got := r.regFlowFor(chat); got.state != regAwaitingPhone || got.fullName != "Ann" {
		t.Fatalf("flow = %+v, want AwaitingPhone with captured name", got)
	}

	r.endRegistration(chat)
	if f := r.regFlowFor(chat); f != nil {
		t.Fatal("flow must be gone after completion")
	}
}

func TestFlowsAreIndependentPerChat(t *testing.T) {
	r := newBareRouter()
	r.beginRegistration(1)
	r.beginTrackAssign(2)

	if r.regFlowFor(2) != nil {
		t.Error("chat 2 must not see chat 1's registration")
	}
	if r.trackFlowFor(1) != nil {
		t.Error("chat 1 must not see chat 2's track flow")
	}
}

func TestCancelFlowsClearsEverything(t *testing.T) {
	r := newBareRouter()
	const chat = int64(7)
	r.beginRegistration(chat)
	r.beginTrackAssign(chat)
	r.beginPrompt(chat, promptSendTime)

	r.cancelFlows(chat)

	if r.regFlowFor(chat) != nil {
		t.Error("registration flow survived cancel")
	}
	if r.trackFlowFor(chat) != nil {
		t.Error("track flow survived cancel")
	}
	if _, ok := r.promptFor(chat); ok {
		t.Error("prompt survived cancel")
	}
}

func TestPromptStates(t *testing.T) {
	r := newBareRouter()
	r.beginPrompt(9, promptChannel)
	p, ok := r.promptFor(9)
	if !ok || p != promptChannel {
		t.Fatalf("prompt = %v ok=%v, want channel prompt", p, ok)
	}
	r.endPrompt(9)
	if _, ok := r.promptFor(9); ok {
		t.Fatal("prompt must be cleared")
	}
}
