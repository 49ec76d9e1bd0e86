// Package nav tracks where the user currently is: which tab, conversation,
// group, or profile is open, and where back-navigation returns to.
//
// The controller is a pure state machine. Apply takes the current stack and
// a navigation event and returns the new stack plus the side effects (loads
// or restores) the host should perform. The host tags every asynchronous
// load with the stack generation at request time and discards results whose
// generation no longer matches, so a late response can never overwrite a
// newer view.
package nav

// Kind identifies a view.
type Kind string

const (
	KindChats     Kind = "chats"
	KindChat      Kind = "chat"
	KindGroups    Kind = "groups"
	KindGroup     Kind = "group"
	KindGroupInfo Kind = "group-info"
	KindFriends   Kind = "friends"
	KindSettings  Kind = "settings"
	KindProfile   Kind = "profile"
)

// Frame is one entry in the navigation history stack.
type Frame struct {
	Kind     Kind
	EntityID int64 // conversation, group, or user ID; zero for plain tabs
	Title    string
}

// ShowsBottomNav reports whether the bottom tab bar is visible for this view.
// List-style tabs show it; drill-down views hide it.
func (f Frame) ShowsBottomNav() bool {
	switch f.Kind {
	case KindChats, KindGroups, KindFriends, KindSettings:
		return true
	}
	return false
}

// ShowsBackButton reports whether the top bar carries a back control.
func (f Frame) ShowsBackButton() bool {
	return !f.ShowsBottomNav()
}

// Stack is the navigation history. The zero value is not usable; NewStack
// seeds the base chats frame, which is never popped.
type Stack struct {
	frames []Frame
	gen    uint64
}

// NewStack returns a stack holding the base chats frame.
func NewStack() Stack {
	return Stack{
		frames: []Frame{{Kind: KindChats, Title: "My Chats"}},
	}
}

// Current returns the top frame.
func (s Stack) Current() Frame {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames.
func (s Stack) Depth() int {
	return len(s.frames)
}

// Gen returns the stack generation. It increases on every transition and is
// the tag async loads are checked against before their results are applied.
func (s Stack) Gen() uint64 {
	return s.gen
}

// Frames returns a copy of the stack contents, bottom first.
func (s Stack) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// EventType distinguishes navigation events.
type EventType int

const (
	// EventNavigate requests a view change to Frame.
	EventNavigate EventType = iota
	// EventBack pops the current frame.
	EventBack
)

// Event is a navigation request dispatched into Apply.
type Event struct {
	Type  EventType
	Frame Frame
}

// Navigate builds a navigation event for the given frame.
func Navigate(frame Frame) Event {
	return Event{Type: EventNavigate, Frame: frame}
}

// Back builds a back event.
func Back() Event {
	return Event{Type: EventBack}
}

// Effect is a side effect the host must perform after a transition.
type Effect interface{ effect() }

// EffectLoad asks the host to fetch and render the frame's data.
type EffectLoad struct {
	Frame Frame
	Gen   uint64
}

// EffectRestore asks the host to re-activate a previously rendered frame.
// Visual restoration is sufficient; the host refetches only if its cached
// snapshot is stale, and never blocks the transition on the refetch.
type EffectRestore struct {
	Frame Frame
	Gen   uint64
}

func (EffectLoad) effect()    {}
func (EffectRestore) effect() {}

// Apply transitions the stack by one event. It never mutates its receiver
// and holds no reference to the DOM, the network, or shared state.
func Apply(s Stack, ev Event) (Stack, []Effect) {
	switch ev.Type {
	case EventNavigate:
		return applyNavigate(s, ev.Frame)
	case EventBack:
		return applyBack(s)
	}
	return s, nil
}

func applyNavigate(s Stack, frame Frame) (Stack, []Effect) {
	next := s
	next.gen++

	switch frame.Kind {
	case KindChats, KindGroups, KindFriends, KindSettings:
		// Top-level tabs reset history: tabs are not nested.
		next.frames = []Frame{frame}

	case KindProfile:
		// Profile keeps the prior frame as the back target so the user
		// returns to the exact chat or group they came from.
		next.frames = append(copyFrames(s.frames), frame)

	default:
		// Drill-down views push.
		next.frames = append(copyFrames(s.frames), frame)
	}

	return next, []Effect{EffectLoad{Frame: frame, Gen: next.gen}}
}

func applyBack(s Stack) (Stack, []Effect) {
	if len(s.frames) <= 1 {
		// The base frame is never popped.
		return s, nil
	}

	next := s
	next.gen++
	next.frames = copyFrames(s.frames[:len(s.frames)-1])

	return next, []Effect{EffectRestore{Frame: next.Current(), Gen: next.gen}}
}

func copyFrames(frames []Frame) []Frame {
	out := make([]Frame, len(frames))
	copy(out, frames)
	return out
}
