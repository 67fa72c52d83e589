package conversation

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oakline/frontdesk/internal/screening"
	"github.com/oakline/frontdesk/pkg/logging"
)

var engineTracer = otel.Tracer("frontdesk.internal.conversation.engine")

// Lines spoken by the receptionist outside of generated replies.
const (
	greetingPrompt   = "Hello, how can I help you today?"
	rejectLine       = "Sorry, this line does not accept sales calls. Goodbye."
	messageTakenLine = "Thank you. Your message has been recorded. We will follow up shortly."
	repeatPrompt     = "I didn't catch that — could you repeat that?"
	askMessagePrompt = "Please state your name, best callback number, and a short message."
)

// messageRequestPhrases flip the call into message-taking mode when they
// appear in a transcript, in either supported language.
var messageRequestPhrases = []string{
	"leave a message",
	"take a message",
	"voicemail",
	"llamar luego",
	"dejar un mensaje",
}

// SpamFilter screens calls before any conversation work.
type SpamFilter interface {
	IsSpam(fromNumber, transcript string) bool
}

// MessageLog persists caller messages taken in message mode.
type MessageLog interface {
	Append(ctx context.Context, callID, fromNumber, transcript string) (string, error)
}

// Notifier fires the SMS/email side effects of a turn. Implementations must
// swallow transport failures; the call continues regardless.
type Notifier interface {
	MessageReceived(ctx context.Context, callID, fromNumber, transcript string)
	MaybeSendLink(ctx context.Context, replyText, toNumber string)
}

// Action tells the webhook layer what kind of voice response to build.
type Action int

const (
	// ActionGather speaks a prompt and listens for the next utterance.
	ActionGather Action = iota
	// ActionHangup speaks a line and terminates the call.
	ActionHangup
	// ActionSay speaks a line with no further speech capture.
	ActionSay
	// ActionRedirect speaks the reply and loops back to the greeting.
	ActionRedirect
)

// Result is the outcome of one turn through the state machine.
type Result struct {
	Action   Action
	Text     string
	Language Language
	// Outcome labels the turn for logging and metrics.
	Outcome string
}

// Engine is the per-call conversational state machine. Each inbound webhook
// round-trip runs one turn: the engine decides the call's mode, mutates the
// session under its per-call lock, and reports what to speak next.
type Engine struct {
	sessions SessionStore
	replier  Replier
	spam     SpamFilter
	messages MessageLog
	notifier Notifier
	logger   *logging.Logger
}

// NewEngine wires the state machine with its collaborators.
func NewEngine(sessions SessionStore, replier Replier, spam SpamFilter, messages MessageLog, notifier Notifier, logger *logging.Logger) *Engine {
	if sessions == nil {
		panic("conversation: session store cannot be nil")
	}
	if replier == nil {
		panic("conversation: replier cannot be nil")
	}
	if spam == nil {
		panic("conversation: spam filter cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		sessions: sessions,
		replier:  replier,
		spam:     spam,
		messages: messages,
		notifier: notifier,
		logger:   logger,
	}
}

// Greet opens (or refreshes) the session for an inbound call and returns the
// greeting prompt in the session's current language.
func (e *Engine) Greet(ctx context.Context, callID string) (Result, error) {
	var res Result
	err := e.sessions.WithSession(ctx, callID, func(s *Session) error {
		res = Result{
			Action:   ActionGather,
			Text:     greetingPrompt,
			Language: s.Language,
			Outcome:  "greeting",
		}
		return nil
	})
	return res, err
}

// HandleTranscript runs one caller utterance through the state machine.
func (e *Engine) HandleTranscript(ctx context.Context, callID, fromNumber, transcript string) (Result, error) {
	ctx, span := engineTracer.Start(ctx, "conversation.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("frontdesk.call_id", callID),
	)

	var res Result
	err := e.sessions.WithSession(ctx, callID, func(s *Session) error {
		res = e.turn(ctx, s, fromNumber, transcript)
		return nil
	})
	if err == nil {
		span.SetAttributes(attribute.String("frontdesk.outcome", res.Outcome))
	} else {
		span.RecordError(err)
	}
	return res, err
}

func (e *Engine) turn(ctx context.Context, s *Session, fromNumber, transcript string) Result {
	// Spam wins over everything, including message-taking mode.
	if e.spam.IsSpam(fromNumber, transcript) {
		e.logger.Info("rejected spam call", "call_id", s.CallID, "from", fromNumber)
		return Result{Action: ActionHangup, Text: rejectLine, Language: LangEnglish, Outcome: "rejected_spam"}
	}

	if s.ExpectMessage {
		return e.takeMessage(ctx, s, fromNumber, transcript)
	}

	// Language is re-detected every utterance; no stickiness.
	if screening.IsSpanish(transcript) {
		s.Language = LangSpanish
	} else {
		s.Language = LangEnglish
	}

	if strings.TrimSpace(transcript) == "" {
		return Result{Action: ActionGather, Text: repeatPrompt, Language: s.Language, Outcome: "reprompt"}
	}

	s.History = TrimHistory(append(s.History, ChatMessage{Role: ChatRoleUser, Content: transcript}))
	reply := e.replier.Reply(ctx, s.History)
	s.History = TrimHistory(append(s.History, ChatMessage{Role: ChatRoleAssistant, Content: reply}))

	if containsMessageRequest(transcript) {
		s.ExpectMessage = true
		return Result{Action: ActionGather, Text: askMessagePrompt, Language: s.Language, Outcome: "message_requested"}
	}

	if e.notifier != nil {
		e.notifier.MaybeSendLink(ctx, reply, fromNumber)
	}
	return Result{Action: ActionRedirect, Text: reply, Language: s.Language, Outcome: "replied"}
}

// takeMessage captures the transcript verbatim as the caller's message. The
// utterance never reaches the completion backend.
func (e *Engine) takeMessage(ctx context.Context, s *Session, fromNumber, transcript string) Result {
	body := transcript
	if strings.TrimSpace(body) == "" {
		body = "(no transcript)"
	}
	if e.messages != nil {
		path, err := e.messages.Append(ctx, s.CallID, fromNumber, body)
		if err != nil {
			// The caller still hears a confirmation; losing the file beats
			// surfacing an error mid-call.
			e.logger.Error("failed to record caller message", "error", err, "call_id", s.CallID)
		} else {
			e.logger.Info("recorded caller message", "call_id", s.CallID, "path", path)
		}
	}
	if e.notifier != nil {
		e.notifier.MessageReceived(ctx, s.CallID, fromNumber, body)
	}
	s.ExpectMessage = false
	return Result{Action: ActionSay, Text: messageTakenLine, Language: s.Language, Outcome: "message_recorded"}
}

func containsMessageRequest(transcript string) bool {
	lowered := strings.ToLower(transcript)
	for _, phrase := range messageRequestPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
