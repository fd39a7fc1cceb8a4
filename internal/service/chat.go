package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TheJegede/Negotiator/internal/agreement"
	"github.com/TheJegede/Negotiator/internal/evaluate"
	"github.com/TheJegede/Negotiator/internal/extract"
	"github.com/TheJegede/Negotiator/internal/genai"
	"github.com/TheJegede/Negotiator/internal/metrics"
	"github.com/TheJegede/Negotiator/internal/models"
	"github.com/TheJegede/Negotiator/internal/session"
)

// closingKeywords flip the conversation state before the provider call, so
// the prompt tells the seller the buyer is ready to close.
var closingKeywords = []string{"agree", "deal", "accept", "agreed", "confirmed"}

type ChatService struct {
	Sessions     *session.Manager
	Generator    genai.Generator
	Evaluator    *evaluate.Evaluator
	Logger       *zap.Logger
	MaxSentences int
}

// ChatResult is the outcome of one buyer turn.
type ChatResult struct {
	Reply             string
	AgreementDetected bool
	Agreed            *models.Terms
	Missing           []string
	State             session.State
}

// Start opens a new negotiation session seeded from the student ID when
// one is given.
func (s *ChatService) Start(studentID string) *session.Session {
	sess := s.Sessions.Create(studentID, OpeningMessage(time.Now()))
	metrics.SessionsCreated.Inc()
	if s.Logger != nil {
		s.Logger.Info("session created",
			zap.String("session_id", sess.ID),
			zap.Bool("seeded", studentID != ""))
	}
	return sess
}

// Send runs one negotiation turn: record the buyer message, generate the
// seller's reply, and re-check the transcript for a concluded agreement.
// Provider failures degrade to a canned reply instead of failing the turn.
func (s *ChatService) Send(ctx context.Context, sessionID, userInput string) (ChatResult, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return ChatResult{}, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Append(models.RoleBuyer, userInput)
	metrics.ChatTurns.Inc()

	nextState := session.StateNegotiating
	if containsAnyFold(userInput, closingKeywords) {
		nextState = session.StateClosing
	}

	prompt := buildPrompt(sess.ParamsBrief, sess.History, nextState, userInput)
	reply, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		metrics.GeneratorFailures.Inc()
		if s.Logger != nil {
			s.Logger.Warn("provider call failed",
				zap.String("session_id", sess.ID),
				zap.Error(err))
		}
		reply = genai.FallbackMessage
	} else if reply == "" {
		reply = genai.EmptyReplyMessage
	} else {
		reply = genai.EnforceBrevity(genai.Clean(reply), s.MaxSentences)
	}

	sess.Append(models.RoleSeller, reply)

	detection := agreement.Detect(sess.History)
	if detection.Complete {
		sess.SetState(session.StateClosing)
		if sess.Agreed == nil {
			terms := detection.Terms
			sess.Agreed = &terms
		}
	} else {
		sess.SetState(nextState)
	}

	result := ChatResult{
		Reply:             reply,
		AgreementDetected: detection.Complete,
		State:             sess.State(),
	}
	if detection.Complete {
		result.Agreed = sess.Agreed
	} else {
		result.Missing = detection.Missing
	}
	return result, nil
}

// Evaluate grades a session's transcript. Gaps in the agreed terms fall
// back to the seller's most recent numbers, then to the targets, so an
// unfinished negotiation still yields a usable report.
func (s *ChatService) Evaluate(sessionID string) (models.EvaluationResult, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return models.EvaluationResult{}, err
	}

	snap := sess.Snapshot()
	agreed := s.resolveAgreed(snap)

	metrics.Evaluations.Inc()
	return s.Evaluator.Evaluate(snap.History, snap.Params, agreed), nil
}

// resolveAgreed fills any missing agreed terms from the last seller
// message that carried them, falling back to the deal targets and the
// standard volume.
func (s *ChatService) resolveAgreed(snap session.Snapshot) models.Terms {
	var agreed models.Terms
	if snap.Agreed != nil {
		agreed = *snap.Agreed
	}

	for i := len(snap.History) - 1; i >= 0 && (agreed.Price == nil || agreed.Delivery == nil); i-- {
		msg := snap.History[i]
		if msg.Role != models.RoleSeller {
			continue
		}
		if agreed.Price == nil {
			agreed.Price = extract.Price(msg.Content)
		}
		if agreed.Delivery == nil {
			agreed.Delivery = extract.Delivery(msg.Content)
		}
	}

	if agreed.Price == nil {
		target := snap.Params.Price.Target
		agreed.Price = &target
	}
	if agreed.Delivery == nil {
		target := snap.Params.Delivery.Target
		agreed.Delivery = &target
	}
	if agreed.Volume == nil {
		std := snap.Params.Volume.Standard
		agreed.Volume = &std
	}
	return agreed
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
