package guard

import (
	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

// EnforceBoundary is Layer B: conversation-drift detection. Once the
// session holds enough turns, the topic check is re-run over the
// trailing window; a mostly off-topic window blocks the current
// question regardless of its own topic verdict. Early in a session the
// layer always allows.
func (g *Guard) EnforceBoundary(sess *session.Session, lang model.Language) model.TopicDecision {
	if sess.Len() < g.cfg.MinTurnsForDrift {
		return model.TopicDecision{Allowed: true}
	}

	offTopic := 0
	for _, question := range sess.RecentQuestions(g.cfg.DriftWindow) {
		if !g.CheckTopic(question, lang).Allowed {
			offTopic++
		}
	}

	if offTopic >= g.cfg.DriftThreshold {
		g.logger.Debug("conversation drift detected",
			"off_topic", offTopic,
			"window", g.cfg.DriftWindow)
		return model.TopicDecision{
			Allowed: false,
			Message: locale.TopicDrift(lang),
		}
	}

	return model.TopicDecision{Allowed: true}
}
