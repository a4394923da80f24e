package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// WSCommand is a client message on the quiz channel. Type is one of
// "state", "start", "answer", "prev", "next" or "units".
type WSCommand struct {
	Type    string `json:"type"`
	Pokemon string `json:"pokemon,omitempty"`
	Answer  string `json:"answer,omitempty"`
	Metric  *bool  `json:"metric,omitempty"`
}

// WSReply answers exactly one WSCommand.
type WSReply struct {
	Type     string             `json:"type"`
	Verdict  string             `json:"verdict,omitempty"`
	Feedback string             `json:"feedback,omitempty"`
	Error    string             `json:"error,omitempty"`
	Quiz     *QuizStateResponse `json:"quiz,omitempty"`
}

const wsSessionTimeout = 30 * time.Minute

var (
	errUnknownCommand = errors.New("unknown command")
	errMetricRequired = errors.New("metric is required")
)

func (a *API) handleWS(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: a.wsHosts,
	})
	if err != nil {
		a.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithTimeout(r.Context(), wsSessionTimeout)
	defer cancel()

	for {
		var cmd WSCommand
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			a.logger.Debug("websocket read ended", "session_id", s.id, "error", err)
			return
		}

		reply := a.dispatch(ctx, s, cmd)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			a.logger.Debug("websocket write failed", "session_id", s.id, "error", err)
			return
		}
	}
}

// originHosts turns allowed CORS origins ("https://quiz.example") into the
// host patterns websocket.Accept matches against. Same-host requests are
// always accepted.
func originHosts(origins []string) []string {
	var hosts []string
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			o = u.Host
		}
		hosts = append(hosts, o)
	}
	return hosts
}

func (a *API) dispatch(ctx context.Context, s *quizSession, cmd WSCommand) WSReply {
	reply := WSReply{Type: cmd.Type}

	var (
		state QuizStateResponse
		err   error
	)
	switch cmd.Type {
	case "state":
		state = a.state(s)
	case "start":
		state, err = a.start(s, cmd.Pokemon)
	case "answer":
		var resp AnswerResponse
		resp, err = a.answer(ctx, s, cmd.Answer)
		reply.Verdict, reply.Feedback, state = resp.Verdict, resp.Feedback, resp.Quiz
	case "prev":
		state = a.move(s, -1)
	case "next":
		state = a.move(s, 1)
	case "units":
		if cmd.Metric == nil {
			err = errMetricRequired
			break
		}
		state, err = a.setUnits(ctx, s, *cmd.Metric)
	default:
		err = fmt.Errorf("%w %q", errUnknownCommand, cmd.Type)
	}

	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			a.logger.Error("websocket command failed", "session_id", s.id, "command", cmd.Type, "error", err)
		}
		reply.Type = "error"
		reply.Error = msg
		return reply
	}
	reply.Quiz = &state
	return reply
}
