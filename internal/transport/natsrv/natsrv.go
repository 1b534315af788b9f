// Package natsrv serves evaluation requests arriving on a NATS subject.
//
// Each request is a JSON api.EvalReq. The final api.EvalResponse is
// published to the message's reply subject. Progress is streamed to
// ProgressSubject when the request names one.
package natsrv

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/gatherer/natsgath"
	"github.com/oa-drill/evaluator/internal/gatherer/respbuilder"
	"github.com/oa-drill/evaluator/internal/transport"
)

// DefaultQueue is the queue group shared by all evaluator instances, so each
// request is delivered to only one of them.
const DefaultQueue = "evaluators"

type Server struct {
	nc      *nats.Conn
	pub     natsgath.Publisher
	engine  transport.Engine
	subject string
	queue   string
	logger  *slog.Logger

	wg sync.WaitGroup
}

func New(nc *nats.Conn, engine transport.Engine, subject string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		nc:      nc,
		pub:     nc,
		engine:  engine,
		subject: subject,
		queue:   DefaultQueue,
		logger:  logger.With("component", "natsrv", "subject", subject),
	}
}

// Serve subscribes and handles requests until ctx is done. The subscription
// is then drained and Serve waits for evaluations in flight.
func (s *Server) Serve(ctx context.Context) error {
	base := context.WithoutCancel(ctx)
	sub, err := s.nc.QueueSubscribe(s.subject, s.queue, func(m *nats.Msg) {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(base, m.Data, m.Reply)
		}()
	})
	if err != nil {
		return err
	}
	s.logger.Info("listening for evaluation requests", "queue", s.queue)

	<-ctx.Done()
	s.logger.Info("draining subscription")
	if err := sub.Drain(); err != nil {
		s.logger.Warn("failed to drain subscription", "error", err)
	}
	s.wg.Wait()
	return s.nc.Flush()
}

func (s *Server) handle(ctx context.Context, data []byte, reply string) {
	var req api.EvalReq
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn("malformed request", "error", err)
		s.respond(reply, respbuilder.FromError("", &evaluator.Error{
			Kind: evaluator.KindConfiguration,
			Msg:  "malformed request",
			Err:  err,
		}))
		return
	}
	if req.EvalUuid == "" {
		req.EvalUuid = uuid.NewString()
	}

	var progress evaluator.Gatherer
	if req.ProgressSubject != "" {
		progress = natsgath.New(s.pub, req.EvalUuid, req.ProgressSubject, s.logger)
	}
	resp := transport.Handle(ctx, s.engine, req, progress)
	s.respond(reply, resp)
}

func (s *Server) respond(reply string, resp api.EvalResponse) {
	if reply == "" {
		s.logger.Warn("request has no reply subject", "eval_id", resp.EvalUuid)
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}
	if err := s.pub.Publish(reply, b); err != nil {
		s.logger.Warn("failed to publish response", "reply", reply, "error", err)
	}
}
