package main

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/nats-io/nats.go"
	"github.com/oa-drill/evaluator/internal/transport"
	"github.com/oa-drill/evaluator/internal/transport/httpapi"
	"github.com/oa-drill/evaluator/internal/transport/natsrv"
	"github.com/oa-drill/evaluator/internal/transport/sqsq"
	"github.com/urfave/cli/v3"
)

// serving builds the engine shared by the serve commands, runs serve and
// releases leftover workspaces afterwards.
func (a *app) serving(ctx context.Context, serve func(transport.Engine) error) error {
	lookup, err := a.cfg.ProblemLookup(ctx)
	if err != nil {
		return err
	}
	eng, err := a.newEngine(lookup)
	if err != nil {
		return err
	}
	defer eng.close(a.logger)

	a.logger.Info("evaluator ready",
		"work_dir", a.cfg.WorkDir,
		"max_concurrent", a.cfg.MaxConcurrent,
		"case_timeout", a.cfg.CaseTimeout)
	return serve(transport.NewLimited(eng, a.cfg.MaxConcurrent))
}

func (a *app) serveNatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve-nats",
		Usage: "answer evaluation requests published on a NATS subject",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "NATS server URL; overrides NATS_URL"},
			&cli.StringFlag{Name: "subject", Usage: "request subject; overrides NATS_SUBJECT"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			url, subject := a.cfg.NatsURL, a.cfg.NatsSubject
			if v := cmd.String("url"); v != "" {
				url = v
			}
			if v := cmd.String("subject"); v != "" {
				subject = v
			}

			nc, err := nats.Connect(url, nats.Name("oa-evaluator"))
			if err != nil {
				return err
			}
			defer nc.Close()
			a.logger.Info("connected to NATS", "url", nc.ConnectedUrl())

			return a.serving(ctx, func(e transport.Engine) error {
				return natsrv.New(nc, e, subject, a.logger).Serve(ctx)
			})
		},
	}
}

func (a *app) serveSQSCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve-sqs",
		Usage: "consume evaluation requests from an SQS queue",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "request-queue", Usage: "overrides SQS_REQUEST_URL"},
			&cli.StringFlag{Name: "response-queue", Usage: "overrides SQS_RESPONSE_URL"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reqURL, respURL := a.cfg.SQSRequestURL, a.cfg.SQSResponseURL
			if v := cmd.String("request-queue"); v != "" {
				reqURL = v
			}
			if v := cmd.String("response-queue"); v != "" {
				respURL = v
			}
			if reqURL == "" {
				return errors.New("SQS_REQUEST_URL is not set")
			}

			awsCfg, err := a.cfg.AWS(ctx)
			if err != nil {
				return err
			}
			client := sqs.NewFromConfig(awsCfg)

			return a.serving(ctx, func(e transport.Engine) error {
				return sqsq.New(client, e, reqURL, respURL, a.cfg.MaxConcurrent, a.logger).Serve(ctx)
			})
		},
	}
}

func (a *app) serveHTTPCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve-http",
		Usage: "serve the evaluation HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address; overrides HTTP_ADDR"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			addr := a.cfg.HTTPAddr
			if v := cmd.String("addr"); v != "" {
				addr = v
			}
			return a.serving(ctx, func(e transport.Engine) error {
				return httpapi.New(e, a.registry(), a.logger).Serve(ctx, addr)
			})
		},
	}
}
