// Package sqsq consumes evaluation requests from an SQS queue and sends each
// api.EvalResponse to a response queue.
package sqsq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/transport"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	waitTimeSeconds = 5
	maxMessages     = 10
	retryDelay      = time.Second
)

// Client is the subset of *sqs.Client the consumer uses.
type Client interface {
	ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

var _ Client = (*sqs.Client)(nil)

type Consumer struct {
	client      Client
	engine      transport.Engine
	requestURL  string
	responseURL string
	logger      *slog.Logger

	// slots bounds messages received and not yet finished.
	slots *semaphore.Weighted
}

// New creates a consumer of requestURL. responseURL is used for requests
// that do not name their own response queue. At most maxInFlight messages
// are held at once; the rest stay in the queue.
func New(client Client, engine transport.Engine, requestURL, responseURL string, maxInFlight int, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Consumer{
		client:      client,
		engine:      engine,
		requestURL:  requestURL,
		responseURL: responseURL,
		logger:      logger.With("component", "sqsq"),
		slots:       semaphore.NewWeighted(int64(maxInFlight)),
	}
}

// Serve polls until ctx is done, then waits for evaluations in flight.
func (c *Consumer) Serve(ctx context.Context) error {
	base := context.WithoutCancel(ctx)
	var g errgroup.Group
	c.logger.Info("polling for evaluation requests", "queue", c.requestURL)

	for ctx.Err() == nil {
		free := c.reserve(ctx)
		if free == 0 {
			break
		}
		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.requestURL),
			MaxNumberOfMessages: int32(free),
			WaitTimeSeconds:     waitTimeSeconds,
		})
		if err != nil {
			c.slots.Release(int64(free))
			if ctx.Err() != nil {
				break
			}
			c.logger.Warn("failed to receive messages", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(retryDelay):
			}
			continue
		}
		msgs := out.Messages
		if len(msgs) > free {
			c.logger.Warn("queue returned more messages than requested", "requested", free, "got", len(msgs))
			msgs = msgs[:free]
		}
		c.slots.Release(int64(free - len(msgs)))
		for _, m := range msgs {
			g.Go(func() error {
				defer c.slots.Release(1)
				c.handle(base, m)
				return nil
			})
		}
	}

	c.logger.Info("waiting for evaluations in flight")
	return g.Wait()
}

// reserve blocks until at least one slot is free and takes up to
// maxMessages of them. It returns 0 when ctx ends first.
func (c *Consumer) reserve(ctx context.Context) int {
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return 0
	}
	n := 1
	for n < maxMessages && c.slots.TryAcquire(1) {
		n++
	}
	return n
}

// handle evaluates one message. The message is deleted only after its
// response was sent, so failures are redelivered.
func (c *Consumer) handle(ctx context.Context, m types.Message) {
	var req api.EvalReq
	if err := json.Unmarshal([]byte(aws.ToString(m.Body)), &req); err != nil {
		c.logger.Warn("malformed request", "message_id", aws.ToString(m.MessageId), "error", err)
		return
	}

	resp := transport.Handle(ctx, c.engine, req, nil)
	if err := c.send(ctx, req.ResSqsUrl, resp); err != nil {
		c.logger.Error("failed to send response", "eval_id", resp.EvalUuid, "error", err)
		return
	}

	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.requestURL),
		ReceiptHandle: m.ReceiptHandle,
	})
	if err != nil {
		c.logger.Warn("failed to delete message", "eval_id", resp.EvalUuid, "error", err)
	}
}

var errNoResponseQueue = errors.New("no response queue configured")

func (c *Consumer) send(ctx context.Context, queueURL string, resp api.EvalResponse) error {
	if queueURL == "" {
		queueURL = c.responseURL
	}
	if queueURL == "" {
		return errNoResponseQueue
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = c.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(b)),
	})
	return err
}
