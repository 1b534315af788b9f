package sqsq_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/transport/sqsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	queue string
	resp  api.EvalResponse
}

type fakeSQS struct {
	mu       sync.Mutex
	batches  [][]types.Message
	cancel   context.CancelFunc
	sendErr  error
	sent     []sent
	deleted  []string
	receives int
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receives++
	if len(f.batches) == 0 {
		f.cancel()
		return nil, context.Canceled
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return &sqs.ReceiveMessageOutput{Messages: b}, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	var resp api.EvalResponse
	if err := json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &resp); err != nil {
		return nil, err
	}
	f.sent = append(f.sent, sent{queue: aws.ToString(in.QueueUrl), resp: resp})
	return &sqs.SendMessageOutput{}, nil
}

type passEngine struct{}

func (passEngine) Evaluate(_ context.Context, sub evaluator.Submission, g evaluator.Gatherer) (*evaluator.Result, error) {
	res := &evaluator.Result{EvalID: sub.ID, Passed: 2, Total: 2, Score: 100, Summary: evaluator.Summary(2, 2, 100)}
	g.FinishNoError(res)
	return res, nil
}

func message(t *testing.T, handle string, req any) types.Message {
	t.Helper()
	var body string
	if s, ok := req.(string); ok {
		body = s
	} else {
		b, err := json.Marshal(req)
		require.NoError(t, err)
		body = string(b)
	}
	return types.Message{
		MessageId:     aws.String("id-" + handle),
		ReceiptHandle: aws.String(handle),
		Body:          aws.String(body),
	}
}

func TestConsumerEvaluatesAndDeletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fake := &fakeSQS{cancel: cancel}
	fake.batches = [][]types.Message{{
		message(t, "h1", api.EvalReq{EvalUuid: "e1", QKey: "q1", Language: "py"}),
		message(t, "h2", api.EvalReq{EvalUuid: "e2", QKey: "q1", Language: "py", ResSqsUrl: "https://sqs/custom"}),
		message(t, "h3", "{broken"),
	}}

	c := sqsq.New(fake, passEngine{}, "https://sqs/requests", "https://sqs/responses", 10, nil)
	require.NoError(t, c.Serve(ctx))

	assert.ElementsMatch(t, []string{"h1", "h2"}, fake.deleted)
	require.Len(t, fake.sent, 2)
	byID := map[string]sent{}
	for _, s := range fake.sent {
		byID[s.resp.EvalUuid] = s
	}
	assert.Equal(t, "https://sqs/responses", byID["e1"].queue)
	assert.Equal(t, "https://sqs/custom", byID["e2"].queue)
	assert.Equal(t, 100, byID["e1"].resp.Score)
}

func TestConsumerKeepsMessageWhenSendFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fake := &fakeSQS{cancel: cancel, sendErr: errors.New("throttled")}
	fake.batches = [][]types.Message{{
		message(t, "h1", api.EvalReq{EvalUuid: "e1", QKey: "q1", Language: "py"}),
	}}

	c := sqsq.New(fake, passEngine{}, "https://sqs/requests", "https://sqs/responses", 10, nil)
	require.NoError(t, c.Serve(ctx))
	assert.Empty(t, fake.deleted)
}

func TestConsumerWithoutResponseQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fake := &fakeSQS{cancel: cancel}
	fake.batches = [][]types.Message{{
		message(t, "h1", api.EvalReq{EvalUuid: "e1", QKey: "q1", Language: "py"}),
	}}

	c := sqsq.New(fake, passEngine{}, "https://sqs/requests", "", 10, nil)
	require.NoError(t, c.Serve(ctx))
	assert.Empty(t, fake.sent)
	assert.Empty(t, fake.deleted)
}

// floodSQS always answers with as many messages as were asked for.
type floodSQS struct {
	fakeSQS
	received     atomic.Int32
	maxRequested atomic.Int32
}

func (f *floodSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := in.MaxNumberOfMessages
	if n > f.maxRequested.Load() {
		f.maxRequested.Store(n)
	}
	out := &sqs.ReceiveMessageOutput{}
	for i := int32(0); i < n; i++ {
		id := f.received.Add(1)
		body := fmt.Sprintf(`{"eval_uuid":"e%d","qkey":"q1","language":"py"}`, id)
		out.Messages = append(out.Messages, types.Message{
			MessageId:     aws.String(fmt.Sprint(id)),
			ReceiptHandle: aws.String(fmt.Sprint(id)),
			Body:          aws.String(body),
		})
	}
	return out, nil
}

type slowEngine struct {
	running atomic.Int32
	peak    atomic.Int32
	done    atomic.Int32
}

func (s *slowEngine) Evaluate(_ context.Context, sub evaluator.Submission, g evaluator.Gatherer) (*evaluator.Result, error) {
	n := s.running.Add(1)
	defer s.running.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(50 * time.Millisecond)
	s.done.Add(1)
	return passEngine{}.Evaluate(context.Background(), sub, g)
}

func TestConsumerReceivesOnlyWhatItCanHold(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	fake := &floodSQS{}
	eng := &slowEngine{}
	c := sqsq.New(fake, eng, "https://sqs/requests", "https://sqs/responses", 2, nil)
	require.NoError(t, c.Serve(ctx))

	assert.LessOrEqual(t, fake.maxRequested.Load(), int32(2))
	assert.LessOrEqual(t, eng.peak.Load(), int32(2))
	// every received message was evaluated; nothing piled up unhandled
	assert.Equal(t, fake.received.Load(), eng.done.Load())
	assert.Less(t, fake.received.Load(), int32(30))
	assert.Len(t, fake.deleted, int(fake.received.Load()))
}
