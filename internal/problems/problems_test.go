package problems_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/klauspost/compress/zstd"
	"github.com/oa-drill/evaluator/internal/problems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoSum = problems.Problem{
	Name: "Two Sum",
	Link: "https://example.com/two-sum",
	Samples: []problems.SampleCase{
		{Input: "1 2\n", ExpectedOutput: "3\n"},
		{Input: "5 5\n", ExpectedOutput: "10\n"},
	},
}

func zst(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestStatic(t *testing.T) {
	s := problems.Static{"q1": twoSum.Samples}

	got, err := s.Samples(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, twoSum.Samples, got)

	_, err = s.Samples(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, problems.ErrNotFound)
}

func TestFileStore(t *testing.T) {
	raw, err := json.Marshal(problems.Document{Problems: map[string]problems.Problem{"q1": twoSum}})
	require.NoError(t, err)

	for name, content := range map[string][]byte{
		"problems.json":     raw,
		"problems.json.zst": zst(t, raw),
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, content, 0o644))
			fs := problems.NewFileStore(path)

			got, err := fs.Samples(context.Background(), "q1")
			require.NoError(t, err)
			assert.Equal(t, twoSum.Samples, got)

			_, err = fs.Samples(context.Background(), "q2")
			assert.ErrorIs(t, err, problems.ErrNotFound)
		})
	}
}

func TestFileStoreReadsOriginalCacheLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	doc := `{"problems": {"q1": {"name": "A", "samples": [{"input": "1\n", "output": "1\n"}]}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := problems.NewFileStore(path).Samples(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, []problems.SampleCase{{Input: "1\n", ExpectedOutput: "1\n"}}, got)
}

func TestFileStoreMissingFile(t *testing.T) {
	fs := problems.NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := fs.Samples(context.Background(), "q1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, problems.ErrNotFound))
}

type fakeS3 struct {
	objects map[string][]byte
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Store(t *testing.T) {
	raw, err := json.Marshal(twoSum)
	require.NoError(t, err)
	client := &fakeS3{objects: map[string][]byte{
		"bucket/problems/q1.json":     raw,
		"bucket/problems/q2.json.zst": zst(t, raw),
	}}
	store := problems.NewS3Store(client, "bucket", "/problems/")

	got, err := store.Samples(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, twoSum.Samples, got)

	got, err = store.Samples(context.Background(), "q2")
	require.NoError(t, err)
	assert.Equal(t, twoSum.Samples, got)
	assert.Equal(t, []string{"problems/q1.json", "problems/q2.json", "problems/q2.json.zst"}, client.keys)

	_, err = store.Samples(context.Background(), "q3")
	assert.ErrorIs(t, err, problems.ErrNotFound)

	_, err = store.Samples(context.Background(), "../secret")
	assert.ErrorIs(t, err, problems.ErrNotFound)
}

type failing struct{ err error }

func (f failing) Samples(context.Context, string) ([]problems.SampleCase, error) {
	return nil, f.err
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	first := problems.Static{"a": {{Input: "1", ExpectedOutput: "1"}}}
	second := problems.Static{"a": {{Input: "2", ExpectedOutput: "2"}}, "b": {{Input: "3", ExpectedOutput: "3"}}}
	c := problems.Chain{first, second}

	got, err := c.Samples(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got[0].Input)

	got, err = c.Samples(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "3", got[0].Input)

	_, err = c.Samples(ctx, "zzz")
	assert.ErrorIs(t, err, problems.ErrNotFound)

	boom := errors.New("bucket unreachable")
	_, err = problems.Chain{failing{boom}, second}.Samples(ctx, "b")
	assert.ErrorIs(t, err, boom)
}
