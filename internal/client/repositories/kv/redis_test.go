package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps values in a map and records TTLs instead of enforcing them.
type fakeRedis struct {
	data map[string][]byte
	ttl  map[string]time.Duration
	err  error

	evalScript string
	evalKeys   []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = value.([]byte)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			n++
		}
		delete(f.data, k)
		delete(f.ttl, k)
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Eval(_ context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.evalScript = script
	f.evalKeys = keys
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	ttl := time.Duration(args[0].(int64)) * time.Millisecond
	for i, k := range keys {
		f.data[k] = args[i+1].([]byte)
		f.ttl[k] = ttl
	}
	return redis.NewCmdResult(int64(len(keys)), nil)
}

func TestRedis_SetGetWithPrefix(t *testing.T) {
	f := newFakeRedis()
	r := newRedisRepository(f, "noteapp:")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "pendingEmail", []byte("a@b.co"), 0))
	assert.Contains(t, f.data, "noteapp:pendingEmail")
	assert.Equal(t, time.Duration(0), f.ttl["noteapp:pendingEmail"])

	v, err := r.Get(ctx, "pendingEmail")
	require.NoError(t, err)
	assert.Equal(t, []byte("a@b.co"), v)
}

func TestRedis_GetMissing(t *testing.T) {
	r := newRedisRepository(newFakeRedis(), "p:")

	v, err := r.Get(context.Background(), "authToken")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedis_SetAllUsesScript(t *testing.T) {
	f := newFakeRedis()
	r := newRedisRepository(f, "p:")

	err := r.SetAll(context.Background(), map[string][]byte{
		"authToken": []byte("tok"),
		"userData":  []byte("{}"),
	}, 7*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, setAllScript, f.evalScript)
	assert.ElementsMatch(t, []string{"p:authToken", "p:userData"}, f.evalKeys)
	assert.Equal(t, 7*24*time.Hour, f.ttl["p:authToken"])
	assert.Equal(t, []byte("tok"), f.data["p:authToken"])

	require.NoError(t, r.SetAll(context.Background(), nil, time.Hour))
}

func TestRedis_DeleteMany(t *testing.T) {
	f := newFakeRedis()
	r := newRedisRepository(f, "p:")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "authToken", []byte("t"), time.Hour))
	require.NoError(t, r.Set(ctx, "keep", []byte("k"), 0))
	require.NoError(t, r.Delete(ctx, "authToken", "userData", "pendingEmail"))

	assert.NotContains(t, f.data, "p:authToken")
	assert.Contains(t, f.data, "p:keep")
}

func TestRedis_ErrorsWrapped(t *testing.T) {
	f := newFakeRedis()
	f.err = errors.New("connection refused")
	r := newRedisRepository(f, "p:")
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")
	require.ErrorContains(t, r.Set(ctx, "k", nil, 0), "failed to set kv[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv")
	require.ErrorContains(t, r.SetAll(ctx, map[string][]byte{"k": nil}, 0), "failed to set kv")
}
