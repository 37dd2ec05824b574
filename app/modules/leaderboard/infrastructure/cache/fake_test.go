package leaderboardcache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// FakeRedis is an in-memory stand-in for the redis commands the cache issues.
type FakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	GetErr error
	SetErr error
	trace  []string
}

func NewFakeRedis() *FakeRedis {
	return &FakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *FakeRedis) Trace() []string { return f.trace }

func (f *FakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.trace = append(f.trace, "GET "+key)
	if f.GetErr != nil {
		return redis.NewStringResult("", f.GetErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *FakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.trace = append(f.trace, "SET "+key)
	if f.SetErr != nil {
		return redis.NewStatusResult("", f.SetErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *FakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		f.trace = append(f.trace, "DEL "+k)
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
