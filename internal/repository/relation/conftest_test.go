package relation

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	delFn           func(ctx context.Context, key string) error
	saddFn          func(ctx context.Context, key string, members ...string) error
	sremFn          func(ctx context.Context, key string, members ...string) error
	smembersFn      func(ctx context.Context, key string) ([]string, error)
	smembersMultiFn func(ctx context.Context, keys []string) ([][]string, error)
	scardFn         func(ctx context.Context, key string) (int, error)
	scardMultiFn    func(ctx context.Context, keys []string) ([]int, error)
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	if m.sremFn != nil {
		return m.sremFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SMembersMulti(ctx context.Context, keys []string) ([][]string, error) {
	if m.smembersMultiFn != nil {
		return m.smembersMultiFn(ctx, keys)
	}
	return make([][]string, len(keys)), nil
}

func (m *mockStore) SCard(ctx context.Context, key string) (int, error) {
	if m.scardFn != nil {
		return m.scardFn(ctx, key)
	}
	return 0, nil
}

func (m *mockStore) SCardMulti(ctx context.Context, keys []string) ([]int, error) {
	if m.scardMultiFn != nil {
		return m.scardMultiFn(ctx, keys)
	}
	return make([]int, len(keys)), nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, nil, zap.NewNop()), ms
}
