package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/battlebranding/food-scout/internal/db"
)

// SAdd adds members to a set.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Sadd().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SRem removes members from a set.
func (s *Store) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Srem().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSRem, Err: err}
	}
	return nil
}

// SMembers returns all members of a set. Member order is unspecified;
// callers that need determinism sort the result themselves.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Smembers().Key(key).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// SMembersMulti fetches members for multiple sets in a single DoMulti round-trip.
func (s *Store) SMembersMulti(ctx context.Context, keys []string) ([][]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Smembers().Key(key).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([][]string, len(results))

	for i, res := range results {
		members, err := res.AsStrSlice()
		if err != nil {
			return nil, fmt.Errorf("SMembersMulti key %s: %w", keys[i], err)
		}
		out[i] = members
	}

	return out, nil
}

// SCard returns the cardinality of a set.
func (s *Store) SCard(ctx context.Context, key string) (int, error) {
	cmd := s.b().Scard().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSCard, Err: err}
	}
	return int(n), nil
}

// SCardMulti returns cardinalities for multiple sets in a single DoMulti round-trip.
func (s *Store) SCardMulti(ctx context.Context, keys []string) ([]int, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Scard().Key(key).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([]int, len(results))

	for i, res := range results {
		n, err := res.AsInt64()
		if err != nil {
			return nil, fmt.Errorf("SCardMulti key %s: %w", keys[i], err)
		}
		out[i] = int(n)
	}

	return out, nil
}
