// Package mentor matches inventory trainees with a mentor from a fixed pool.
package mentor

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/zjrosen/enroll/internal/cachemanager"
	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/log"
)

// ErrNoMentors is returned when the mentor pool is empty.
var ErrNoMentors = errors.New("no mentors configured")

// DefaultCacheTTL is how long a match stays cached when no ttl is configured.
const DefaultCacheTTL = 10 * time.Minute

// Store persists mentor assignments.
type Store interface {
	Assignment(ctx context.Context, user string) (string, bool, error)
	Assign(ctx context.Context, user, mentor string) error
}

// Matcher implements collaborator.MentorMatcher. A user keeps the mentor
// they were first assigned; new users are placed by hashing their id over
// the pool so the same pool always yields the same choice.
type Matcher struct {
	pool  []string
	store Store
	cache *cachemanager.ReadThroughCache[string, string, string]
	ttl   time.Duration
}

var _ collaborator.MentorMatcher = (*Matcher)(nil)

// Option configures a Matcher.
type Option func(*matcherOptions)

type matcherOptions struct {
	cache cachemanager.CacheManager[string, string]
	ttl   time.Duration
}

// WithCache memoizes matches in c for ttl.
func WithCache(c cachemanager.CacheManager[string, string], ttl time.Duration) Option {
	return func(o *matcherOptions) {
		o.cache = c
		o.ttl = ttl
	}
}

// NewMatcher builds a matcher over pool. Blank names are dropped.
func NewMatcher(pool []string, store Store, opts ...Option) *Matcher {
	o := matcherOptions{ttl: DefaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Matcher{store: store, ttl: o.ttl}
	for _, name := range pool {
		if name = strings.TrimSpace(name); name != "" {
			m.pool = append(m.pool, name)
		}
	}

	m.cache = cachemanager.NewReadThroughCache(o.cache, m.match)
	return m
}

// FindMentor returns the mentor for user.
func (m *Matcher) FindMentor(ctx context.Context, user string) (string, error) {
	return m.cache.Get(ctx, user, user, m.ttl)
}

// Pool returns the configured mentors.
func (m *Matcher) Pool() []string {
	return append([]string(nil), m.pool...)
}

func (m *Matcher) match(ctx context.Context, user string) (string, error) {
	if m.store != nil {
		mentor, ok, err := m.store.Assignment(ctx, user)
		if err != nil {
			return "", err
		}
		if ok {
			return mentor, nil
		}
	}

	mentor, err := Pick(m.pool, user)
	if err != nil {
		return "", err
	}

	if m.store != nil {
		if err := m.store.Assign(ctx, user, mentor); err != nil {
			return "", fmt.Errorf("record mentor for %s: %w", user, err)
		}
	}
	log.Debug(log.CatEnroll, "mentor matched", "user", user, "mentor", mentor)
	return mentor, nil
}

// Pick chooses a mentor from pool by FNV-1a hash of user.
func Pick(pool []string, user string) (string, error) {
	if len(pool) == 0 {
		return "", ErrNoMentors
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(user))
	return pool[h.Sum32()%uint32(len(pool))], nil //nolint:gosec // G115: pool length is small
}
