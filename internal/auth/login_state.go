package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/arenadesk/arenadesk/internal/store"
)

// LoginState tracks failed password attempts per user.
type LoginState struct {
	FailCount   int       `json:"failCount"             redis:"fail_count"`
	LockedUntil time.Time `json:"lockedUntil,omitempty" redis:"locked_until"`
}

func (s *LoginState) IsLocked() bool {
	return time.Now().Before(s.LockedUntil)
}

func (s *LoginState) RegisterFailure(maxFails int, lockDuration time.Duration) {
	s.FailCount++
	if s.FailCount >= maxFails {
		s.LockedUntil = time.Now().Add(lockDuration)
	}
}

type loginStateStore struct {
	store.Store[LoginState]
}

func (s *loginStateStore) Get(ctx context.Context, uid uint) (*LoginState, error) {
	uidKey := strconv.Itoa(int(uid))
	state, err := s.Store.Get(ctx, uidKey)
	if errors.Is(err, store.ErrNotFound) {
		return &LoginState{}, nil
	} else if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *loginStateStore) Set(ctx context.Context, uid uint, state LoginState, expiresIn time.Duration) error {
	uidKey := strconv.Itoa(int(uid))
	return s.Store.Set(ctx, uidKey, state, expiresIn)
}

func (s *loginStateStore) Del(ctx context.Context, uid uint) error {
	uidKey := strconv.Itoa(int(uid))
	return s.Store.Del(ctx, uidKey)
}

func newLoginStateStore(store store.Store[LoginState]) *loginStateStore {
	return &loginStateStore{
		Store: store,
	}
}
