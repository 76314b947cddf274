package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository/memory"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

type swapFixture struct {
	st    *store.Store
	svc   *service.SwapService
	alice domain.User
	bob   domain.User
	carol domain.User
}

func newSwapFixture(t *testing.T) swapFixture {
	t.Helper()
	st := newTestStore(t)
	return swapFixture{
		st:    st,
		svc:   service.NewSwapService(st, nil),
		alice: addUser(t, st, "Alice Green", "alice@example.com", skill("a-go", "Go", "Programming")),
		bob:   addUser(t, st, "Bob Ray", "bob@example.com", skill("b-piano", "Piano", "Music")),
		carol: addUser(t, st, "Carol King", "carol@example.com", skill("c-yoga", "Yoga", "Fitness")),
	}
}

func (f swapFixture) propose(t *testing.T) domain.SwapRequest {
	t.Helper()
	req, err := f.svc.Create(context.Background(), f.alice.ID, service.SwapInput{
		ToUserID: f.bob.ID, OfferedSkillID: "a-go", RequestedSkillID: "b-piano", Message: "Trade?",
	})
	require.NoError(t, err)
	return req
}

func TestSwapService_Create(t *testing.T) {
	f := newSwapFixture(t)

	req := f.propose(t)

	assert.Equal(t, domain.SwapPending, req.Status)
	assert.Equal(t, f.alice.ID, req.FromUserID)
	assert.Equal(t, f.bob.ID, req.ToUserID)
	assert.Len(t, f.svc.List(f.bob.ID), 1)
	assert.Empty(t, f.svc.List(f.carol.ID))
}

func TestSwapService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st := store.New(memory.New(),
		store.WithHasher(store.NewBcryptHasher(bcrypt.MinCost)),
		store.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, st.Load(ctx))
	svc := service.NewSwapService(st, nil)
	alice := addUser(t, st, "Alice Green", "alice@example.com", skill("a-go", "Go", "Programming"))
	bob := addUser(t, st, "Bob Ray", "bob@example.com", skill("b-piano", "Piano", "Music"))
	carol := addUser(t, st, "Carol King", "carol@example.com", skill("c-yoga", "Yoga", "Fitness"))

	first, err := svc.Create(ctx, alice.ID, service.SwapInput{ToUserID: bob.ID, OfferedSkillID: "a-go", RequestedSkillID: "b-piano"})
	require.NoError(t, err)
	now = now.Add(time.Hour)
	second, err := svc.Create(ctx, carol.ID, service.SwapInput{ToUserID: alice.ID, OfferedSkillID: "c-yoga", RequestedSkillID: "a-go"})
	require.NoError(t, err)
	third, err := svc.Create(ctx, alice.ID, service.SwapInput{ToUserID: carol.ID, OfferedSkillID: "a-go", RequestedSkillID: "c-yoga"})
	require.NoError(t, err)

	got := svc.List(alice.ID)
	require.Len(t, got, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSwapService_CreateRejectsBadInput(t *testing.T) {
	f := newSwapFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor string
		in    service.SwapInput
		want  error
	}{
		{"self swap", f.alice.ID, service.SwapInput{ToUserID: f.alice.ID, OfferedSkillID: "a-go", RequestedSkillID: "a-go"}, domain.ErrInvalidInput},
		{"missing skills", f.alice.ID, service.SwapInput{ToUserID: f.bob.ID}, domain.ErrInvalidInput},
		{"unknown recipient", f.alice.ID, service.SwapInput{ToUserID: "ghost", OfferedSkillID: "a-go", RequestedSkillID: "b-piano"}, domain.ErrNotFound},
		{"offered skill not owned", f.alice.ID, service.SwapInput{ToUserID: f.bob.ID, OfferedSkillID: "b-piano", RequestedSkillID: "b-piano"}, domain.ErrInvalidInput},
		{"requested skill not offered", f.alice.ID, service.SwapInput{ToUserID: f.bob.ID, OfferedSkillID: "a-go", RequestedSkillID: "c-yoga"}, domain.ErrInvalidInput},
		{"unknown sender", "ghost", service.SwapInput{ToUserID: f.bob.ID, OfferedSkillID: "a-go", RequestedSkillID: "b-piano"}, domain.ErrUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.actor, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.st.SwapRequests())
}

func TestSwapService_CreateToBannedUser(t *testing.T) {
	f := newSwapFixture(t)
	f.st.BanUser(context.Background(), f.bob.ID)

	_, err := f.svc.Create(context.Background(), f.alice.ID, service.SwapInput{ToUserID: f.bob.ID, OfferedSkillID: "a-go", RequestedSkillID: "b-piano"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSwapService_Lifecycle(t *testing.T) {
	f := newSwapFixture(t)
	ctx := context.Background()
	req := f.propose(t)

	_, err := f.svc.Accept(ctx, f.alice.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "sender cannot accept")

	_, err = f.svc.Complete(ctx, f.bob.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending cannot complete")

	accepted, err := f.svc.Accept(ctx, f.bob.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapAccepted, accepted.Status)
	assert.NotNil(t, accepted.ResponseDate)

	_, err = f.svc.Reject(ctx, f.bob.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Complete(ctx, f.carol.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	completed, err := f.svc.Complete(ctx, f.alice.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedDate)

	err = f.svc.Withdraw(ctx, f.alice.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSwapService_Reject(t *testing.T) {
	f := newSwapFixture(t)
	req := f.propose(t)

	rejected, err := f.svc.Reject(context.Background(), f.bob.ID, req.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.SwapRejected, rejected.Status)
}

func TestSwapService_Withdraw(t *testing.T) {
	f := newSwapFixture(t)
	ctx := context.Background()
	req := f.propose(t)

	assert.ErrorIs(t, f.svc.Withdraw(ctx, f.bob.ID, req.ID), domain.ErrForbidden)
	require.NoError(t, f.svc.Withdraw(ctx, f.alice.ID, req.ID))
	assert.ErrorIs(t, f.svc.Withdraw(ctx, f.alice.ID, req.ID), domain.ErrNotFound)
}

func TestSwapService_Get(t *testing.T) {
	f := newSwapFixture(t)
	req := f.propose(t)

	got, err := f.svc.Get(f.bob.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)

	_, err = f.svc.Get(f.carol.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Get(f.bob.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSwapService_ConcurrentAcceptAppliesOnce(t *testing.T) {
	f := newSwapFixture(t)
	req := f.propose(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for range 10 {
		wg.Go(func() {
			if _, err := f.svc.Accept(context.Background(), f.bob.ID, req.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
