package waitlist

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error)
	GetByEmailFunc             func(ctx context.Context, email string) (*domain.WaitlistEntry, error)
	GetByReferralCodeFunc      func(ctx context.Context, code string) (*domain.WaitlistEntry, error)
	CountFunc                  func(ctx context.Context) (int, error)
	InsertFunc                 func(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	IncrementReferralCountFunc func(ctx context.Context, id uuid.UUID) (int, error)
	UpdatePositionFunc         func(ctx context.Context, id uuid.UUID, position int) error
	ShiftPositionsFunc         func(ctx context.Context, from, to int) (int64, error)
	ListByReferralRankFunc     func(ctx context.Context) ([]domain.WaitlistEntry, error)
	ListAllFunc                func(ctx context.Context) ([]domain.WaitlistEntry, error)
	ClearTop50Func             func(ctx context.Context) error
	SetTop50Func               func(ctx context.Context, slots []domain.RankSlot) error
	SetSubscribedFunc          func(ctx context.Context, email string, subscribed bool) error
	LockRankingFunc            func(ctx context.Context) error

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		GetByEmail []struct {
			Email string
		}
		GetByReferralCode []struct {
			Code string
		}
		Count  []struct{}
		Insert []struct {
			E *domain.WaitlistEntry
		}
		IncrementReferralCount []struct {
			ID uuid.UUID
		}
		UpdatePosition []struct {
			ID       uuid.UUID
			Position int
		}
		ShiftPositions []struct {
			From int
			To   int
		}
		ListByReferralRank []struct{}
		ListAll            []struct{}
		ClearTop50         []struct{}
		SetTop50           []struct {
			Slots []domain.RankSlot
		}
		SetSubscribed []struct {
			Email      string
			Subscribed bool
		}
		LockRanking []struct{}
	}
	mu sync.RWMutex
}

func (mock *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error) {
	if mock.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{id})
	mock.mu.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *entryRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetByID
}

func (mock *entryRepoMock) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	if mock.GetByEmailFunc == nil {
		panic("entryRepoMock.GetByEmailFunc: method is nil but entryRepo.GetByEmail was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, struct{ Email string }{email})
	mock.mu.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *entryRepoMock) GetByEmailCalls() []struct{ Email string } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetByEmail
}

func (mock *entryRepoMock) GetByReferralCode(ctx context.Context, code string) (*domain.WaitlistEntry, error) {
	if mock.GetByReferralCodeFunc == nil {
		panic("entryRepoMock.GetByReferralCodeFunc: method is nil but entryRepo.GetByReferralCode was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByReferralCode = append(mock.calls.GetByReferralCode, struct{ Code string }{code})
	mock.mu.Unlock()
	return mock.GetByReferralCodeFunc(ctx, code)
}

func (mock *entryRepoMock) GetByReferralCodeCalls() []struct{ Code string } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetByReferralCode
}

func (mock *entryRepoMock) Count(ctx context.Context) (int, error) {
	if mock.CountFunc == nil {
		panic("entryRepoMock.CountFunc: method is nil but entryRepo.Count was just called")
	}
	mock.mu.Lock()
	mock.calls.Count = append(mock.calls.Count, struct{}{})
	mock.mu.Unlock()
	return mock.CountFunc(ctx)
}

func (mock *entryRepoMock) CountCalls() []struct{} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Count
}

func (mock *entryRepoMock) Insert(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	if mock.InsertFunc == nil {
		panic("entryRepoMock.InsertFunc: method is nil but entryRepo.Insert was just called")
	}
	mock.mu.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ E *domain.WaitlistEntry }{e})
	mock.mu.Unlock()
	return mock.InsertFunc(ctx, e)
}

func (mock *entryRepoMock) InsertCalls() []struct{ E *domain.WaitlistEntry } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Insert
}

func (mock *entryRepoMock) IncrementReferralCount(ctx context.Context, id uuid.UUID) (int, error) {
	if mock.IncrementReferralCountFunc == nil {
		panic("entryRepoMock.IncrementReferralCountFunc: method is nil but entryRepo.IncrementReferralCount was just called")
	}
	mock.mu.Lock()
	mock.calls.IncrementReferralCount = append(mock.calls.IncrementReferralCount, struct{ ID uuid.UUID }{id})
	mock.mu.Unlock()
	return mock.IncrementReferralCountFunc(ctx, id)
}

func (mock *entryRepoMock) IncrementReferralCountCalls() []struct{ ID uuid.UUID } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.IncrementReferralCount
}

func (mock *entryRepoMock) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	if mock.UpdatePositionFunc == nil {
		panic("entryRepoMock.UpdatePositionFunc: method is nil but entryRepo.UpdatePosition was just called")
	}
	mock.mu.Lock()
	mock.calls.UpdatePosition = append(mock.calls.UpdatePosition, struct {
		ID       uuid.UUID
		Position int
	}{id, position})
	mock.mu.Unlock()
	return mock.UpdatePositionFunc(ctx, id, position)
}

func (mock *entryRepoMock) UpdatePositionCalls() []struct {
	ID       uuid.UUID
	Position int
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.UpdatePosition
}

func (mock *entryRepoMock) ShiftPositions(ctx context.Context, from, to int) (int64, error) {
	if mock.ShiftPositionsFunc == nil {
		panic("entryRepoMock.ShiftPositionsFunc: method is nil but entryRepo.ShiftPositions was just called")
	}
	mock.mu.Lock()
	mock.calls.ShiftPositions = append(mock.calls.ShiftPositions, struct {
		From int
		To   int
	}{from, to})
	mock.mu.Unlock()
	return mock.ShiftPositionsFunc(ctx, from, to)
}

func (mock *entryRepoMock) ShiftPositionsCalls() []struct {
	From int
	To   int
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.ShiftPositions
}

func (mock *entryRepoMock) ListByReferralRank(ctx context.Context) ([]domain.WaitlistEntry, error) {
	if mock.ListByReferralRankFunc == nil {
		panic("entryRepoMock.ListByReferralRankFunc: method is nil but entryRepo.ListByReferralRank was just called")
	}
	mock.mu.Lock()
	mock.calls.ListByReferralRank = append(mock.calls.ListByReferralRank, struct{}{})
	mock.mu.Unlock()
	return mock.ListByReferralRankFunc(ctx)
}

func (mock *entryRepoMock) ListByReferralRankCalls() []struct{} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.ListByReferralRank
}

func (mock *entryRepoMock) ListAll(ctx context.Context) ([]domain.WaitlistEntry, error) {
	if mock.ListAllFunc == nil {
		panic("entryRepoMock.ListAllFunc: method is nil but entryRepo.ListAll was just called")
	}
	mock.mu.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, struct{}{})
	mock.mu.Unlock()
	return mock.ListAllFunc(ctx)
}

func (mock *entryRepoMock) ListAllCalls() []struct{} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.ListAll
}

func (mock *entryRepoMock) ClearTop50(ctx context.Context) error {
	if mock.ClearTop50Func == nil {
		panic("entryRepoMock.ClearTop50Func: method is nil but entryRepo.ClearTop50 was just called")
	}
	mock.mu.Lock()
	mock.calls.ClearTop50 = append(mock.calls.ClearTop50, struct{}{})
	mock.mu.Unlock()
	return mock.ClearTop50Func(ctx)
}

func (mock *entryRepoMock) ClearTop50Calls() []struct{} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.ClearTop50
}

func (mock *entryRepoMock) SetTop50(ctx context.Context, slots []domain.RankSlot) error {
	if mock.SetTop50Func == nil {
		panic("entryRepoMock.SetTop50Func: method is nil but entryRepo.SetTop50 was just called")
	}
	mock.mu.Lock()
	mock.calls.SetTop50 = append(mock.calls.SetTop50, struct{ Slots []domain.RankSlot }{slots})
	mock.mu.Unlock()
	return mock.SetTop50Func(ctx, slots)
}

func (mock *entryRepoMock) SetTop50Calls() []struct{ Slots []domain.RankSlot } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SetTop50
}

func (mock *entryRepoMock) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	if mock.SetSubscribedFunc == nil {
		panic("entryRepoMock.SetSubscribedFunc: method is nil but entryRepo.SetSubscribed was just called")
	}
	mock.mu.Lock()
	mock.calls.SetSubscribed = append(mock.calls.SetSubscribed, struct {
		Email      string
		Subscribed bool
	}{email, subscribed})
	mock.mu.Unlock()
	return mock.SetSubscribedFunc(ctx, email, subscribed)
}

func (mock *entryRepoMock) SetSubscribedCalls() []struct {
	Email      string
	Subscribed bool
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SetSubscribed
}

func (mock *entryRepoMock) LockRanking(ctx context.Context) error {
	if mock.LockRankingFunc == nil {
		panic("entryRepoMock.LockRankingFunc: method is nil but entryRepo.LockRanking was just called")
	}
	mock.mu.Lock()
	mock.calls.LockRanking = append(mock.calls.LockRanking, struct{}{})
	mock.mu.Unlock()
	return mock.LockRankingFunc(ctx)
}

func (mock *entryRepoMock) LockRankingCalls() []struct{} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.LockRanking
}
