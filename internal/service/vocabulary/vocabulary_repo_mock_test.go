package vocabulary

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/vocabook/internal/domain"
	"sync"
)

var _ vocabularyRepo = &vocabularyRepoMock{}

type vocabularyRepoMock struct {
	CreateFunc func(ctx context.Context, owner uuid.UUID, d domain.Draft) (domain.VocabularyEntry, error)
	DeleteFunc func(ctx context.Context, owner uuid.UUID, id int64) error
	ListFunc   func(ctx context.Context, owner uuid.UUID) ([]domain.VocabularyEntry, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Owner uuid.UUID
			D     domain.Draft
		}
		Delete []struct {
			Ctx   context.Context
			Owner uuid.UUID
			ID    int64
		}
		List []struct {
			Ctx   context.Context
			Owner uuid.UUID
		}
	}
	lockCreate sync.RWMutex
	lockDelete sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *vocabularyRepoMock) Create(ctx context.Context, owner uuid.UUID, d domain.Draft) (domain.VocabularyEntry, error) {
	if mock.CreateFunc == nil {
		panic("vocabularyRepoMock.CreateFunc: method is nil but vocabularyRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner uuid.UUID
		D     domain.Draft
	}{Ctx: ctx, Owner: owner, D: d}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, owner, d)
}

func (mock *vocabularyRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Owner uuid.UUID
	D     domain.Draft
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *vocabularyRepoMock) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	if mock.DeleteFunc == nil {
		panic("vocabularyRepoMock.DeleteFunc: method is nil but vocabularyRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner uuid.UUID
		ID    int64
	}{Ctx: ctx, Owner: owner, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, owner, id)
}

func (mock *vocabularyRepoMock) DeleteCalls() []struct {
	Ctx   context.Context
	Owner uuid.UUID
	ID    int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *vocabularyRepoMock) List(ctx context.Context, owner uuid.UUID) ([]domain.VocabularyEntry, error) {
	if mock.ListFunc == nil {
		panic("vocabularyRepoMock.ListFunc: method is nil but vocabularyRepo.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner uuid.UUID
	}{Ctx: ctx, Owner: owner}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, owner)
}

func (mock *vocabularyRepoMock) ListCalls() []struct {
	Ctx   context.Context
	Owner uuid.UUID
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
