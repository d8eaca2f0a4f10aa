package rest

import (
	"context"
	"github.com/heartmarshall/vocabook/internal/domain"
	"sync"
)

var _ vocabularyService = &vocabularyServiceMock{}

type vocabularyServiceMock struct {
	CreateFunc func(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error)
	DeleteFunc func(ctx context.Context, id int64) error
	ListFunc   func(ctx context.Context) ([]domain.VocabularyEntry, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			D   domain.Draft
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx context.Context
		}
	}
	lockCreate sync.RWMutex
	lockDelete sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *vocabularyServiceMock) Create(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error) {
	if mock.CreateFunc == nil {
		panic("vocabularyServiceMock.CreateFunc: method is nil but vocabularyService.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Draft
	}{Ctx: ctx, D: d}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *vocabularyServiceMock) CreateCalls() []struct {
	Ctx context.Context
	D   domain.Draft
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *vocabularyServiceMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("vocabularyServiceMock.DeleteFunc: method is nil but vocabularyService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *vocabularyServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *vocabularyServiceMock) List(ctx context.Context) ([]domain.VocabularyEntry, error) {
	if mock.ListFunc == nil {
		panic("vocabularyServiceMock.ListFunc: method is nil but vocabularyService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *vocabularyServiceMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
