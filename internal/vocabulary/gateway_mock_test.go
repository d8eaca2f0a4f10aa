package vocabulary

import (
	"context"
	"github.com/heartmarshall/vocabook/internal/domain"
	"sync"
)

var _ gateway = &gatewayMock{}

type gatewayMock struct {
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

func (mock *gatewayMock) Create(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error) {
	if mock.CreateFunc == nil {
		panic("gatewayMock.CreateFunc: method is nil but gateway.Create was just called")
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

func (mock *gatewayMock) CreateCalls() []struct {
	Ctx context.Context
	D   domain.Draft
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *gatewayMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("gatewayMock.DeleteFunc: method is nil but gateway.Delete was just called")
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

func (mock *gatewayMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *gatewayMock) List(ctx context.Context) ([]domain.VocabularyEntry, error) {
	if mock.ListFunc == nil {
		panic("gatewayMock.ListFunc: method is nil but gateway.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *gatewayMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
