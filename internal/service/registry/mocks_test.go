package registry

import (
	"context"
	"sync"

	"github.com/provenly/dnastore/internal/domain"
)

var _ canonicalStore = &canonicalStoreMock{}

type canonicalStoreMock struct {
	ListByTierFunc func(ctx context.Context, tier domain.Tier) ([]domain.TieredItem, error)
	UpsertFunc     func(ctx context.Context, item domain.TieredItem) error

	calls struct {
		ListByTier []struct {
			Tier domain.Tier
		}
		Upsert []struct {
			Item domain.TieredItem
		}
	}
	lockListByTier sync.RWMutex
	lockUpsert     sync.RWMutex
}

func (mock *canonicalStoreMock) ListByTier(ctx context.Context, tier domain.Tier) ([]domain.TieredItem, error) {
	if mock.ListByTierFunc == nil {
		panic("canonicalStoreMock.ListByTierFunc: method is nil but canonicalStore.ListByTier was just called")
	}
	callInfo := struct{ Tier domain.Tier }{Tier: tier}
	mock.lockListByTier.Lock()
	mock.calls.ListByTier = append(mock.calls.ListByTier, callInfo)
	mock.lockListByTier.Unlock()
	return mock.ListByTierFunc(ctx, tier)
}

func (mock *canonicalStoreMock) ListByTierCalls() []struct {
	Tier domain.Tier
} {
	mock.lockListByTier.RLock()
	calls := mock.calls.ListByTier
	mock.lockListByTier.RUnlock()
	return calls
}

func (mock *canonicalStoreMock) Upsert(ctx context.Context, item domain.TieredItem) error {
	if mock.UpsertFunc == nil {
		panic("canonicalStoreMock.UpsertFunc: method is nil but canonicalStore.Upsert was just called")
	}
	callInfo := struct{ Item domain.TieredItem }{Item: item}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, item)
}

func (mock *canonicalStoreMock) UpsertCalls() []struct {
	Item domain.TieredItem
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

var _ searchIndex = &searchIndexMock{}

type searchIndexMock struct {
	SearchFunc func(ctx context.Context, query string, topK int) ([]string, error)

	calls struct {
		Search []struct {
			Query string
			TopK  int
		}
	}
	lockSearch sync.RWMutex
}

func (mock *searchIndexMock) Search(ctx context.Context, query string, topK int) ([]string, error) {
	if mock.SearchFunc == nil {
		panic("searchIndexMock.SearchFunc: method is nil but searchIndex.Search was just called")
	}
	callInfo := struct {
		Query string
		TopK  int
	}{Query: query, TopK: topK}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, query, topK)
}

func (mock *searchIndexMock) SearchCalls() []struct {
	Query string
	TopK  int
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}
