package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
)

type MockAPI struct {
	mock.Mock
}

var _ pdbe.API = (*MockAPI)(nil)

func (m *MockAPI) EntrySummary(ctx context.Context, pdbID string) (*model.EntrySummary, error) {
	args := m.Called(ctx, pdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EntrySummary), args.Error(1)
}

func (m *MockAPI) EntrySummaries(ctx context.Context, pdbIDs []string) (map[string]*model.EntrySummary, error) {
	args := m.Called(ctx, pdbIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*model.EntrySummary), args.Error(1)
}

func (m *MockAPI) RelatedPublications(ctx context.Context, pdbIDs []string) (map[string]model.RelatedPublications, error) {
	args := m.Called(ctx, pdbIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.RelatedPublications), args.Error(1)
}

func (m *MockAPI) Outliers(ctx context.Context, pdbID string) (*model.EntryOutliers, error) {
	args := m.Called(ctx, pdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EntryOutliers), args.Error(1)
}

func (m *MockAPI) UniProtMappings(ctx context.Context, pdbID string) (*model.SIFTS, error) {
	args := m.Called(ctx, pdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SIFTS), args.Error(1)
}

func (m *MockAPI) SecondaryStructure(ctx context.Context, pdbIDs ...string) (map[string]model.SecondaryStructureEntry, error) {
	args := m.Called(ctx, pdbIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.SecondaryStructureEntry), args.Error(1)
}

func (m *MockAPI) Search(ctx context.Context, req pdbe.SearchRequest) (*model.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchResponse), args.Error(1)
}

func (m *MockAPI) SearchPost(ctx context.Context, params url.Values, rows int) (*model.SearchResponse, error) {
	args := m.Called(ctx, params, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchResponse), args.Error(1)
}

func (m *MockAPI) LigandSites(ctx context.Context, accession string) (*model.GraphAccession, error) {
	args := m.Called(ctx, accession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GraphAccession), args.Error(1)
}

func (m *MockAPI) InterfaceResidues(ctx context.Context, accession string) (*model.GraphAccession, error) {
	args := m.Called(ctx, accession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GraphAccession), args.Error(1)
}
