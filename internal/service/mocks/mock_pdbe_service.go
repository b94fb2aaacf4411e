package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
	"github.com/fakhrymubarak/pdbe-client/internal/service"
)

type MockPDBeService struct {
	mock.Mock
}

var _ service.PDBeServiceInterface = (*MockPDBeService)(nil)

func (m *MockPDBeService) Summary(ctx context.Context, pdbID string) (string, error) {
	args := m.Called(ctx, pdbID)
	return args.String(0), args.Error(1)
}

func (m *MockPDBeService) Summaries(ctx context.Context, pdbIDs []string) (map[string]string, error) {
	args := m.Called(ctx, pdbIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockPDBeService) CitationCounts(ctx context.Context, pdbIDs []string) (map[string]model.CitationCount, error) {
	args := m.Called(ctx, pdbIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.CitationCount), args.Error(1)
}

func (m *MockPDBeService) OutlierCounts(ctx context.Context, pdbID string) (*service.OutlierTally, error) {
	args := m.Called(ctx, pdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OutlierTally), args.Error(1)
}

func (m *MockPDBeService) OutlierResidues(ctx context.Context, pdbID string, modelID int) ([]model.LabelledOutlier, error) {
	args := m.Called(ctx, pdbID, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LabelledOutlier), args.Error(1)
}

func (m *MockPDBeService) MappingRanges(ctx context.Context, pdbID string) ([]model.MappingRange, error) {
	args := m.Called(ctx, pdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MappingRange), args.Error(1)
}

func (m *MockPDBeService) MapResidue(ctx context.Context, pdbID, chainID string, residue int) (int, error) {
	args := m.Called(ctx, pdbID, chainID, residue)
	return args.Int(0), args.Error(1)
}

func (m *MockPDBeService) SecondaryStructureRanges(ctx context.Context, pdbIDs ...string) ([]model.ChainSecondaryStructure, error) {
	args := m.Called(ctx, pdbIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChainSecondaryStructure), args.Error(1)
}

func (m *MockPDBeService) Search(ctx context.Context, req pdbe.SearchRequest) ([]model.Document, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockPDBeService) SequenceSearch(ctx context.Context, sequence string, fields []string, rows int) ([]model.SequenceHit, error) {
	args := m.Called(ctx, sequence, fields, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SequenceHit), args.Error(1)
}

func (m *MockPDBeService) LigandSiteResidues(ctx context.Context, accession string) ([]model.LigandSiteResidue, error) {
	args := m.Called(ctx, accession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LigandSiteResidue), args.Error(1)
}

func (m *MockPDBeService) InterfaceResidues(ctx context.Context, accession string) ([]model.InterfaceResidue, error) {
	args := m.Called(ctx, accession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InterfaceResidue), args.Error(1)
}
