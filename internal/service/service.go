package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
)

var (
	ErrNoValidIDs       = errors.New("no valid PDB ids")
	ErrResidueNotMapped = errors.New("residue is not mapped to UniProt")
)

// PDBeServiceInterface is what the CLI and the lookup server depend on.
type PDBeServiceInterface interface {
	Summary(ctx context.Context, pdbID string) (string, error)
	Summaries(ctx context.Context, pdbIDs []string) (map[string]string, error)
	CitationCounts(ctx context.Context, pdbIDs []string) (map[string]model.CitationCount, error)
	OutlierCounts(ctx context.Context, pdbID string) (*OutlierTally, error)
	OutlierResidues(ctx context.Context, pdbID string, modelID int) ([]model.LabelledOutlier, error)
	MappingRanges(ctx context.Context, pdbID string) ([]model.MappingRange, error)
	MapResidue(ctx context.Context, pdbID, chainID string, residue int) (int, error)
	SecondaryStructureRanges(ctx context.Context, pdbIDs ...string) ([]model.ChainSecondaryStructure, error)
	Search(ctx context.Context, req pdbe.SearchRequest) ([]model.Document, error)
	SequenceSearch(ctx context.Context, sequence string, fields []string, rows int) ([]model.SequenceHit, error)
	LigandSiteResidues(ctx context.Context, accession string) ([]model.LigandSiteResidue, error)
	InterfaceResidues(ctx context.Context, accession string) ([]model.InterfaceResidue, error)
}

// PDBeService turns raw API payloads into reports.
type PDBeService struct {
	API    pdbe.API
	Logger *zap.SugaredLogger
}

var _ PDBeServiceInterface = (*PDBeService)(nil)

// NewPDBeService creates a service. Without an API it uses a client built from config.
func NewPDBeService(api ...pdbe.API) *PDBeService {
	var a pdbe.API
	if len(api) > 0 && api[0] != nil {
		a = api[0]
	} else {
		a = pdbe.NewClient()
	}
	return &PDBeService{API: a, Logger: config.GetLogger()}
}

func (s *PDBeService) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return config.GetLogger()
	}
	return s.Logger
}

// Search returns the documents of a GET search.
func (s *PDBeService) Search(ctx context.Context, req pdbe.SearchRequest) ([]model.Document, error) {
	resp, err := s.API.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	docs := resp.Response.Docs
	s.logger().Infow("Search finished", "query", req.Values().Get("q"), "results", len(docs))
	return docs, nil
}

// SequenceSearch runs an xjoin_fasta search and joins each document with the
// alignment of its chains.
func (s *PDBeService) SequenceSearch(ctx context.Context, sequence string, fields []string, rows int) ([]model.SequenceHit, error) {
	resp, err := s.API.SearchPost(ctx, pdbe.SequenceSearchParams(sequence, fields), rows)
	if err != nil {
		return nil, err
	}
	hits := JoinSequenceHits(resp)
	s.logger().Infow("Sequence search finished", "documents", len(resp.Response.Docs), "hits", len(hits))
	return hits, nil
}
