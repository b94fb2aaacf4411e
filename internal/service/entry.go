package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
)

// MakeSummary renders a one-paragraph description of an entry.
func MakeSummary(e *model.EntrySummary) string {
	summary := fmt.Sprintf("Entry is titled \"%s\" and was released on %s.", e.Title, formatReleaseDate(e.ReleaseDate))
	summary += fmt.Sprintf(" This entry was determined using %s.", strings.Join(e.ExperimentalMethod, " and "))
	return summary
}

// formatReleaseDate turns YYYYMMDD into YYYY/MM/DD.
func formatReleaseDate(d string) string {
	if len(d) != 8 {
		return d
	}
	return d[:4] + "/" + d[4:6] + "/" + d[6:]
}

func (s *PDBeService) Summary(ctx context.Context, pdbID string) (string, error) {
	e, err := s.API.EntrySummary(ctx, pdbID)
	if err != nil {
		return "", err
	}
	return MakeSummary(e), nil
}

// Summaries describes several entries. Entries that could not be fetched are
// missing from the result and reported through the error.
func (s *PDBeService) Summaries(ctx context.Context, pdbIDs []string) (map[string]string, error) {
	entries, err := s.API.EntrySummaries(ctx, pdbIDs)
	out := make(map[string]string, len(entries))
	for id, e := range entries {
		out[id] = MakeSummary(e)
	}
	if err != nil {
		s.logger().Warnw("Some summaries could not be retrieved", "error", err)
	}
	return out, err
}

// CitationCounts counts the reviews and articles citing each entry. Invalid
// ids are skipped and duplicates are queried once.
func (s *PDBeService) CitationCounts(ctx context.Context, pdbIDs []string) (map[string]model.CitationCount, error) {
	valid, rejected := pdbe.UniqueValidIDs(pdbIDs)
	for _, r := range rejected {
		s.logger().Warnw("Skipping invalid PDB id", "pdb_id", r)
	}
	if len(valid) == 0 {
		return nil, ErrNoValidIDs
	}

	pubs, err := s.API.RelatedPublications(ctx, valid)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]model.CitationCount, len(pubs))
	for id, p := range pubs {
		counts[id] = model.CitationCount{
			Reviews:  len(p.CitedBy.Reviews),
			Articles: len(p.CitedBy.Articles),
		}
	}
	return counts, nil
}

// OutlierTally counts outlier residues per model.
type OutlierTally struct {
	Ramachandran map[int]int `json:"ramachandran_outliers"`
	Sidechain    map[int]int `json:"sidechain_outliers"`
}

// CountOutliersPerModel tallies the outliers of each type by model id.
func CountOutliersPerModel(o *model.EntryOutliers) *OutlierTally {
	t := &OutlierTally{Ramachandran: map[int]int{}, Sidechain: map[int]int{}}
	for _, r := range o.RamachandranOutliers {
		t.Ramachandran[r.ModelID]++
	}
	for _, r := range o.SidechainOutliers {
		t.Sidechain[r.ModelID]++
	}
	return t
}

// OutliersOfModel returns the outliers of one model, Ramachandran ones first.
func OutliersOfModel(o *model.EntryOutliers, modelID int) []model.LabelledOutlier {
	var out []model.LabelledOutlier
	for _, r := range o.RamachandranOutliers {
		if r.ModelID == modelID {
			out = append(out, model.LabelledOutlier{OutlierResidue: r, Label: "Ramachandran"})
		}
	}
	for _, r := range o.SidechainOutliers {
		if r.ModelID == modelID {
			out = append(out, model.LabelledOutlier{OutlierResidue: r, Label: "side-chain"})
		}
	}
	return out
}

func (s *PDBeService) OutlierCounts(ctx context.Context, pdbID string) (*OutlierTally, error) {
	o, err := s.API.Outliers(ctx, pdbID)
	if err != nil {
		return nil, err
	}
	return CountOutliersPerModel(o), nil
}

func (s *PDBeService) OutlierResidues(ctx context.Context, pdbID string, modelID int) ([]model.LabelledOutlier, error) {
	o, err := s.API.Outliers(ctx, pdbID)
	if err != nil {
		return nil, err
	}
	return OutliersOfModel(o, modelID), nil
}

// IsNoData reports whether err means the API had nothing for the request.
func IsNoData(err error) bool {
	return errors.Is(err, pdbe.ErrNoData)
}
