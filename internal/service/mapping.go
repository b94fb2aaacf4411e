package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
)

// SortedRanges flattens the SIFTS mappings, ordered by accession, chain and start.
func SortedRanges(sifts *model.SIFTS) []model.MappingRange {
	ranges := sifts.Ranges()
	sort.SliceStable(ranges, func(i, j int) bool {
		a, b := ranges[i], ranges[j]
		if a.UniProtID != b.UniProtID {
			return a.UniProtID < b.UniProtID
		}
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		return a.PDBStart < b.PDBStart
	})
	return ranges
}

// MapResidue maps residue of chainID to its UniProt position using the first
// range that covers it.
func MapResidue(sifts *model.SIFTS, chainID string, residue int) (int, bool) {
	for _, r := range SortedRanges(sifts) {
		if r.ChainID != chainID {
			continue
		}
		if pos, ok := r.Map(residue); ok {
			return pos, true
		}
	}
	return 0, false
}

func (s *PDBeService) MappingRanges(ctx context.Context, pdbID string) ([]model.MappingRange, error) {
	sifts, err := s.API.UniProtMappings(ctx, pdbID)
	if err != nil {
		return nil, err
	}
	return SortedRanges(sifts), nil
}

func (s *PDBeService) MapResidue(ctx context.Context, pdbID, chainID string, residue int) (int, error) {
	sifts, err := s.API.UniProtMappings(ctx, pdbID)
	if err != nil {
		return 0, err
	}
	pos, ok := MapResidue(sifts, chainID, residue)
	if !ok {
		return 0, fmt.Errorf("%w: %s chain %s residue %d", ErrResidueNotMapped, pdbID, chainID, residue)
	}
	return pos, nil
}

// DescribeRange renders a mapping range as a sentence.
func DescribeRange(r model.MappingRange) string {
	return fmt.Sprintf("entity %d in chain %s is indexed from %d to %d in PDB, and from %d to %d in UniProt %s",
		r.EntityID, r.ChainID, r.PDBStart, r.PDBEnd, r.UniProtStart, r.UniProtEnd, r.UniProtID)
}
