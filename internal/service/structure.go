package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
)

// ChainRanges lists helix and strand ranges per chain, entries in id order.
func ChainRanges(entries map[string]model.SecondaryStructureEntry) []model.ChainSecondaryStructure {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []model.ChainSecondaryStructure
	for _, id := range ids {
		for _, mol := range entries[id].Molecules {
			for _, ch := range mol.Chains {
				c := model.ChainSecondaryStructure{EntryID: id, ChainID: ch.ChainID}
				for _, h := range ch.SecondaryStructure.Helices {
					c.Helices = append(c.Helices, elementRange(h))
				}
				for _, st := range ch.SecondaryStructure.Strands {
					c.Strands = append(c.Strands, elementRange(st))
				}
				out = append(out, c)
			}
		}
	}
	return out
}

func elementRange(e model.SSElement) string {
	return fmt.Sprintf("%d-%d", e.Start.ResidueNumber, e.End.ResidueNumber)
}

// SecondaryStructureReport renders one chain as a sentence.
func SecondaryStructureReport(c model.ChainSecondaryStructure) string {
	report := fmt.Sprintf("%s chain %s has ", c.EntryID, c.ChainID)
	if len(c.Helices) > 0 {
		report += fmt.Sprintf("helices at residue ranges %s ", strings.Join(c.Helices, ", "))
	} else {
		report += "no helices "
	}
	report += "and "
	if len(c.Strands) > 0 {
		report += fmt.Sprintf("strands at %s", strings.Join(c.Strands, ", "))
	} else {
		report += "no strands"
	}
	return report
}

func (s *PDBeService) SecondaryStructureRanges(ctx context.Context, pdbIDs ...string) ([]model.ChainSecondaryStructure, error) {
	entries, err := s.API.SecondaryStructure(ctx, pdbIDs...)
	if err != nil {
		return nil, err
	}
	return ChainRanges(entries), nil
}
