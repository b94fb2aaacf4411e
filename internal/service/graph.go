package service

import (
	"context"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
)

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// FlattenLigandSites emits one row per residue of every ligand.
func FlattenLigandSites(accession string, data *model.GraphAccession) []model.LigandSiteResidue {
	var out []model.LigandSiteResidue
	for _, site := range data.Data {
		for _, r := range site.Residues {
			out = append(out, model.LigandSiteResidue{
				UniProtAccession: accession,
				LigandAccession:  site.Accession,
				LigandName:       site.Name,
				LigandNumAtoms:   site.AdditionalData.NumAtoms,
				StartIndex:       r.StartIndex,
				EndIndex:         r.EndIndex,
				StartCode:        r.StartCode,
				InteractingCount: len(r.InteractingPDBEntries),
				AllCount:         len(r.AllPDBEntries),
				InteractionRatio: ratio(len(r.InteractingPDBEntries), len(r.AllPDBEntries)),
			})
		}
	}
	return out
}

// FlattenInterfaceResidues emits one row per residue of every interacting
// partner. The ratio is taken against all entries of the partner.
func FlattenInterfaceResidues(accession string, data *model.GraphAccession) []model.InterfaceResidue {
	var out []model.InterfaceResidue
	for _, site := range data.Data {
		for _, r := range site.Residues {
			out = append(out, model.InterfaceResidue{
				UniProtAccession:         accession,
				Length:                   data.Length,
				InteractionAccession:     site.Accession,
				InteractionName:          site.Name,
				InteractionAccessionType: site.AdditionalData.Type,
				StartIndex:               r.StartIndex,
				EndIndex:                 r.EndIndex,
				StartCode:                r.StartCode,
				InteractingPDBEntries:    len(r.InteractingPDBEntries),
				AllPDBEntries:            len(site.AllPDBEntries),
				InteractionRatio:         ratio(len(r.InteractingPDBEntries), len(site.AllPDBEntries)),
			})
		}
	}
	return out
}

// LigandSiteResidues lists the ligand binding residues of an accession,
// labelled with its canonical upper-case form.
func (s *PDBeService) LigandSiteResidues(ctx context.Context, accession string) ([]model.LigandSiteResidue, error) {
	acc, err := pdbe.NormalizeAccession(accession)
	if err != nil {
		return nil, err
	}
	data, err := s.API.LigandSites(ctx, acc)
	if err != nil {
		return nil, err
	}
	return FlattenLigandSites(acc, data), nil
}

func (s *PDBeService) InterfaceResidues(ctx context.Context, accession string) ([]model.InterfaceResidue, error) {
	acc, err := pdbe.NormalizeAccession(accession)
	if err != nil {
		return nil, err
	}
	data, err := s.API.InterfaceResidues(ctx, acc)
	if err != nil {
		return nil, err
	}
	return FlattenInterfaceResidues(acc, data), nil
}
