package model

// Reference: https://www.ebi.ac.uk/pdbe/api/doc/sifts.html

// SIFTS is the per-entry payload of api/mappings/uniprot/{id}.
type SIFTS struct {
	UniProt map[string]*Accession `json:"UniProt"`
}

// Accession represents an UniProt accession.
type Accession struct {
	Identifier string     `json:"identifier"`
	Name       string     `json:"name"`
	Mappings   []*Mapping `json:"mappings"`
}

// Mapping represents position mappings between the UniProt entry and one chain of a PDB entry.
type Mapping struct {
	EntityID     int       `json:"entity_id"`
	ChainID      string    `json:"chain_id"`
	StructAsymID string    `json:"struct_asym_id"`
	PDBStart     *Position `json:"start"`
	PDBEnd       *Position `json:"end"`
	UnpStart     int       `json:"unp_start"`
	UnpEnd       int       `json:"unp_end"`
}

// Position represents the start or end position of a PDB segment.
type Position struct {
	ResidueNumber       int    `json:"residue_number"`
	AuthorResidueNumber *int   `json:"author_residue_number"`
	AuthorInsertionCode string `json:"author_insertion_code"`
}

// MappingRange is a flattened Mapping.
type MappingRange struct {
	UniProtID    string `json:"uniprot_id"`
	EntityID     int    `json:"entity_id"`
	ChainID      string `json:"chain_id"`
	PDBStart     int    `json:"pdb_start"`
	PDBEnd       int    `json:"pdb_end"`
	UniProtStart int    `json:"unp_start"`
	UniProtEnd   int    `json:"unp_end"`
}

// Map converts a PDB residue number inside the range to its UniProt position.
func (r MappingRange) Map(residue int) (int, bool) {
	if residue < r.PDBStart || residue > r.PDBEnd {
		return 0, false
	}
	return residue + (r.UniProtStart - r.PDBStart), true
}

// Ranges flattens every mapping of every accession.
func (s *SIFTS) Ranges() []MappingRange {
	var out []MappingRange
	for acc, a := range s.UniProt {
		if a == nil {
			continue
		}
		for _, m := range a.Mappings {
			if m == nil || m.PDBStart == nil || m.PDBEnd == nil {
				continue
			}
			out = append(out, MappingRange{
				UniProtID:    acc,
				EntityID:     m.EntityID,
				ChainID:      m.ChainID,
				PDBStart:     m.PDBStart.ResidueNumber,
				PDBEnd:       m.PDBEnd.ResidueNumber,
				UniProtStart: m.UnpStart,
				UniProtEnd:   m.UnpEnd,
			})
		}
	}
	return out
}
