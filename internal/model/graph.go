package model

// GraphAccession is the per-accession payload of the graph-api uniprot calls.
type GraphAccession struct {
	Length int         `json:"length"`
	Data   []GraphSite `json:"data"`
}

// GraphSite is a ligand or an interacting macromolecule and the residues it touches.
type GraphSite struct {
	Accession      string          `json:"accession"`
	Name           string          `json:"name"`
	AllPDBEntries  []string        `json:"allPDBEntries"`
	AdditionalData GraphAdditional `json:"additionalData"`
	Residues       []GraphResidue  `json:"residues"`
}

// GraphAdditional holds ligand atom counts or the partner molecule type.
type GraphAdditional struct {
	NumAtoms int    `json:"numAtoms"`
	Type     string `json:"type"`
}

// GraphResidue is a residue range in UniProt numbering and the entries it appears in.
type GraphResidue struct {
	StartIndex            int      `json:"startIndex"`
	EndIndex              int      `json:"endIndex"`
	StartCode             string   `json:"startCode"`
	EndCode               string   `json:"endCode"`
	IndexType             string   `json:"indexType"`
	InteractingPDBEntries []any    `json:"interactingPDBEntries"`
	AllPDBEntries         []string `json:"allPDBEntries"`
}

// LigandSiteResidue is a residue of a UniProt accession that binds a ligand.
type LigandSiteResidue struct {
	UniProtAccession string  `json:"uniprot_accession"`
	LigandAccession  string  `json:"ligand_accession"`
	LigandName       string  `json:"ligand_name"`
	LigandNumAtoms   int     `json:"ligand_num_atoms"`
	StartIndex       int     `json:"start_index"`
	EndIndex         int     `json:"end_index"`
	StartCode        string  `json:"start_code"`
	InteractingCount int     `json:"interacting_count"`
	AllCount         int     `json:"all_count"`
	InteractionRatio float64 `json:"interaction_ratio"`
}

// InterfaceResidue is a residue of a UniProt accession at a macromolecular interface.
type InterfaceResidue struct {
	UniProtAccession         string  `json:"uniprot_accession"`
	Length                   int     `json:"length"`
	InteractionAccession     string  `json:"interaction_accession"`
	InteractionName          string  `json:"interaction_name"`
	InteractionAccessionType string  `json:"interaction_accession_type"`
	StartIndex               int     `json:"start_index"`
	EndIndex                 int     `json:"end_index"`
	StartCode                string  `json:"start_code"`
	InteractingPDBEntries    int     `json:"interacting_pdb_entries"`
	AllPDBEntries            int     `json:"all_pdb_entries"`
	InteractionRatio         float64 `json:"interaction_ratio"`
}
