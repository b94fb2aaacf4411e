package model

// SecondaryStructureEntry is the per-entry payload of api/pdb/entry/secondary_structure.
type SecondaryStructureEntry struct {
	Molecules []SSMolecule `json:"molecules"`
}

// SSMolecule groups the chains of one entity.
type SSMolecule struct {
	EntityID int       `json:"entity_id"`
	Chains   []SSChain `json:"chains"`
}

// SSChain is the secondary structure of one chain.
type SSChain struct {
	ChainID            string             `json:"chain_id"`
	StructAsymID       string             `json:"struct_asym_id"`
	SecondaryStructure SecondaryStructure `json:"secondary_structure"`
}

type SecondaryStructure struct {
	Helices []SSElement `json:"helices"`
	Strands []SSElement `json:"strands"`
}

// SSElement is a helix or strand bounded by two residues.
type SSElement struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// ChainSecondaryStructure lists helix and strand residue ranges ("start-end") of one chain.
type ChainSecondaryStructure struct {
	EntryID string   `json:"entry_id"`
	ChainID string   `json:"chain_id"`
	Helices []string `json:"helices"`
	Strands []string `json:"strands"`
}
