package model

// OutlierResidue is a residue whose backbone or side-chain geometry fails validation.
type OutlierResidue struct {
	ModelID             int    `json:"model_id"`
	EntityID            int    `json:"entity_id"`
	ResidueNumber       int    `json:"residue_number"`
	AuthorResidueNumber int    `json:"author_residue_number"`
	ChainID             string `json:"chain_id"`
	AuthorInsertionCode string `json:"author_insertion_code"`
	AltCode             string `json:"alt_code"`
	StructAsymID        string `json:"struct_asym_id"`
}

// EntryOutliers is the per-entry payload of the ramachandran/side-chain outlier call.
type EntryOutliers struct {
	RamachandranOutliers []OutlierResidue `json:"ramachandran_outliers"`
	SidechainOutliers    []OutlierResidue `json:"sidechain_outliers"`
}

// LabelledOutlier is an outlier residue tagged with a human readable type.
type LabelledOutlier struct {
	OutlierResidue
	Label string `json:"label"`
}
