package model

// EntrySummary is one element of the entry summary call
// (api/pdb/entry/summary/{id}), which is keyed by PDB id.
type EntrySummary struct {
	Title                   string          `json:"title"`
	ReleaseDate             string          `json:"release_date"`
	RevisionDate            string          `json:"revision_date"`
	DepositionDate          string          `json:"deposition_date"`
	DepositionSite          string          `json:"deposition_site"`
	ProcessingSite          string          `json:"processing_site"`
	ExperimentalMethod      []string        `json:"experimental_method"`
	ExperimentalMethodClass []string        `json:"experimental_method_class"`
	EntryAuthors            []string        `json:"entry_authors"`
	RelatedStructures       []any           `json:"related_structures"`
	SplitEntry              []string        `json:"split_entry"`
	NumberOfEntities        map[string]int  `json:"number_of_entities"`
	Assemblies              []EntryAssembly `json:"assemblies"`
}

type EntryAssembly struct {
	AssemblyID string `json:"assembly_id"`
	Form       string `json:"form"`
	Preferred  any    `json:"preferred"`
	Name       string `json:"name"`
}

// SummaryResponse is the raw payload: PDB id -> list of summaries.
type SummaryResponse map[string][]EntrySummary
