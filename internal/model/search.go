package model

// Document is a single Solr result row. Field sets vary with the fl parameter.
type Document map[string]any

// SearchResponse is the body of search/pdb/select.
type SearchResponse struct {
	Response struct {
		NumFound int        `json:"numFound"`
		Start    int        `json:"start"`
		Docs     []Document `json:"docs"`
	} `json:"response"`
	XJoinFasta *XJoinFasta `json:"xjoin_fasta,omitempty"`
}

// XJoinFasta carries the external FASTA join of a sequence search.
type XJoinFasta struct {
	External []FastaRow `json:"external"`
}

// FastaRow is one alignment of the sequence search.
type FastaRow struct {
	JoinID               string   `json:"joinId"`
	ReturnSequenceString string   `json:"return_sequence_string"`
	Doc                  FastaDoc `json:"doc"`
}

// FastaDoc identifies the aligned chain and scores the alignment.
type FastaDoc struct {
	PDBIDChain      string  `json:"pdb_id_chain"`
	EValue          float64 `json:"e_value"`
	PercentIdentity float64 `json:"percent_identity"`
}

// SequenceHit is a search document joined with the FASTA alignment of one of its chains.
type SequenceHit struct {
	Document        Document `json:"document"`
	PDBID           string   `json:"pdb_id"`
	ChainID         string   `json:"chain_id"`
	EValue          float64  `json:"e_value"`
	PercentIdentity float64  `json:"percentage_identity"`
	ResultSequence  string   `json:"result_sequence"`
}
