package model

// Publication is a single citing or cited article.
type Publication struct {
	Title        string `json:"title"`
	Journal      string `json:"journal"`
	CitationType string `json:"citation_type"`
	Year         any    `json:"year"`
	Volume       any    `json:"volume"`
	PubmedID     any    `json:"pubmed_id"`
	Authors      any    `json:"authors"`
	CitedByCount int    `json:"cited_by_count"`
	Pages        any    `json:"pages"`
}

// PublicationGroup splits publications into reviews and articles.
type PublicationGroup struct {
	Reviews  []Publication `json:"Reviews"`
	Articles []Publication `json:"Articles"`
}

// RelatedPublications is the per-entry payload of api/pdb/entry/related_publications.
type RelatedPublications struct {
	CitedBy                PublicationGroup `json:"cited_by"`
	AppearsWithoutCitation PublicationGroup `json:"appears_without_citation"`
	UniProtPublications    PublicationGroup `json:"uniprot_publications"`
}

// CitationCount is the number of reviews and articles citing an entry.
type CitationCount struct {
	Reviews  int `json:"reviews"`
	Articles int `json:"articles"`
}
