package pdbe

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DefaultRows is the number of search rows requested when none is given.
const DefaultRows = 10

// SearchTerm is one field:value clause of a Solr query.
type SearchTerm struct {
	Field string
	Value string
}

// TermsFromMap orders a field->value map by field name.
func TermsFromMap(m map[string]string) []SearchTerm {
	terms := make([]SearchTerm, 0, len(m))
	for k, v := range m {
		terms = append(terms, SearchTerm{Field: k, Value: v})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Field < terms[j].Field })
	return terms
}

// QuoteValue wraps values containing spaces in quotes so Solr reads them as a
// phrase. Range expressions ("[1 TO 5]") are left alone, as are values that
// already contain both quote characters.
func QuoteValue(value string) string {
	if !strings.Contains(value, " ") || strings.Contains(value, "[") {
		return value
	}
	switch {
	case !strings.Contains(value, `"`):
		return `"` + value + `"`
	case !strings.Contains(value, "'"):
		return "'" + value + "'"
	}
	return value
}

// FormatQuery joins terms into a Solr q string: field:value AND field:value.
func FormatQuery(terms []SearchTerm) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.Field+":"+QuoteValue(t.Value))
	}
	return strings.Join(parts, " AND ")
}

// SearchRequest describes a GET search. Query, when set, is used verbatim
// instead of Terms.
type SearchRequest struct {
	Terms  []SearchTerm
	Query  string
	Fields []string
	Rows   int
}

// Values encodes the request as select parameters.
func (r SearchRequest) Values() url.Values {
	q := r.Query
	if q == "" {
		q = FormatQuery(r.Terms)
	}
	rows := r.Rows
	if rows <= 0 {
		rows = DefaultRows
	}
	v := url.Values{}
	v.Set("q", q)
	if len(r.Fields) > 0 {
		v.Set("fl", strings.Join(r.Fields, ","))
	}
	v.Set("wt", "json")
	v.Set("rows", strconv.Itoa(rows))
	return v
}

// sequenceJoinFields are always returned by a sequence search so hits can be
// joined with their FASTA alignment.
var sequenceJoinFields = []string{"pdb_id", "entity_id", "entry_entity", "chain_id"}

// SequenceSearchParams builds the POST parameters of an xjoin_fasta sequence search.
func SequenceSearchParams(sequence string, fields []string) url.Values {
	v := url.Values{}
	v.Set("json.nl", "map")
	v.Set("start", "0")
	v.Set("sort", "fasta(e_value) asc")
	v.Set("xjoin_fasta", "true")
	v.Set("bf", "fasta(percentIdentity)")
	v.Set("xjoin_fasta.external.expupperlim", "0.1")
	v.Set("xjoin_fasta.external.sequence", sequence)
	v.Set("q", "*:*")
	v.Set("fq", "{!xjoin}xjoin_fasta")
	if len(fields) > 0 {
		set := make(map[string]struct{})
		for _, f := range append(append([]string{}, fields...), sequenceJoinFields...) {
			set[f] = struct{}{}
		}
		fl := make([]string, 0, len(set))
		for f := range set {
			fl = append(fl, f)
		}
		sort.Strings(fl)
		v.Set("fl", strings.Join(fl, ","))
	}
	return v
}
