package service

import (
	"fmt"
	"strings"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
)

type fastaHit struct {
	eValue          float64
	percentIdentity float64
	sequence        string
}

// JoinSequenceHits pairs each search document with the FASTA alignment of its
// chains. Alignments are keyed by "<pdb_id>_<chain_id>"; a document yields one
// hit per chain that has an alignment.
func JoinSequenceHits(resp *model.SearchResponse) []model.SequenceHit {
	alignments := map[string]fastaHit{}
	if resp.XJoinFasta != nil {
		for _, row := range resp.XJoinFasta.External {
			parts := strings.Split(row.Doc.PDBIDChain, "_")
			if len(parts) < 2 {
				continue
			}
			key := strings.ToLower(parts[0]) + "_" + parts[len(parts)-1]
			alignments[key] = fastaHit{
				eValue:          row.Doc.EValue,
				percentIdentity: row.Doc.PercentIdentity,
				sequence:        row.ReturnSequenceString,
			}
		}
	}

	var hits []model.SequenceHit
	for _, doc := range resp.Response.Docs {
		pdbID := strings.ToLower(fmt.Sprint(doc["pdb_id"]))
		for _, chain := range stringList(doc["chain_id"]) {
			a, ok := alignments[pdbID+"_"+chain]
			if !ok {
				continue
			}
			hits = append(hits, model.SequenceHit{
				Document:        doc,
				PDBID:           pdbID,
				ChainID:         chain,
				EValue:          a.eValue,
				PercentIdentity: a.percentIdentity,
				ResultSequence:  a.sequence,
			})
		}
	}
	return hits
}

// stringList reads a Solr field that may be a single value or a list.
func stringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			out = append(out, fmt.Sprint(x))
		}
		return out
	case []string:
		return t
	default:
		return []string{fmt.Sprint(t)}
	}
}
