// Package integrationtest runs the lookup server against a fake PDBe API and
// an in-memory redis.
package integrationtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
)

const (
	summary1cbs = `{"1cbs": [{"title": "CRYSTAL STRUCTURE OF CELLULAR RETINOIC-ACID-BINDING PROTEINS I AND II IN COMPLEX WITH ALL-TRANS-RETINOIC ACID AND A SYNTHETIC RETINOID", "release_date": "19950126", "experimental_method": ["X-ray diffraction"]}]}`

	mappings1cbs = `{"1cbs": {"UniProt": {"P29373": {"identifier": "RABP2_HUMAN", "name": "RABP2_HUMAN", "mappings": [
		{"entity_id": 1, "chain_id": "A", "struct_asym_id": "A", "start": {"residue_number": 1}, "end": {"residue_number": 137}, "unp_start": 2, "unp_end": 138}
	]}}}}`

	publications = `{
		"1cbs": {"cited_by": {"Reviews": [{"title": "r"}], "Articles": [{"title": "a"}, {"title": "b"}]}},
		"3bow": {"cited_by": {"Reviews": [], "Articles": [{"title": "c"}]}}
	}`

	ligandSites = `{"P29373": {"length": 138, "data": [
		{"accession": "REA", "name": "RETINOIC ACID", "additionalData": {"numAtoms": 22},
		 "residues": [{"startIndex": 133, "endIndex": 133, "startCode": "R", "interactingPDBEntries": [{"pdbId": "1cbs"}], "allPDBEntries": ["1cbs", "2fr3"]}]}
	]}}`
)

// mockPDBe is a fake PDBe API. hits counts the requests it served.
type mockPDBe struct {
	*httptest.Server
	hits atomic.Int64
}

func newMockPDBe() *mockPDBe {
	m := &mockPDBe{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/api/pdb/entry/summary/1cbs":
			io.WriteString(w, summary1cbs)
		case r.URL.Path == "/api/mappings/uniprot/1cbs":
			io.WriteString(w, mappings1cbs)
		case r.URL.Path == "/api/pdb/entry/related_publications/" && r.Method == http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), "1cbs") {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{}`)
				return
			}
			io.WriteString(w, publications)
		case r.URL.Path == "/graph-api/uniprot/ligand_sites/P29373":
			io.WriteString(w, ligandSites)
		case r.URL.Path == "/api/pdb/entry/summary/5dwn":
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error": "upstream exploded"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{}`)
		}
	}))
	return m
}
