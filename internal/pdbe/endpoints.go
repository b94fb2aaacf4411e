package pdbe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fakhrymubarak/pdbe-client/internal/model"
)

const (
	summaryPath            = "api/pdb/entry/summary/"
	publicationsPath       = "api/pdb/entry/related_publications/"
	secondaryStructurePath = "api/pdb/entry/secondary_structure/"
	outliersPath           = "api/validation/protein-ramachandran-sidechain-outliers/entry/"
	uniprotMappingsPath    = "api/mappings/uniprot/"
	searchPath             = "search/pdb/select"
	ligandSitesPath        = "graph-api/uniprot/ligand_sites/"
	interfaceResiduesPath  = "graph-api/uniprot/interface_residues/"
)

// API is the set of PDBe calls the rest of the module relies on.
type API interface {
	EntrySummary(ctx context.Context, pdbID string) (*model.EntrySummary, error)
	EntrySummaries(ctx context.Context, pdbIDs []string) (map[string]*model.EntrySummary, error)
	RelatedPublications(ctx context.Context, pdbIDs []string) (map[string]model.RelatedPublications, error)
	Outliers(ctx context.Context, pdbID string) (*model.EntryOutliers, error)
	UniProtMappings(ctx context.Context, pdbID string) (*model.SIFTS, error)
	SecondaryStructure(ctx context.Context, pdbIDs ...string) (map[string]model.SecondaryStructureEntry, error)
	Search(ctx context.Context, req SearchRequest) (*model.SearchResponse, error)
	SearchPost(ctx context.Context, params url.Values, rows int) (*model.SearchResponse, error)
	LigandSites(ctx context.Context, accession string) (*model.GraphAccession, error)
	InterfaceResidues(ctx context.Context, accession string) (*model.GraphAccession, error)
}

var _ API = (*Client)(nil)

func noDataFor(what, id string) error {
	return fmt.Errorf("%w: %s for %s", ErrNoData, what, id)
}

// EntrySummary fetches the summary of one entry.
func (c *Client) EntrySummary(ctx context.Context, pdbID string) (*model.EntrySummary, error) {
	id, err := NormalizeID(pdbID)
	if err != nil {
		c.logger.Warnw("Invalid PDB id", "pdb_id", pdbID)
		return nil, err
	}

	var resp model.SummaryResponse
	if err := c.do(ctx, request{endpoint: "summary", method: http.MethodGet, path: summaryPath + id}, &resp); err != nil {
		return nil, err
	}
	entries := resp[id]
	if len(entries) == 0 {
		return nil, noDataFor("summary", id)
	}
	return &entries[0], nil
}

// EntrySummaries fetches several summaries concurrently. Entries that fail are
// left out of the map; their errors are joined into the returned error.
func (c *Client) EntrySummaries(ctx context.Context, pdbIDs []string) (map[string]*model.EntrySummary, error) {
	ids, rejected := UniqueValidIDs(pdbIDs)
	var errs []error
	for _, r := range rejected {
		c.logger.Warnw("Invalid PDB id", "pdb_id", r)
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPDBID, r))
	}

	var mu sync.Mutex
	out := make(map[string]*model.EntrySummary, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			s, err := c.EntrySummary(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
				return nil
			}
			out[id] = s
			return nil
		})
	}
	_ = g.Wait()
	return out, errors.Join(errs...)
}

// RelatedPublications posts a comma-separated id list and returns the
// publications related to each entry.
func (c *Client) RelatedPublications(ctx context.Context, pdbIDs []string) (map[string]model.RelatedPublications, error) {
	body, err := joinIDs(pdbIDs)
	if err != nil {
		return nil, err
	}
	var resp map[string]model.RelatedPublications
	req := request{endpoint: "related_publications", method: http.MethodPost, path: publicationsPath, body: body, contentType: "text/plain"}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, noDataFor("related publications", body)
	}
	return resp, nil
}

// Outliers fetches the Ramachandran and side-chain outliers of an entry.
func (c *Client) Outliers(ctx context.Context, pdbID string) (*model.EntryOutliers, error) {
	id, err := NormalizeID(pdbID)
	if err != nil {
		c.logger.Warnw("Invalid PDB id", "pdb_id", pdbID)
		return nil, err
	}
	var resp map[string]model.EntryOutliers
	if err := c.do(ctx, request{endpoint: "outliers", method: http.MethodGet, path: outliersPath + id}, &resp); err != nil {
		return nil, err
	}
	entry, ok := resp[id]
	if !ok {
		return nil, noDataFor("outliers", id)
	}
	return &entry, nil
}

// UniProtMappings fetches the SIFTS UniProt mapping of an entry.
func (c *Client) UniProtMappings(ctx context.Context, pdbID string) (*model.SIFTS, error) {
	id, err := NormalizeID(pdbID)
	if err != nil {
		c.logger.Warnw("Invalid PDB id", "pdb_id", pdbID)
		return nil, err
	}
	var resp map[string]*model.SIFTS
	if err := c.do(ctx, request{endpoint: "uniprot_mappings", method: http.MethodGet, path: uniprotMappingsPath + id}, &resp); err != nil {
		return nil, err
	}
	sifts := resp[id]
	if sifts == nil || len(sifts.UniProt) == 0 {
		return nil, noDataFor("UniProt mappings", id)
	}
	return sifts, nil
}

// SecondaryStructure uses GET for a single entry and POST for several.
func (c *Client) SecondaryStructure(ctx context.Context, pdbIDs ...string) (map[string]model.SecondaryStructureEntry, error) {
	var req request
	switch len(pdbIDs) {
	case 0:
		return nil, ErrNoIDs
	case 1:
		id, err := NormalizeID(pdbIDs[0])
		if err != nil {
			c.logger.Warnw("Invalid PDB id", "pdb_id", pdbIDs[0])
			return nil, err
		}
		req = request{endpoint: "secondary_structure", method: http.MethodGet, path: secondaryStructurePath + id}
	default:
		body, err := joinIDs(pdbIDs)
		if err != nil {
			return nil, err
		}
		req = request{endpoint: "secondary_structure", method: http.MethodPost, path: secondaryStructurePath, body: body, contentType: "text/plain"}
	}

	var resp map[string]model.SecondaryStructureEntry
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, noDataFor("secondary structure", strings.Join(pdbIDs, ","))
	}
	return resp, nil
}

// Search runs a GET query against the Solr select endpoint.
func (c *Client) Search(ctx context.Context, sr SearchRequest) (*model.SearchResponse, error) {
	v := sr.Values()
	if v.Get("q") == "" {
		return nil, ErrEmptyQuery
	}
	var resp model.SearchResponse
	if err := c.do(ctx, request{endpoint: "search", method: http.MethodGet, path: searchPath, query: v}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchPost posts form parameters to the select endpoint. rows and wt are
// filled in unless params already carries them.
func (c *Client) SearchPost(ctx context.Context, params url.Values, rows int) (*model.SearchResponse, error) {
	form := url.Values{}
	for k, vs := range params {
		form[k] = append([]string(nil), vs...)
	}
	if form.Get("rows") == "" {
		if rows <= 0 {
			rows = DefaultRows
		}
		form.Set("rows", strconv.Itoa(rows))
	}
	form.Set("wt", "json")

	var resp model.SearchResponse
	req := request{
		endpoint:    "search",
		method:      http.MethodPost,
		path:        searchPath,
		body:        form.Encode(),
		contentType: "application/x-www-form-urlencoded",
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LigandSites fetches the ligand binding residues of a UniProt accession.
func (c *Client) LigandSites(ctx context.Context, accession string) (*model.GraphAccession, error) {
	return c.graphAccession(ctx, "ligand_sites", ligandSitesPath, accession)
}

// InterfaceResidues fetches the macromolecular interface residues of a UniProt accession.
func (c *Client) InterfaceResidues(ctx context.Context, accession string) (*model.GraphAccession, error) {
	return c.graphAccession(ctx, "interface_residues", interfaceResiduesPath, accession)
}

func (c *Client) graphAccession(ctx context.Context, endpoint, path, accession string) (*model.GraphAccession, error) {
	acc, err := NormalizeAccession(accession)
	if err != nil {
		c.logger.Warnw("Invalid UniProt accession", "accession", accession)
		return nil, err
	}
	var resp map[string]model.GraphAccession
	if err := c.do(ctx, request{endpoint: endpoint, method: http.MethodGet, path: path + acc}, &resp); err != nil {
		return nil, err
	}
	data, ok := resp[acc]
	if !ok {
		return nil, noDataFor(endpoint, acc)
	}
	return &data, nil
}

// joinIDs validates every id and joins them the way the POST endpoints expect.
func joinIDs(pdbIDs []string) (string, error) {
	if len(pdbIDs) == 0 {
		return "", ErrNoIDs
	}
	ids := make([]string, 0, len(pdbIDs))
	for _, raw := range pdbIDs {
		id, err := NormalizeID(raw)
		if err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	return strings.Join(ids, ", "), nil
}
