package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/middleware"
	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
	"github.com/fakhrymubarak/pdbe-client/internal/service"
)

const maxRows = 1000

type PDBeHandler struct {
	Service service.PDBeServiceInterface
	Logger  *zap.SugaredLogger
}

func NewPDBeHandler(svc ...service.PDBeServiceInterface) *PDBeHandler {
	var pdbeService service.PDBeServiceInterface
	if len(svc) > 0 && svc[0] != nil {
		pdbeService = svc[0]
	} else {
		pdbeService = service.NewPDBeService()
	}
	return &PDBeHandler{
		Service: pdbeService,
		Logger:  config.GetLogger(),
	}
}

// Register adds the lookup routes to mux.
func (h *PDBeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /entries/{id}/summary", h.HandleSummary)
	mux.HandleFunc("GET /entries/{id}/outliers", h.HandleOutliers)
	mux.HandleFunc("GET /entries/{id}/mappings", h.HandleMappings)
	mux.HandleFunc("GET /entries/{id}/mappings/{chain}/{residue}", h.HandleMapResidue)
	mux.HandleFunc("GET /entries/{id}/secondary-structure", h.HandleSecondaryStructure)
	mux.HandleFunc("GET /citations", h.HandleCitations)
	mux.HandleFunc("GET /search", h.HandleSearch)
	mux.HandleFunc("GET /uniprot/{accession}/ligand-sites", h.HandleLigandSites)
	mux.HandleFunc("GET /uniprot/{accession}/interface-residues", h.HandleInterfaceResidues)
}

// WriteJSON writes data as the response body, stamped with the request id.
func (h *PDBeHandler) WriteJSON(w http.ResponseWriter, statusCode int, data model.Response) {
	data.RequestID = w.Header().Get(middleware.RequestIDHeader)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Errorw("could not encode json", "error", err)
	}
}

func (h *PDBeHandler) writeError(w http.ResponseWriter, statusCode int, errMsg string) {
	h.WriteJSON(w, statusCode, model.Response{
		Error:   &errMsg,
		Message: "Error",
	})
}

func (h *PDBeHandler) writeData(w http.ResponseWriter, data any) {
	h.WriteJSON(w, http.StatusOK, model.Response{
		Data:    data,
		Message: "Success",
	})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pdbe.ErrInvalidPDBID),
		errors.Is(err, pdbe.ErrInvalidAccession),
		errors.Is(err, pdbe.ErrNoIDs),
		errors.Is(err, pdbe.ErrEmptyQuery),
		errors.Is(err, service.ErrNoValidIDs):
		return http.StatusBadRequest
	case service.IsNoData(err),
		errors.Is(err, service.ErrResidueNotMapped):
		return http.StatusNotFound
	case errors.Is(err, pdbe.ErrExternalAPI):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *PDBeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.Logger.Errorw("Lookup failed", "path", r.URL.Path, "error", err)
		if status == http.StatusBadGateway {
			msg = "Failed to fetch data from PDBe"
		} else {
			msg = "Internal server error"
		}
	}
	h.writeError(w, status, msg)
}

func (h *PDBeHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, map[string]string{"pdb_id": strings.ToLower(r.PathValue("id")), "summary": summary})
}

// HandleOutliers returns per-model counts, or the residues of one model when
// the model query parameter is set.
func (h *PDBeHandler) HandleOutliers(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if m := r.URL.Query().Get("model"); m != "" {
		modelID, err := strconv.Atoi(m)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid 'model' query parameter")
			return
		}
		residues, err := h.Service.OutlierResidues(r.Context(), id, modelID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.writeData(w, residues)
		return
	}

	tally, err := h.Service.OutlierCounts(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, tally)
}

func (h *PDBeHandler) HandleMappings(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.Service.MappingRanges(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, ranges)
}

func (h *PDBeHandler) HandleMapResidue(w http.ResponseWriter, r *http.Request) {
	residue, err := strconv.Atoi(r.PathValue("residue"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Residue number must be an integer")
		return
	}
	chain := r.PathValue("chain")
	pos, err := h.Service.MapResidue(r.Context(), r.PathValue("id"), chain, residue)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, map[string]any{"chain_id": chain, "residue_number": residue, "uniprot_position": pos})
}

func (h *PDBeHandler) HandleSecondaryStructure(w http.ResponseWriter, r *http.Request) {
	chains, err := h.Service.SecondaryStructureRanges(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, chains)
}

func (h *PDBeHandler) HandleCitations(w http.ResponseWriter, r *http.Request) {
	ids := splitList(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		h.writeError(w, http.StatusBadRequest, "Missing 'ids' query parameter")
		return
	}
	counts, err := h.Service.CitationCounts(r.Context(), ids)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, counts)
}

func (h *PDBeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("q") == "" {
		h.writeError(w, http.StatusBadRequest, "Missing 'q' query parameter")
		return
	}
	rows := pdbe.DefaultRows
	if s := q.Get("rows"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxRows {
			h.writeError(w, http.StatusBadRequest, "Invalid 'rows' query parameter")
			return
		}
		rows = n
	}
	docs, err := h.Service.Search(r.Context(), pdbe.SearchRequest{
		Query:  q.Get("q"),
		Fields: splitList(q.Get("fl")),
		Rows:   rows,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, docs)
}

func (h *PDBeHandler) HandleLigandSites(w http.ResponseWriter, r *http.Request) {
	residues, err := h.Service.LigandSiteResidues(r.Context(), r.PathValue("accession"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, residues)
}

func (h *PDBeHandler) HandleInterfaceResidues(w http.ResponseWriter, r *http.Request) {
	residues, err := h.Service.InterfaceResidues(r.Context(), r.PathValue("accession"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeData(w, residues)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
