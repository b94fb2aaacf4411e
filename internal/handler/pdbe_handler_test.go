package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/pdbe-client/internal/middleware"
	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
	"github.com/fakhrymubarak/pdbe-client/internal/service"
	"github.com/fakhrymubarak/pdbe-client/internal/service/mocks"
)

func newTestServer(svc *mocks.MockPDBeService) http.Handler {
	h := &PDBeHandler{Service: svc, Logger: zap.NewNop().Sugar()}
	mux := http.NewServeMux()
	h.Register(mux)
	return middleware.RequestID(mux)
}

func do(t *testing.T, srv http.Handler, target string) (*httptest.ResponseRecorder, model.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var resp model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestNewPDBeHandler(t *testing.T) {
	h := NewPDBeHandler()
	require.NotNil(t, h)
	assert.NotNil(t, h.Service)
	assert.NotNil(t, h.Logger)
}

func TestPDBeHandler_HandleSummary(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setup          func(m *mocks.MockPDBeService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success",
			id:   "1cbs",
			setup: func(m *mocks.MockPDBeService) {
				m.On("Summary", mock.Anything, "1cbs").Return("Entry is titled \"X\"", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid id",
			id:   "whatever",
			setup: func(m *mocks.MockPDBeService) {
				m.On("Summary", mock.Anything, "whatever").Return("", fmt.Errorf("%w: %q", pdbe.ErrInvalidPDBID, "whatever"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid PDB id",
		},
		{
			name: "no data",
			id:   "9zzz",
			setup: func(m *mocks.MockPDBeService) {
				m.On("Summary", mock.Anything, "9zzz").Return("", &pdbe.StatusError{StatusCode: 404, Body: "{}"})
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "No data retrieved - 404",
		},
		{
			name: "upstream down",
			id:   "1cbs",
			setup: func(m *mocks.MockPDBeService) {
				m.On("Summary", mock.Anything, "1cbs").Return("", fmt.Errorf("%w: dial tcp", pdbe.ErrExternalAPI))
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "Failed to fetch data from PDBe",
		},
		{
			name: "unexpected",
			id:   "1cbs",
			setup: func(m *mocks.MockPDBeService) {
				m.On("Summary", mock.Anything, "1cbs").Return("", errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockPDBeService)
			tt.setup(svc)

			w, resp := do(t, newTestServer(svc), "/entries/"+tt.id+"/summary")
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, resp.RequestID)
			if tt.expectedError == "" {
				assert.Nil(t, resp.Error)
				assert.Equal(t, "Success", resp.Message)
				data := resp.Data.(map[string]any)
				assert.Equal(t, "1cbs", data["pdb_id"])
			} else {
				require.NotNil(t, resp.Error)
				assert.Contains(t, *resp.Error, tt.expectedError)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPDBeHandler_HandleOutliers(t *testing.T) {
	svc := new(mocks.MockPDBeService)
	svc.On("OutlierCounts", mock.Anything, "2aqa").
		Return(&service.OutlierTally{Ramachandran: map[int]int{1: 3}, Sidechain: map[int]int{}}, nil)
	svc.On("OutlierResidues", mock.Anything, "2aqa", 1).
		Return([]model.LabelledOutlier{{OutlierResidue: model.OutlierResidue{ResidueNumber: 7}, Label: "Ramachandran"}}, nil)
	srv := newTestServer(svc)

	w, resp := do(t, srv, "/entries/2aqa/outliers")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"1": 3.0}, resp.Data.(map[string]any)["ramachandran_outliers"])

	w, resp = do(t, srv, "/entries/2aqa/outliers?model=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	w, _ = do(t, srv, "/entries/2aqa/outliers?model=one")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPDBeHandler_HandleMapResidue(t *testing.T) {
	svc := new(mocks.MockPDBeService)
	svc.On("MapResidue", mock.Anything, "1cbs", "A", 3).Return(4, nil)
	svc.On("MapResidue", mock.Anything, "1cbs", "A", 500).Return(0, service.ErrResidueNotMapped)
	srv := newTestServer(svc)

	w, resp := do(t, srv, "/entries/1cbs/mappings/A/3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.0, resp.Data.(map[string]any)["uniprot_position"])

	w, _ = do(t, srv, "/entries/1cbs/mappings/A/500")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, srv, "/entries/1cbs/mappings/A/x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPDBeHandler_HandleMappingsAndStructure(t *testing.T) {
	svc := new(mocks.MockPDBeService)
	svc.On("MappingRanges", mock.Anything, "1cbs").Return([]model.MappingRange{{UniProtID: "P29373", ChainID: "A"}}, nil)
	svc.On("SecondaryStructureRanges", mock.Anything, []string{"1cbs"}).
		Return([]model.ChainSecondaryStructure{{EntryID: "1cbs", ChainID: "A", Helices: []string{"14-22"}}}, nil)
	srv := newTestServer(svc)

	w, resp := do(t, srv, "/entries/1cbs/mappings")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	w, resp = do(t, srv, "/entries/1cbs/secondary-structure")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)
}

func TestPDBeHandler_HandleCitations(t *testing.T) {
	svc := new(mocks.MockPDBeService)
	svc.On("CitationCounts", mock.Anything, []string{"1cbs", "3bow"}).
		Return(map[string]model.CitationCount{"1cbs": {Reviews: 1, Articles: 2}}, nil)
	svc.On("CitationCounts", mock.Anything, []string{"whatever"}).Return(nil, service.ErrNoValidIDs)
	srv := newTestServer(svc)

	w, resp := do(t, srv, "/citations?ids=1cbs,%203bow")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp.Data, "1cbs")

	w, _ = do(t, srv, "/citations?ids=whatever")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = do(t, srv, "/citations")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing 'ids' query parameter", *resp.Error)
}

func TestPDBeHandler_HandleSearch(t *testing.T) {
	svc := new(mocks.MockPDBeService)
	svc.On("Search", mock.Anything, pdbe.SearchRequest{Query: "pdb_id:1cbs", Fields: []string{"pdb_id", "title"}, Rows: 5}).
		Return([]model.Document{{"pdb_id": "1cbs"}}, nil)
	srv := newTestServer(svc)

	w, resp := do(t, srv, "/search?q=pdb_id:1cbs&fl=pdb_id,title&rows=5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	for _, target := range []string{"/search", "/search?q=x&rows=0", "/search?q=x&rows=abc", "/search?q=x&rows=100000"} {
		w, _ = do(t, srv, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestPDBeHandler_GraphRoutes(t *testing.T) {
	svc := new(mocks.MockPDBeService)
	svc.On("LigandSiteResidues", mock.Anything, "P29373").
		Return([]model.LigandSiteResidue{{LigandAccession: "REA", InteractionRatio: 0.5}}, nil)
	svc.On("InterfaceResidues", mock.Anything, "P29373").Return([]model.InterfaceResidue{}, nil)
	svc.On("InterfaceResidues", mock.Anything, "bad!").Return(nil, pdbe.ErrInvalidAccession)
	srv := newTestServer(svc)

	w, resp := do(t, srv, "/uniprot/P29373/ligand-sites")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	w, _ = do(t, srv, "/uniprot/P29373/interface-residues")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, srv, "/uniprot/bad!/interface-residues")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(pdbe.ErrNoIDs))
	assert.Equal(t, http.StatusBadRequest, statusFor(pdbe.ErrEmptyQuery))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("x: %w", pdbe.ErrNoData)))
	assert.Equal(t, http.StatusBadGateway, statusFor(pdbe.ErrExternalAPI))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("other")))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"1cbs", "3bow"}, splitList(" 1cbs, ,3bow,"))
	assert.Nil(t, splitList(""))
}
