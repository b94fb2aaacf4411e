package integrationtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/metrics"
	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
	"github.com/fakhrymubarak/pdbe-client/internal/redis"
	"github.com/fakhrymubarak/pdbe-client/internal/server"
	"github.com/fakhrymubarak/pdbe-client/internal/service"
)

type PDBeAPITestSuite struct {
	suite.Suite
	httpServer *httptest.Server
	upstream   *mockPDBe
	miniRedis  *miniredis.Miniredis
	registry   *prometheus.Registry
}

func (suite *PDBeAPITestSuite) SetupSuite() {
	suite.miniRedis = miniredis.RunT(suite.T())
	suite.upstream = newMockPDBe()

	viper.Set("redis.addr", suite.miniRedis.Addr())
	viper.Set("pdbe.base_url", suite.upstream.URL)
	config.ReloadConfigForTest()
	redis.ResetClientForTest()

	logger := zap.NewNop().Sugar()
	suite.registry = prometheus.NewRegistry()
	m, err := metrics.New(suite.registry)
	suite.Require().NoError(err)

	client := pdbe.NewClient(
		pdbe.WithLogger(logger),
		pdbe.WithMetrics(m),
		pdbe.WithCache(redis.NewResponseCache(nil, time.Minute)),
	)
	suite.Require().Equal(suite.upstream.URL+"/", client.BaseURL())

	suite.httpServer = httptest.NewServer(server.NewHandler(server.Options{
		Service:  &service.PDBeService{API: client, Logger: logger},
		Metrics:  m,
		Gatherer: suite.registry,
		Logger:   logger,
	}))
}

func (suite *PDBeAPITestSuite) TearDownSuite() {
	if suite.httpServer != nil {
		suite.httpServer.Close()
	}
	if suite.upstream != nil {
		suite.upstream.Close()
	}
	redis.ResetClientForTest()
}

func (suite *PDBeAPITestSuite) SetupTest() {
	suite.miniRedis.FlushAll()
}

func TestPDBeAPITestSuite(t *testing.T) {
	suite.Run(t, new(PDBeAPITestSuite))
}

func (suite *PDBeAPITestSuite) get(path string) (int, model.Response) {
	resp, err := http.Get(suite.httpServer.URL + path)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	var body model.Response
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func (suite *PDBeAPITestSuite) TestEndpoints() {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		validate   func(t *testing.T, body model.Response)
	}{
		{
			name:       "Success - summary",
			path:       "/entries/1CBS/summary",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body model.Response) {
				data := body.Data.(map[string]any)
				assert.Equal(t, "1cbs", data["pdb_id"])
				assert.Contains(t, data["summary"], "released on 1995/01/26")
				assert.NotEmpty(t, body.RequestID)
			},
		},
		{
			name:       "Failed - invalid PDB id",
			path:       "/entries/whatever/summary",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body model.Response) {
				assert.Contains(t, *body.Error, "invalid PDB id")
			},
		},
		{
			name:       "Failed - unknown entry",
			path:       "/entries/9zzz/summary",
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, body model.Response) {
				assert.Contains(t, *body.Error, "No data retrieved - 404")
			},
		},
		{
			name:       "Failed - upstream error",
			path:       "/entries/5dwn/summary",
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, body model.Response) {
				assert.Contains(t, *body.Error, "No data retrieved - 500")
			},
		},
		{
			name:       "Success - residue mapping",
			path:       "/entries/1cbs/mappings/A/3",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body model.Response) {
				assert.Equal(t, 4.0, body.Data.(map[string]any)["uniprot_position"])
			},
		},
		{
			name:       "Failed - residue outside mapping",
			path:       "/entries/1cbs/mappings/A/200",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Success - citations skip invalid ids",
			path:       "/citations?ids=1cbs,whatever,3bow,1CBS",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body model.Response) {
				data := body.Data.(map[string]any)
				assert.Equal(t, map[string]any{"reviews": 1.0, "articles": 2.0}, data["1cbs"])
				assert.Equal(t, map[string]any{"reviews": 0.0, "articles": 1.0}, data["3bow"])
			},
		},
		{
			name:       "Success - ligand sites",
			path:       "/uniprot/P29373/ligand-sites",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body model.Response) {
				rows := body.Data.([]any)
				assert.Len(t, rows, 1)
				assert.Equal(t, 0.5, rows[0].(map[string]any)["interaction_ratio"])
			},
		},
		{
			name:       "Success - ligand sites with lower-case accession",
			path:       "/uniprot/p29373/ligand-sites",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body model.Response) {
				rows := body.Data.([]any)
				assert.Len(t, rows, 1)
				assert.Equal(t, "P29373", rows[0].(map[string]any)["uniprot_accession"])
			},
		},
		{
			name:       "Failed - search without query",
			path:       "/search",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			status, body := suite.get(tt.path)
			assert.Equal(t, tt.wantStatus, status)
			if tt.validate != nil {
				tt.validate(t, body)
			}
		})
	}
}

func (suite *PDBeAPITestSuite) TestSummaryIsCached() {
	before := suite.upstream.hits.Load()

	status, _ := suite.get("/entries/1cbs/summary")
	suite.Equal(http.StatusOK, status)
	suite.Equal(before+1, suite.upstream.hits.Load())
	suite.Len(suite.miniRedis.Keys(), 1)

	status, body := suite.get("/entries/1cbs/summary")
	suite.Equal(http.StatusOK, status)
	suite.Contains(body.Data.(map[string]any)["summary"], "X-ray diffraction")
	suite.Equal(before+1, suite.upstream.hits.Load(), "second lookup should be served from redis")

	ttl := suite.miniRedis.TTL(suite.miniRedis.Keys()[0])
	suite.Equal(time.Minute, ttl)

	suite.miniRedis.FastForward(2 * time.Minute)
	suite.get("/entries/1cbs/summary")
	suite.Equal(before+2, suite.upstream.hits.Load())
}

func (suite *PDBeAPITestSuite) TestFailuresAreNotCached() {
	suite.get("/entries/9zzz/summary")
	suite.Empty(suite.miniRedis.Keys())
}

func (suite *PDBeAPITestSuite) TestMetricsEndpoint() {
	suite.get("/entries/1cbs/summary")

	resp, err := http.Get(suite.httpServer.URL + "/metrics")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)

	families, err := suite.registry.Gather()
	suite.Require().NoError(err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	suite.True(names["http_requests_total"])
	suite.True(names["pdbe_upstream_requests_total"])
	suite.True(names["pdbe_cache_lookups_total"])
}

func (suite *PDBeAPITestSuite) TestRedisReachable() {
	suite.NoError(redis.Ping(context.Background()))
}
