package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/config"
	"github.com/fwpboutique/crystalshop/internal/domain"
)

func TestAnalyzeDecodesAndRedacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req analyzeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wish", req.Mode)

		_ = json.NewEncoder(w).Encode(domain.AnalysisDocument{
			LuckyElement:      "木",
			SuggestedCrystals: []string{"綠幽靈", "東陵玉"},
			Reasoning:         "綠幽靈能補足木氣",
			FiveElements:      domain.FiveElements{Gold: 20, Wood: 10, Water: 30, Fire: 25, Earth: 15},
		})
	}))
	defer srv.Close()

	client := NewClient(config.AnalysisConfig{Endpoint: srv.URL + "/", APIKey: "secret"}, zap.NewNop())
	doc, err := client.Analyze(context.Background(), domain.CustomerProfile{Name: "小晶", IsTimeUnsure: true})
	require.NoError(t, err)

	assert.Equal(t, "水晶能補足木氣", doc.Reasoning)
	assert.Equal(t, "吉時", doc.Bazi.Time)
	assert.Equal(t, []string{"綠幽靈", "東陵玉"}, doc.SuggestedCrystals)
}

func TestAnalyzeFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(config.AnalysisConfig{Endpoint: srv.URL}, zap.NewNop())
	_, err := client.Analyze(context.Background(), domain.CustomerProfile{BirthTime: "08:00"})
	assert.ErrorIs(t, err, ErrAnalysisFailed)

	_, err = NewClient(config.AnalysisConfig{}, zap.NewNop()).Analyze(context.Background(), domain.CustomerProfile{})
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestMode(t *testing.T) {
	assert.Equal(t, "bazi", Mode(domain.CustomerProfile{BirthTime: "23:10"}))
	assert.Equal(t, "wish", Mode(domain.CustomerProfile{BirthTime: "23:10", IsTimeUnsure: true}))
	assert.Equal(t, "wish", Mode(domain.CustomerProfile{}))
}
