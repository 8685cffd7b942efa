package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/config"
	"github.com/fwpboutique/crystalshop/internal/domain"
)

func submittedRecord() *domain.CustomerRecord {
	return &domain.CustomerRecord{
		ID:           uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000001"),
		Name:         "小晶",
		Gender:       domain.GenderFemale,
		BirthDate:    "1995-04-12",
		BirthTime:    "08:30",
		IsTimeUnsure: true,
		Analysis: &domain.AnalysisDocument{
			Bazi: domain.Bazi{Year: "乙亥", Month: "庚辰", Day: "丙午", Time: "未知"},
		},
		GeneratedImageURL: "data:image/png;base64,iVBORw0KGgo=",
		ShippingDetails: &domain.ShippingDetails{
			RealName:           "王小明",
			Phone:              "0912345678",
			StoreCode:          "123456",
			StoreName:          "信義門市",
			SocialID:           "@crystal",
			WristSize:          "17",
			PurificationBagQty: 2,
			Items: []domain.LineItem{
				{ProductName: "專屬手鍊", Quantity: 1, UnitPrice: 2400},
				{ProductName: "粉晶", Quantity: 2, UnitPrice: 900, CouponCode: "FWP2025", DiscountPerUnit: 100},
			},
			TotalPrice: 4960,
		},
		CreatedAt: time.Date(2025, 3, 1, 4, 5, 6, 0, time.UTC),
	}
}

func TestFlatten(t *testing.T) {
	p := Flatten(submittedRecord())

	assert.Equal(t, "3f2a9c1e-0000-4000-8000-000000000001", p.ID)
	assert.Equal(t, "吉時/未知", p.BirthTime)
	assert.Equal(t, "乙亥/庚辰/丙午/未知", p.Bazi)
	assert.Equal(t, "是 (2個)", p.AddPurificationBag)
	assert.Equal(t, "2025/3/1 12:05:06", p.CreatedAt)
	assert.Equal(t, "iVBORw0KGgo=", p.ImageBase64)
	assert.Equal(t, "【專屬手鍊 x 1】; 【粉晶 x 2】 (券: FWP2025, 折200)", p.Wish)
	assert.Equal(t, p.Wish, p.SuggestedCrystals)
	assert.EqualValues(t, 4960, p.TotalPrice)
}

func TestFlattenWithoutExtras(t *testing.T) {
	rec := submittedRecord()
	rec.Analysis = nil
	rec.IsTimeUnsure = false
	rec.GeneratedImageURL = "https://cdn.example.com/rose.png"
	rec.ShippingDetails.PurificationBagQty = 0

	p := Flatten(rec)

	assert.Equal(t, "N/A", p.Bazi)
	assert.Equal(t, "08:30", p.BirthTime)
	assert.Equal(t, "否", p.AddPurificationBag)
	assert.Empty(t, p.ImageBase64)
}

func TestClientSyncPostsPlainText(t *testing.T) {
	received := make(chan Payload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		var p Payload
		assert.NoError(t, json.Unmarshal(body, &p))
		received <- p
		// the script's reply is ignored, even when it reports an error
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.SheetsConfig{WebhookURL: srv.URL}, zap.NewNop())
	require.NoError(t, client.Sync(context.Background(), submittedRecord()))

	p := <-received
	assert.Equal(t, "王小明", p.RealName)
}

func TestClientDisabledIsNoop(t *testing.T) {
	client := NewClient(config.SheetsConfig{}, zap.NewNop())

	assert.False(t, client.Enabled())
	assert.NoError(t, client.Sync(context.Background(), submittedRecord()))
	assert.Error(t, client.Ping(context.Background()))
}

func TestClientPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"test":true}`, string(body))
		_, _ = w.Write([]byte("Ping OK"))
	}))
	defer srv.Close()

	client := NewClient(config.SheetsConfig{WebhookURL: srv.URL}, zap.NewNop())
	assert.NoError(t, client.Ping(context.Background()))
}

func TestClientSyncTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(config.SheetsConfig{WebhookURL: url}, zap.NewNop())
	assert.Error(t, client.Sync(context.Background(), submittedRecord()))
}
