package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoreTimeZone is Taiwan time. Fixed rather than loaded so the binary needs no tzdata.
var StoreTimeZone = time.FixedZone("CST", 8*60*60)

// Gender of the customer as captured by the analysis form
type Gender string

const (
	GenderMale   Gender = "男"
	GenderFemale Gender = "女"
	GenderOther  Gender = "其他"
)

// WishItem is one wish entered on the analysis form
type WishItem struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CustomerProfile is the input sent to the analysis service
type CustomerProfile struct {
	Name         string     `json:"name"`
	BirthDate    string     `json:"birth_date"` // YYYY-MM-DD
	BirthTime    string     `json:"birth_time"` // HH:mm
	IsTimeUnsure bool       `json:"is_time_unsure"`
	Gender       Gender     `json:"gender"`
	Wishes       []WishItem `json:"wishes"`
}

// FiveElements is the score vector returned by the analysis service
type FiveElements struct {
	Gold  float64 `json:"gold"`
	Wood  float64 `json:"wood"`
	Water float64 `json:"water"`
	Fire  float64 `json:"fire"`
	Earth float64 `json:"earth"`
}

// Bazi holds the four pillars; Time is "unknown" when the birth time is unsure
type Bazi struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Time  string `json:"time"`
}

// AnalysisDocument is the opaque result of the analysis service
type AnalysisDocument struct {
	ZodiacSign        string       `json:"zodiac_sign"`
	Element           string       `json:"element"`
	Bazi              Bazi         `json:"bazi"`
	FiveElements      FiveElements `json:"five_elements"`
	LuckyElement      string       `json:"lucky_element"`
	SuggestedCrystals []string     `json:"suggested_crystals"`
	Reasoning         string       `json:"reasoning"`
	VisualDescription string       `json:"visual_description"`
	ColorPalette      []string     `json:"color_palette"`
}

// LineItem is one cart entry. Money fields are integer currency units.
type LineItem struct {
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	UnitPrice        int64  `json:"unit_price"`
	Quantity         int    `json:"quantity"`
	CouponCode       string `json:"coupon_code,omitempty"`
	DiscountPerUnit  int64  `json:"discount_per_unit"`
	IsCustomAnalysis bool   `json:"is_custom_analysis,omitempty"`
}

// FinancialSummary is derived from a cart and never persisted on its own
type FinancialSummary struct {
	Subtotal       int64 `json:"subtotal"`
	TotalDiscount  int64 `json:"total_discount"`
	TotalQuantity  int   `json:"total_quantity"`
	AddOnTotal     int64 `json:"add_on_total"`
	TotalSurcharge int64 `json:"total_surcharge"`
	ShippingCost   int64 `json:"shipping_cost"`
	GrandTotal     int64 `json:"grand_total"`
}

// ShippingDetails is the snapshot frozen at submission. TotalPrice is authoritative.
type ShippingDetails struct {
	RealName           string     `json:"real_name"`
	Phone              string     `json:"phone"`
	StoreCode          string     `json:"store_code"`
	StoreName          string     `json:"store_name"`
	SocialID           string     `json:"social_id"`
	WristSize          string     `json:"wrist_size"`
	PurificationBagQty int        `json:"purification_bag_qty"`
	PreferredColors    []string   `json:"preferred_colors"`
	Items              []LineItem `json:"items"`
	TotalPrice         int64      `json:"total_price"`
}

// CustomerRecord is the unit kept in the record store
type CustomerRecord struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	BirthDate         string            `json:"birth_date,omitempty"`
	BirthTime         string            `json:"birth_time,omitempty"`
	IsTimeUnsure      bool              `json:"is_time_unsure,omitempty"`
	Gender            Gender            `json:"gender,omitempty"`
	Wishes            []WishItem        `json:"wishes,omitempty"`
	Analysis          *AnalysisDocument `json:"analysis,omitempty"`
	GeneratedImageURL string            `json:"generated_image_url,omitempty"`
	ShippingDetails   *ShippingDetails  `json:"shipping_details,omitempty"`
	IsStandardProduct bool              `json:"is_standard_product"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// HasOrder reports whether shipping details were already attached
func (r *CustomerRecord) HasOrder() bool {
	return r.ShippingDetails != nil
}

// ShortID is the receipt-facing order number
func (r *CustomerRecord) ShortID() string {
	head, _, _ := strings.Cut(r.ID.String(), "-")
	return strings.ToUpper(head)
}

// Receipt is the display view of a submitted order
type Receipt struct {
	OrderID   string           `json:"order_id"`
	OrderTime string           `json:"order_time"`
	RealName  string           `json:"real_name"`
	WristSize string           `json:"wrist_size"`
	StoreName string           `json:"store_name"`
	StoreCode string           `json:"store_code"`
	Items     []LineItem       `json:"items"`
	BagQty    int              `json:"purification_bag_qty"`
	Summary   FinancialSummary `json:"summary"`
	Total     int64            `json:"total_price"`
}
