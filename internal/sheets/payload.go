package sheets

import (
	"fmt"
	"strings"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

// Payload is one spreadsheet row. Field names are the keys the Apps Script reads.
type Payload struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Gender             string `json:"gender"`
	BirthDate          string `json:"birthDate"`
	BirthTime          string `json:"birthTime"`
	Wish               string `json:"wish"`
	SuggestedCrystals  string `json:"suggestedCrystals"`
	Bazi               string `json:"bazi"`
	CreatedAt          string `json:"createdAt"`
	RealName           string `json:"realName"`
	Phone              string `json:"phone"`
	StoreCode          string `json:"storeCode"`
	StoreName          string `json:"storeName"`
	SocialID           string `json:"socialId"`
	WristSize          string `json:"wristSize"`
	AddPurificationBag string `json:"addPurificationBag"`
	TotalPrice         int64  `json:"totalPrice"`
	ImageBase64        string `json:"imageBase64"`
}

// Flatten turns a submitted record into a row payload
func Flatten(record *domain.CustomerRecord) Payload {
	details := record.ShippingDetails
	if details == nil {
		details = &domain.ShippingDetails{}
	}

	cart := CartSummary(details.Items)
	p := Payload{
		ID:                 record.ID.String(),
		Name:               record.Name,
		Gender:             string(record.Gender),
		BirthDate:          record.BirthDate,
		BirthTime:          record.BirthTime,
		Wish:               cart,
		SuggestedCrystals:  cart,
		Bazi:               "N/A",
		CreatedAt:          record.CreatedAt.In(domain.StoreTimeZone).Format("2006/1/2 15:04:05"),
		RealName:           details.RealName,
		Phone:              details.Phone,
		StoreCode:          details.StoreCode,
		StoreName:          details.StoreName,
		SocialID:           details.SocialID,
		WristSize:          details.WristSize,
		AddPurificationBag: "否",
		TotalPrice:         details.TotalPrice,
		ImageBase64:        imageBase64(record.GeneratedImageURL),
	}

	if record.IsTimeUnsure {
		p.BirthTime = "吉時/未知"
	}
	if a := record.Analysis; a != nil {
		p.Bazi = fmt.Sprintf("%s/%s/%s/%s", a.Bazi.Year, a.Bazi.Month, a.Bazi.Day, a.Bazi.Time)
	}
	if details.PurificationBagQty > 0 {
		p.AddPurificationBag = fmt.Sprintf("是 (%d個)", details.PurificationBagQty)
	}

	return p
}

// CartSummary renders the cart as a single human-readable cell
func CartSummary(items []domain.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s := fmt.Sprintf("【%s x %d】", item.ProductName, item.Quantity)
		if item.CouponCode != "" {
			s += fmt.Sprintf(" (券: %s, 折%d)", item.CouponCode, item.DiscountPerUnit*int64(item.Quantity))
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}

// imageBase64 strips the data URL prefix; remote URLs are not embedded
func imageBase64(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return ""
	}
	if _, data, ok := strings.Cut(url, "base64,"); ok {
		return data
	}
	return ""
}
