package checkout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwpboutique/crystalshop/internal/domain"
	"github.com/fwpboutique/crystalshop/internal/pricing"
)

// Field names used as keys of the error map
const (
	FieldRealName  = "realName"
	FieldPhone     = "phone"
	FieldStoreCode = "storeCode"
	FieldStoreName = "storeName"
	FieldSocialID  = "socialId"
	FieldWristSize = "wristSize"
	FieldAgreed    = "agreed"
	FieldCart      = "cart"
	FieldAddOn     = "purificationBagQty"
)

// Accepted wrist size range in centimetres
const (
	MinWristSize = 10.0
	MaxWristSize = 22.0
)

var (
	// PhonePattern is a Taiwan mobile number
	PhonePattern     = regexp.MustCompile(`^09\d{8}$`)
	StoreCodePattern = regexp.MustCompile(`^\d{6}$`)
)

// Form holds the contact and delivery fields of the checkout form
type Form struct {
	RealName  string `json:"real_name"`
	Phone     string `json:"phone"`
	StoreCode string `json:"store_code"`
	StoreName string `json:"store_name"`
	SocialID  string `json:"social_id"`
	WristSize string `json:"wrist_size"`
	Agreed    bool   `json:"agreed"`
}

// ValidName reports whether name is at least two letters with nothing else in it.
// Letters include CJK ideographs.
func ValidName(name string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 2 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidWristSize reports whether input is a finite size inside the accepted range
func ValidWristSize(input string) bool {
	size, ok := pricing.ParseWristSize(input)
	return ok && size >= MinWristSize && size <= MaxWristSize
}

// FieldErrors is the live feedback shown while typing. Empty fields are not reported.
func FieldErrors(f Form) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.RealName) != "" && !ValidName(f.RealName) {
		errs[FieldRealName] = "請輸入正確的真實姓名"
	}
	if f.Phone != "" && !PhonePattern.MatchString(f.Phone) {
		errs[FieldPhone] = "手機格式錯誤"
	}
	if f.StoreCode != "" && !StoreCodePattern.MatchString(f.StoreCode) {
		errs[FieldStoreCode] = "店號應為 6 位數字"
	}
	if f.WristSize != "" && !ValidWristSize(f.WristSize) {
		errs[FieldWristSize] = "尺寸超出範圍"
	}
	return errs
}

// Validate is the submit gate. The form may be submitted iff the returned map is empty.
func Validate(f Form, cartLen int) map[string]string {
	errs := make(map[string]string)
	if !ValidName(f.RealName) {
		errs[FieldRealName] = "請輸入正確的真實姓名"
	}
	if !PhonePattern.MatchString(f.Phone) {
		errs[FieldPhone] = "手機格式錯誤"
	}
	if !StoreCodePattern.MatchString(f.StoreCode) {
		errs[FieldStoreCode] = "店號應為 6 位數字"
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.StoreName)) < 2 {
		errs[FieldStoreName] = "請輸入門市名稱"
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.SocialID)) < 2 {
		errs[FieldSocialID] = "請輸入 IG/FB 帳號"
	}
	if !ValidWristSize(f.WristSize) {
		errs[FieldWristSize] = "尺寸超出範圍"
	}
	if !f.Agreed {
		errs[FieldAgreed] = "請同意購買須知"
	}
	if cartLen == 0 {
		errs[FieldCart] = "購物車是空的"
	}
	return errs
}

// CartErrors is the amount side of the submit gate. A cart whose total would be
// clamped or overflow is never frozen.
func CartErrors(items []domain.LineItem, addOnQty int, sum domain.FinancialSummary) map[string]string {
	errs := make(map[string]string)
	if addOnQty > pricing.MaxAddOnQty {
		errs[FieldAddOn] = "淨化袋數量超出上限"
	}
	if !pricing.WithinCaps(items, 0) {
		errs[FieldCart] = "商品數量或金額超出上限"
	} else if pricing.NetTotal(sum) < 0 {
		errs[FieldCart] = "折扣不可超過訂單金額"
	}
	return errs
}
