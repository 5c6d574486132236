package normalizer

import (
	"strings"

	"github.com/ibeloyar/oilcheckout/internal/model"
)

const (
	UnknownShopID      = "unknown-shop"
	DefaultAccentColor = "#2563eb"
	DefaultLanguage    = model.LanguageDE
	PlaceholderLogoURL = "https://placehold.co/200x60?text=Logo"
)

// shopIDPaths - где бэкенд может прислать идентификатор магазина.
var shopIDPaths = [][]string{
	{"shop_id"},
	{"shopId"},
	{"shop", "id"},
	{"data", "shop_id"},
}

// NormalizeShopConfig никогда не падает: конфигурация магазина не критична,
// вместо битых значений подставляются значения по умолчанию.
func NormalizeShopConfig(raw map[string]any) model.ShopConfigRecord {
	if raw == nil {
		raw = map[string]any{}
	}

	methods, _ := firstPresent(raw, "payment_methods", "paymentMethods")

	return model.ShopConfigRecord{
		ShopID:         shopConfigID(raw),
		AccentColor:    accentColor(raw),
		Language:       language(raw),
		PaymentMethods: normalizePaymentMethods(methods),
		Currency:       shopCurrency(raw),
		CompanyName:    companyName(raw),
		LogoURL:        logoURL(raw),
		SupportPhone:   supportPhone(raw),
		CheckoutMode:   checkoutMode(raw),
		ShopURL:        shopURL(raw),
	}
}

// DefaultShopConfig - конфигурация, когда загрузить настоящую не удалось.
func DefaultShopConfig(shopID string) model.ShopConfigRecord {
	return NormalizeShopConfig(map[string]any{"shop_id": shopID})
}

func shopConfigID(raw map[string]any) string {
	for _, path := range shopIDPaths {
		if id, ok := stringAt(raw, path...); ok {
			return id
		}
	}
	return UnknownShopID
}

func accentColor(raw map[string]any) string {
	c, ok := stringField(raw, "accent_color")
	if !ok {
		return DefaultAccentColor
	}
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	if validate.Var(c, "hexcolor") != nil {
		return DefaultAccentColor
	}
	return strings.ToLower(c)
}

func language(raw map[string]any) model.Language {
	l, ok := stringField(raw, "language")
	if !ok || len(l) < 2 {
		return DefaultLanguage
	}
	// "de-DE", "de_AT" -> "DE"
	code := model.Language(strings.ToUpper(l[:2]))
	for _, known := range model.Languages {
		if code == known {
			return code
		}
	}
	return DefaultLanguage
}

func shopCurrency(raw map[string]any) string {
	c, ok := stringField(raw, "currency")
	if !ok {
		return DefaultCurrency
	}
	c = strings.ToUpper(c)
	if validate.Var(c, "iso4217") != nil {
		return DefaultCurrency
	}
	return c
}

func companyName(raw map[string]any) string {
	name, _ := stringField(raw, "company_name", "name")
	return name
}

func logoURL(raw map[string]any) string {
	u, ok := stringField(raw, "logo_url")
	if !ok || !isHTTPURL(u) {
		return PlaceholderLogoURL
	}
	return u
}

// shopURL в отличие от логотипа не подменяется заглушкой.
func shopURL(raw map[string]any) string {
	u, ok := stringField(raw, "shop_url")
	if !ok || !isHTTPURL(u) {
		return ""
	}
	return u
}

func supportPhone(raw map[string]any) string {
	p, _ := stringField(raw, "support_phone")
	return p
}

func checkoutMode(raw map[string]any) model.CheckoutMode {
	m, _ := stringField(raw, "checkout_mode")
	switch strings.ToLower(m) {
	case "instant", "express":
		return model.CheckoutModeInstant
	}
	return model.CheckoutModeStandard
}

func isHTTPURL(u string) bool {
	return validate.Var(u, "http_url") == nil
}
