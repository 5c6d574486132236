package model

type PaymentMethod string

const (
	PaymentMethodVorkasse PaymentMethod = "vorkasse"
	PaymentMethodRechnung PaymentMethod = "rechnung"
)

type CheckoutMode string

const (
	CheckoutModeStandard CheckoutMode = "standard"
	CheckoutModeInstant  CheckoutMode = "instant"
)

type Language string

const (
	LanguageDE Language = "DE"
	LanguageEN Language = "EN"
	LanguageFR Language = "FR"
	LanguageIT Language = "IT"
	LanguageES Language = "ES"
	LanguageNL Language = "NL"
	LanguagePL Language = "PL"
)

var Languages = []Language{LanguageDE, LanguageEN, LanguageFR, LanguageIT, LanguageES, LanguageNL, LanguagePL}

type ShopConfigRecord struct {
	ShopID         string          `json:"shop_id" validate:"required"`
	AccentColor    string          `json:"accent_color" validate:"required,hexcolor"`
	Language       Language        `json:"language" validate:"oneof=DE EN FR IT ES NL PL"`
	PaymentMethods []PaymentMethod `json:"payment_methods" validate:"required,min=1,dive,oneof=vorkasse rechnung"`
	Currency       string          `json:"currency" validate:"required,iso4217"`
	CompanyName    string          `json:"company_name"`
	LogoURL        string          `json:"logo_url" validate:"required,http_url"`
	SupportPhone   string          `json:"support_phone,omitempty"`
	CheckoutMode   CheckoutMode    `json:"checkout_mode" validate:"oneof=standard instant"`
	ShopURL        string          `json:"shop_url,omitempty" validate:"omitempty,http_url"`
}

func (c ShopConfigRecord) AcceptsPayment(method PaymentMethod) bool {
	for _, m := range c.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
