package model

type ProductType string

const (
	ProductTypeStandard ProductType = "standard"
	ProductTypePremium  ProductType = "premium"
)

// OrderRecord - нормализованный заказ. Создаётся только через normalizer.NormalizeOrder.
type OrderRecord struct {
	ShopID         string      `json:"shop_id" validate:"required"`
	ProductName    string      `json:"product_name"`
	ProductType    ProductType `json:"product_type" validate:"oneof=standard premium"`
	QuantityLiters float64     `json:"quantity_liters" validate:"gt=0"`
	PricePerLiter  float64     `json:"price_per_liter" validate:"gt=0"`
	DeliveryFee    float64     `json:"delivery_fee" validate:"gte=0"`
	TaxRate        float64     `json:"tax_rate" validate:"gte=0,lte=1"`
	Currency       string      `json:"currency" validate:"required,iso4217"`
	TotalNet       float64     `json:"total_net" validate:"gte=0"`
	TotalTax       float64     `json:"total_tax" validate:"gte=0"`
	TotalGross     float64     `json:"total_gross" validate:"gt=0"`
}

type BankData struct {
	AccountHolder string `json:"account_holder"`
	IBAN          string `json:"iban"`
	BIC           string `json:"bic"`
	BankName      string `json:"bank_name"`
}
