package model

import (
	"encoding/json"
	"time"
)

type Customer struct {
	Salutation  string `json:"salutation" validate:"omitempty,oneof=herr frau divers firma"`
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	CompanyName string `json:"company_name,omitempty" validate:"max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=6,max=30"`
	Street      string `json:"street" validate:"required"`
	HouseNumber string `json:"house_number" validate:"required,max=10"`
	Zip         string `json:"zip" validate:"required,len=5,numeric"`
	City        string `json:"city" validate:"required"`
}

// SubmitOrderDTO - тело POST /api/checkout/orders
type SubmitOrderDTO struct {
	Customer      Customer      `json:"customer"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=vorkasse rechnung"`
	DeliveryDate  string        `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string        `json:"notes,omitempty" validate:"max=1000"`
	AcceptedTerms bool          `json:"accepted_terms" validate:"eq=true"`
}

// OrderSubmission - то, что уходит во внешний API заказов.
type OrderSubmission struct {
	Customer Customer            `json:"customer"`
	Order    OrderSubmissionLine `json:"order"`
}

type OrderSubmissionLine struct {
	ShopID         string        `json:"shop_id"`
	ProductName    string        `json:"product_name"`
	ProductType    ProductType   `json:"product_type"`
	QuantityLiters float64       `json:"quantity_liters"`
	PricePerLiter  float64       `json:"price_per_liter"`
	DeliveryFee    float64       `json:"delivery_fee"`
	TaxRate        float64       `json:"tax_rate"`
	Currency       string        `json:"currency"`
	TotalNet       float64       `json:"total_net"`
	TotalTax       float64       `json:"total_tax"`
	TotalGross     float64       `json:"total_gross"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	DeliveryDate   string        `json:"delivery_date,omitempty"`
	Notes          string        `json:"notes,omitempty"`
}

// Confirmation хранится как JSON blob под ключом orderConfirmation и
// отдаётся странице подтверждения без изменений.
type Confirmation struct {
	OrderNumber   string           `json:"order_number"`
	Order         OrderRecord      `json:"order"`
	Customer      Customer         `json:"customer"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	ShopConfig    ShopConfigRecord `json:"shop_config"`
	BankData      *BankData        `json:"bank_data,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type SubmitOrderResponse struct {
	OrderNumber string `json:"order_number"`
}

type CheckoutView struct {
	Order        OrderRecord      `json:"order"`
	ShopConfig   ShopConfigRecord `json:"shop_config"`
	BankData     *BankData        `json:"bank_data,omitempty"`
	SessionToken string           `json:"session_token"`
	Warnings     []string         `json:"warnings,omitempty"`
}

// ConfirmationBlob - сырой JSON подтверждения, как он лежит в хранилище.
type ConfirmationBlob = json.RawMessage
