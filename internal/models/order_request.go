package models

import (
	"github.com/shopspring/decimal"
)

// OrderRequest is the validated request body an order is built from.
// Monetary fields use decimal.Decimal so both JSON numbers and numeric
// strings are accepted.
type OrderRequest struct {
	Order                       OrderDetails         `json:"order" binding:"required"`
	Buyer                       BuyerParty           `json:"buyer" binding:"required"`
	Seller                      SellerParty          `json:"seller" binding:"required"`
	Delivery                    Delivery             `json:"delivery" binding:"required"`
	MonetaryTotal               MonetaryTotal        `json:"monetaryTotal" binding:"required"`
	OrderLines                  []OrderLine          `json:"orderLines" binding:"required,min=1,dive"`
	AdditionalDocumentReference []DocumentReference  `json:"additionalDocumentReference"`
}

// OrderDetails carries the document-level header fields.
type OrderDetails struct {
	Note                          string `json:"note"`
	DocumentCurrencyCode          string `json:"documentCurrencyCode" binding:"required"`
	AccountingCostCode            string `json:"accountingCostCode"`
	ValidityEndDate               string `json:"validityEndDate"`
	QuotationDocumentReferenceID  string `json:"quotationDocumentReferenceId"`
	OrderDocumentReferenceID      string `json:"orderDocumentReferenceId"`
	OriginatorDocumentReferenceID string `json:"originatorDocumentReferenceId"`
	ContractID                    string `json:"contractId"`
	ContractType                  string `json:"contractType"`
}

type PostalAddress struct {
	PostBox              string `json:"postBox"`
	StreetName           string `json:"streetName"`
	AdditionalStreetName string `json:"additionalStreetName"`
	BuildingNumber       string `json:"buildingNumber"`
	Department           string `json:"department"`
	CityName             string `json:"cityName"`
	PostalZone           string `json:"postalZone"`
	CountrySubentity     string `json:"countrySubentity"`
	CountryCode          string `json:"countryCode"`
}

type Contact struct {
	Telephone string `json:"telephone"`
	Telefax   string `json:"telefax"`
	Email     string `json:"email"`
}

type Person struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	FamilyName string `json:"familyName"`
	JobTitle   string `json:"jobTitle"`
}

// NamedContact is a contact block that additionally carries a display
// name (delivery contacts and delivery parties).
type NamedContact struct {
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
	Telefax   string `json:"telefax"`
	Email     string `json:"email"`
}

type BuyerParty struct {
	BuyerID         string        `json:"buyerId" binding:"required"`
	Name            string        `json:"name" binding:"required"`
	PostalAddress   PostalAddress `json:"postalAddress" binding:"required"`
	TaxScheme       string        `json:"taxScheme"`
	Contact         Contact       `json:"contact"`
	Person          Person        `json:"person"`
	DeliveryContact NamedContact  `json:"deliveryContact"`
}

type SellerParty struct {
	SellerID      string        `json:"sellerId" binding:"required"`
	Name          string        `json:"name" binding:"required"`
	PostalAddress PostalAddress `json:"postalAddress" binding:"required"`
	Contact       Contact       `json:"contact"`
	Person        Person        `json:"person"`
}

type DeliveryPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Delivery struct {
	DeliveryAddress         PostalAddress  `json:"deliveryAddress" binding:"required"`
	RequestedDeliveryPeriod DeliveryPeriod `json:"requestedDeliveryPeriod"`
	DeliveryParty           NamedContact   `json:"deliveryParty"`
}

// AllowanceCharge is a discount or surcharge applied to the order
// total. ChargeIndicator is transmitted as a string; only the literal
// "true" marks a charge, every other value counts as an allowance.
type AllowanceCharge struct {
	ChargeIndicator       string          `json:"chargeIndicator"`
	AllowanceChargeReason string          `json:"allowanceChargeReason"`
	Amount                decimal.Decimal `json:"amount"`
}

type MonetaryTotal struct {
	LineExtensionAmount decimal.Decimal   `json:"lineExtensionAmount"`
	TaxTotal            decimal.Decimal   `json:"taxTotal"`
	AllowanceCharge     []AllowanceCharge `json:"allowanceCharge"`
}

type BaseQuantity struct {
	Quantity decimal.Decimal `json:"quantity"`
	UnitCode string          `json:"unitCode"`
}

type Item struct {
	ItemID      string            `json:"itemId" binding:"required"`
	Description string            `json:"description"`
	Name        string            `json:"name"`
	Properties  map[string]string `json:"properties"`
}

type LineItem struct {
	Quantity       decimal.Decimal `json:"quantity"`
	TotalTaxAmount decimal.Decimal `json:"totalTaxAmount"`
	Price          decimal.Decimal `json:"price"`
	BaseQuantity   BaseQuantity    `json:"baseQuantity"`
	Item           Item            `json:"item" binding:"required"`
}

type OrderLine struct {
	Note     string   `json:"note"`
	LineItem LineItem `json:"lineItem" binding:"required"`
}

// Attachment is either an external reference (URI) or an embedded
// binary object with its mime type.
type Attachment struct {
	URI          string `json:"uri"`
	BinaryObject string `json:"binaryObject"`
	MimeCode     string `json:"mimeCode"`
}

type DocumentReference struct {
	DocumentType string      `json:"documentType"`
	Attachment   *Attachment `json:"attachment"`
}
