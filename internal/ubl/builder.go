// Package ubl renders validated order requests as UBL Order-2 XML
// documents. The builder is pure: no I/O, no state between calls.
package ubl

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"backend/internal/models"
)

const (
	namespaceOrder = "urn:oasis:names:specification:ubl:schema:xsd:Order-2"
	namespaceCAC   = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	namespaceCBC   = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	customizationID = "urn:www.cenbii.eu:transaction:biicoretrdm001:ver1.0"
	profileID       = "urn:www.cenbii.eu:profile:BII01:ver1.0"
)

// Result is the outcome of generating one order document.
type Result struct {
	XML       string
	TotalCost decimal.Decimal
}

// Generate builds the UBL document for an order and computes its
// total cost (payable amount plus tax). IssueDate and IssueTime
// reflect the wall clock at call time; everything else is
// deterministic for a fixed input.
func Generate(data models.OrderRequest, orderID int64) (Result, error) {
	return generate(data, orderID, time.Now())
}

func generate(data models.OrderRequest, orderID int64, now time.Time) (Result, error) {
	currency := data.Order.DocumentCurrencyCode

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	order := doc.CreateElement("Order")
	order.CreateAttr("xmlns", namespaceOrder)
	order.CreateAttr("xmlns:cac", namespaceCAC)
	order.CreateAttr("xmlns:cbc", namespaceCBC)

	text(order, "cbc:UBLVersionID", "2.1")
	text(order, "cbc:CustomizationID", customizationID)
	profile := text(order, "cbc:ProfileID", profileID)
	profile.CreateAttr("schemeAgencyID", "BII")
	profile.CreateAttr("schemeID", "Profile")
	text(order, "cbc:ID", strconv.FormatInt(orderID, 10))
	text(order, "cbc:IssueDate", now.Format("2006-01-02"))
	text(order, "cbc:IssueTime", now.Format("15:04:05"))
	text(order, "cbc:Note", data.Order.Note)
	text(order, "cbc:DocumentCurrencyCode", currency)
	text(order, "cbc:AccountingCostCode", data.Order.AccountingCostCode)

	text(order.CreateElement("cac:ValidityPeriod"), "cbc:EndDate", data.Order.ValidityEndDate)
	text(order.CreateElement("cac:QuotationDocumentReference"), "cbc:ID", data.Order.QuotationDocumentReferenceID)
	text(order.CreateElement("cac:OrderDocumentReference"), "cbc:ID", data.Order.OrderDocumentReferenceID)
	text(order.CreateElement("cac:OriginatorDocumentReference"), "cbc:ID", data.Order.OriginatorDocumentReferenceID)

	addDocumentReferences(order, data.AdditionalDocumentReference)

	contract := order.CreateElement("cac:Contract")
	text(contract, "cbc:ID", data.Order.ContractID)
	text(contract, "cbc:ContractType", data.Order.ContractType)

	addBuyerParty(order, data.Buyer)
	addSellerParty(order, data.Seller)
	addOriginatorParty(order, data.Seller)
	addDelivery(order, data.Delivery)

	// Allowances and charges are emitted and accumulated in one pass.
	// Only the literal string "true" routes an amount into the charge
	// total; everything else counts as an allowance.
	totalAllowance := decimal.Zero
	totalCharge := decimal.Zero
	for _, charge := range data.MonetaryTotal.AllowanceCharge {
		entry := order.CreateElement("cac:AllowanceCharge")
		text(entry, "cbc:ChargeIndicator", charge.ChargeIndicator)
		text(entry, "cbc:AllowanceChargeReason", charge.AllowanceChargeReason)
		amount(entry, "cbc:Amount", charge.Amount, currency)

		if charge.ChargeIndicator == "true" {
			totalCharge = totalCharge.Add(charge.Amount)
		} else {
			totalAllowance = totalAllowance.Add(charge.Amount)
		}
	}
	payableAmount := data.MonetaryTotal.LineExtensionAmount.Sub(totalAllowance).Add(totalCharge)

	taxTotal := order.CreateElement("cac:TaxTotal")
	amount(taxTotal, "cbc:TaxAmount", data.MonetaryTotal.TaxTotal, currency)

	anticipated := order.CreateElement("cac:AnticipatedMonetaryTotal")
	amount(anticipated, "cbc:LineExtensionAmount", data.MonetaryTotal.LineExtensionAmount, currency)
	amount(anticipated, "cbc:AllowanceTotalAmount", totalAllowance, currency)
	amount(anticipated, "cbc:ChargeTotalAmount", totalCharge, currency)
	amount(anticipated, "cbc:PayableAmount", payableAmount, currency)

	for i, line := range data.OrderLines {
		addOrderLine(order, line, i+1, data.Delivery.RequestedDeliveryPeriod, currency)
	}

	doc.Indent(2)
	xml, err := doc.WriteToString()
	if err != nil {
		return Result{}, err
	}

	return Result{
		XML:       xml,
		TotalCost: payableAmount.Add(data.MonetaryTotal.TaxTotal),
	}, nil
}

func addDocumentReferences(order *etree.Element, refs []models.DocumentReference) {
	for i, ref := range refs {
		docRef := order.CreateElement("cac:AdditionalDocumentReference")
		text(docRef, "cbc:ID", fmt.Sprintf("doc%d", i+1))
		text(docRef, "cbc:DocumentType", ref.DocumentType)

		if ref.Attachment == nil {
			continue
		}
		switch {
		case ref.Attachment.URI != "":
			attachment := docRef.CreateElement("cac:Attachment")
			text(attachment.CreateElement("cac:ExternalReference"), "cbc:URI", ref.Attachment.URI)
		case ref.Attachment.BinaryObject != "" && ref.Attachment.MimeCode != "":
			attachment := docRef.CreateElement("cac:Attachment")
			embedded := text(attachment, "cbc:EmbeddedDocumentBinaryObject", ref.Attachment.BinaryObject)
			embedded.CreateAttr("mimeCode", ref.Attachment.MimeCode)
		}
	}
}

func addBuyerParty(order *etree.Element, buyer models.BuyerParty) {
	customer := order.CreateElement("cac:BuyerCustomerParty")
	party := customer.CreateElement("cac:Party")

	endpoint := text(party, "cbc:EndpointID", buyer.BuyerID)
	endpoint.CreateAttr("schemeAgencyID", "9")
	endpoint.CreateAttr("schemeID", "GLN")

	identification := party.CreateElement("cac:PartyIdentification")
	id := text(identification, "cbc:ID", buyer.BuyerID)
	id.CreateAttr("schemeAgencyID", "9")
	id.CreateAttr("schemeID", "GLN")

	text(party.CreateElement("cac:PartyName"), "cbc:Name", buyer.Name)

	// The buyer postal address nests its country under cbc:Country,
	// unlike every other address block in the document.
	addPostalAddress(party.CreateElement("cac:PostalAddress"), buyer.PostalAddress, "cbc:Country")

	taxScheme := party.CreateElement("cac:PartyTaxScheme")
	registration := taxScheme.CreateElement("cac:RegistrationAddress")
	text(registration, "cbc:CityName", buyer.PostalAddress.CityName)
	text(registration.CreateElement("cac:Country"), "cbc:IdentificationCode", buyer.PostalAddress.CountryCode)
	scheme := taxScheme.CreateElement("cbc:TaxScheme")
	scheme.CreateAttr("schemeID", "UN/ECE 515")
	scheme.CreateAttr("schemeAgencyID", "6")
	text(scheme, "cbc:ID", buyer.TaxScheme)

	addPartyLegalEntity(party, buyer.Name, buyer.BuyerID, buyer.PostalAddress)
	addContact(party, buyer.Contact)
	addPerson(party, buyer.Person)

	deliveryContact := customer.CreateElement("cac:DeliveryContact")
	text(deliveryContact, "cbc:Name", buyer.DeliveryContact.Name)
	text(deliveryContact, "cbc:Telephone", buyer.DeliveryContact.Telephone)
	text(deliveryContact, "cbc:Telefax", buyer.DeliveryContact.Telefax)
	text(deliveryContact, "cbc:ElectronicMail", buyer.DeliveryContact.Email)
}

func addSellerParty(order *etree.Element, seller models.SellerParty) {
	supplier := order.CreateElement("cac:SellerSupplierParty")
	party := supplier.CreateElement("cac:Party")

	endpoint := text(party, "cbc:EndpointID", seller.SellerID)
	endpoint.CreateAttr("schemeAgencyID", "9")
	endpoint.CreateAttr("schemeID", "GLN")

	text(party.CreateElement("cac:PartyIdentification"), "cbc:ID", seller.SellerID)
	text(party.CreateElement("cac:PartyName"), "cbc:Name", seller.Name)
	addPostalAddress(party.CreateElement("cac:PostalAddress"), seller.PostalAddress, "cac:Country")
	addPartyLegalEntity(party, seller.Name, seller.SellerID, seller.PostalAddress)
	addContact(party, seller.Contact)
	addPerson(party, seller.Person)
}

// addOriginatorParty fills the OriginatorCustomerParty block from the
// seller record, matching the observed behavior of the document
// format this replaces. Note the person name ordering differs from
// the buyer and seller blocks.
func addOriginatorParty(order *etree.Element, seller models.SellerParty) {
	originator := order.CreateElement("cac:OriginatorCustomerParty")
	party := originator.CreateElement("cac:Party")

	identification := party.CreateElement("cac:PartyIdentification")
	id := text(identification, "cbc:ID", seller.SellerID)
	id.CreateAttr("schemeAgencyID", "9")
	id.CreateAttr("schemeID", "GLN")

	text(party.CreateElement("cac:PartyName"), "cbc:Name", seller.Name)
	addContact(party, seller.Contact)

	person := party.CreateElement("cac:Person")
	text(person, "cbc:FirstName", seller.Person.FirstName)
	text(person, "cbc:MiddleName", seller.Person.MiddleName)
	text(person, "cbc:FamilyName", seller.Person.FamilyName)
	text(person, "cbc:JobTitle", seller.Person.JobTitle)
}

func addDelivery(order *etree.Element, delivery models.Delivery) {
	section := order.CreateElement("cac:Delivery")

	location := section.CreateElement("cac:DeliveryLocation")
	addPostalAddress(location.CreateElement("cac:Address"), delivery.DeliveryAddress, "cac:Country")

	period := section.CreateElement("cac:RequestedDeliveryPeriod")
	text(period, "cbc:StartDate", delivery.RequestedDeliveryPeriod.StartDate)
	text(period, "cbc:EndDate", delivery.RequestedDeliveryPeriod.EndDate)

	party := section.CreateElement("cac:DeliveryParty")
	identification := party.CreateElement("cac:PartyIdentification")
	id := text(identification, "cbc:ID", delivery.DeliveryParty.Name)
	id.CreateAttr("schemeAgencyID", "9")
	id.CreateAttr("schemeID", "GLN")
	text(party.CreateElement("cac:PartyName"), "cbc:Name", delivery.DeliveryParty.Name)

	contact := party.CreateElement("cac:Contact")
	text(contact, "cbc:Name", delivery.DeliveryParty.Name)
	text(contact, "cbc:Telephone", delivery.DeliveryParty.Telephone)
	text(contact, "cbc:Telefax", delivery.DeliveryParty.Telefax)
	text(contact, "cbc:ElectronicMail", delivery.DeliveryParty.Email)
}

func addOrderLine(order *etree.Element, line models.OrderLine, number int, period models.DeliveryPeriod, currency string) {
	orderLine := order.CreateElement("cac:OrderLine")
	text(orderLine, "cbc:Note", line.Note)

	lineItem := orderLine.CreateElement("cac:LineItem")
	text(lineItem, "cbc:ID", strconv.Itoa(number))
	quantity := text(lineItem, "cbc:Quantity", line.LineItem.Quantity.String())
	quantity.CreateAttr("unitCode", line.LineItem.BaseQuantity.UnitCode)
	amount(lineItem, "cbc:LineExtensionAmount", line.LineItem.Quantity.Mul(line.LineItem.Price), currency)
	amount(lineItem, "cbc:TotalTaxAmount", line.LineItem.TotalTaxAmount, currency)

	// Each line mirrors the document-level requested delivery period.
	lineDelivery := lineItem.CreateElement("cac:Delivery")
	linePeriod := lineDelivery.CreateElement("cbc:RequestedDeliveryPeriod")
	text(linePeriod, "cbc:StartDate", period.StartDate)
	text(linePeriod, "cbc:EndDate", period.EndDate)

	price := lineItem.CreateElement("cbc:Price")
	amount(price, "cbc:PriceAmount", line.LineItem.Price, currency)
	base := text(price, "cbc:BaseQuantity", line.LineItem.BaseQuantity.Quantity.String())
	base.CreateAttr("unitCode", line.LineItem.BaseQuantity.UnitCode)

	item := lineItem.CreateElement("cac:Item")
	text(item, "cbc:Description", line.LineItem.Item.Description)
	text(item, "cbc:Name", line.LineItem.Item.Name)
	text(item.CreateElement("cac:SellersItemIdentification"), "cbc:ID", line.LineItem.Item.ItemID)

	// Map iteration order is not stable in Go, so properties are
	// emitted in sorted key order to keep the document deterministic.
	for _, key := range slices.Sorted(maps.Keys(line.LineItem.Item.Properties)) {
		property := item.CreateElement("cac:AdditionalItemProperty")
		text(property, "cbc:Name", key)
		text(property, "cbc:Value", line.LineItem.Item.Properties[key])
	}
}

func addPostalAddress(address *etree.Element, postal models.PostalAddress, countryTag string) {
	text(address, "cbc:Postbox", postal.PostBox)
	text(address, "cbc:StreetName", postal.StreetName)
	text(address, "cbc:AdditionalStreetName", postal.AdditionalStreetName)
	text(address, "cbc:BuildingNumber", postal.BuildingNumber)
	text(address, "cbc:Department", postal.Department)
	text(address, "cbc:CityName", postal.CityName)
	text(address, "cbc:PostalZone", postal.PostalZone)
	text(address, "cbc:CountrySubentity", postal.CountrySubentity)
	text(address.CreateElement(countryTag), "cbc:IdentificationCode", postal.CountryCode)
}

func addPartyLegalEntity(party *etree.Element, name, companyID string, postal models.PostalAddress) {
	entity := party.CreateElement("cac:PartyLegalEntity")
	text(entity, "cbc:RegistrationName", name)
	company := text(entity, "cbc:CompanyID", companyID)
	company.CreateAttr("schemeID", "SE:ORGNR")

	registration := entity.CreateElement("cac:RegistrationAddress")
	text(registration, "cbc:CityName", postal.CityName)
	text(registration, "cbc:CountrySubentity", postal.CountrySubentity)
	text(registration.CreateElement("cac:Country"), "cbc:IdentificationCode", postal.CountryCode)
}

func addContact(party *etree.Element, contact models.Contact) {
	element := party.CreateElement("cac:Contact")
	text(element, "cbc:Telephone", contact.Telephone)
	text(element, "cbc:Telefax", contact.Telefax)
	text(element, "cbc:ElectronicMail", contact.Email)
}

func addPerson(party *etree.Element, person models.Person) {
	element := party.CreateElement("cac:Person")
	text(element, "cbc:FirstName", person.FirstName)
	text(element, "cbc:FamilyName", person.FamilyName)
	text(element, "cbc:MiddleName", person.MiddleName)
	text(element, "cbc:JobTitle", person.JobTitle)
}

func text(parent *etree.Element, tag, value string) *etree.Element {
	element := parent.CreateElement(tag)
	element.SetText(value)
	return element
}

func amount(parent *etree.Element, tag string, value decimal.Decimal, currency string) *etree.Element {
	element := text(parent, tag, value.String())
	element.CreateAttr("currencyID", currency)
	return element
}
