package onboarding

import "strings"

// Stage validators are pure, synchronous and total: they inspect a draft and
// return a list of human-readable defects. An empty list means the stage may
// advance. They never touch the network.

// ValidateStore checks the fields the store stage requires.
func ValidateStore(d StoreDraft) []string {
	var defects []string
	if strings.TrimSpace(d.Name) == "" {
		defects = append(defects, "store name is required")
	}
	if strings.TrimSpace(d.CRNumber) == "" {
		defects = append(defects, "commercial registration number is required")
	}
	if strings.TrimSpace(d.VATNumber) == "" {
		defects = append(defects, "VAT number is required")
	}
	if strings.TrimSpace(d.Phone) == "" {
		defects = append(defects, "contact phone is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		defects = append(defects, "contact email is required")
	}
	if strings.TrimSpace(d.FullAddress) == "" {
		defects = append(defects, "full address is required")
	}
	return defects
}

// ValidateProductGeneral checks the general product tab.
func ValidateProductGeneral(p ProductDraft) []string {
	var defects []string
	if strings.TrimSpace(p.Name) == "" {
		defects = append(defects, "product name is required")
	}
	if strings.TrimSpace(p.Brand) == "" {
		defects = append(defects, "product brand is required")
	}
	if strings.TrimSpace(p.Type) == "" {
		defects = append(defects, "product type is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		defects = append(defects, "product category is required")
	}
	return defects
}

// ValidateProductPricing checks the pricing tab: all three prices and the
// minimum order quantity must be strictly positive.
func ValidateProductPricing(p ProductDraft) []string {
	var defects []string
	if !p.BasePrice.IsPositive() {
		defects = append(defects, "base price must be greater than zero")
	}
	if !p.B2BPrice.IsPositive() {
		defects = append(defects, "B2B price must be greater than zero")
	}
	if !p.B2CPrice.IsPositive() {
		defects = append(defects, "B2C price must be greater than zero")
	}
	if p.MinOrderQty <= 0 {
		defects = append(defects, "minimum order quantity must be greater than zero")
	}
	return defects
}

// ValidateLogistics always passes; the explicit action-id gate on Advance is
// what keeps nested add-zone/vehicle/driver submissions from advancing.
func ValidateLogistics(LogisticsDraft) []string { return nil }
