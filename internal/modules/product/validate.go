package product

import "math"

// Validation runs the rules in a fixed order and reports the first
// violation only. Callers receive a *ValidationError or nil.
//
// Validation also normalizes: any promotion type other than Flash Deals
// forces the discount to 0 on the write path, it is not just ignored.

func validateCreate(p *CreateProduct) error {
	if p.Name == "" {
		return invalid("Product name is required.")
	}
	if !finite(p.Price) || p.Price <= 0 {
		return invalid("Price must be a number greater than 0.")
	}
	if p.Stock < 0 {
		return invalid("Stock must be a non-negative integer.")
	}
	if p.PromotionType == PromotionFlashDeals {
		if !finite(p.Discount) || p.Discount < 1 || p.Discount > 100 {
			return invalid("Flash Deals must have a discount percentage between 1 and 100.")
		}
	} else {
		p.Discount = 0
	}
	return nil
}

func validateUpdate(p *UpdateProduct) error {
	if p.Name != nil && *p.Name == "" {
		return invalid("Product name is required.")
	}
	if p.Price != nil && (!finite(*p.Price) || *p.Price <= 0) {
		return invalid("Price must be a number greater than 0.")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return invalid("Stock must be a non-negative integer.")
	}
	if p.PromotionType != nil {
		if *p.PromotionType == PromotionFlashDeals {
			if p.Discount == nil || !finite(*p.Discount) || *p.Discount < 1 || *p.Discount > 100 {
				return invalid("Flash Deals must have a discount percentage between 1 and 100.")
			}
		} else {
			zero := 0.0
			p.Discount = &zero
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
