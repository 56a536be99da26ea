package cart

// Totals is the derived monetary summary of a cart. Every field is a pure
// function of the current items, the applied coupon snapshot, and the charge
// configuration; the pricing engine recomputes the whole struct after each
// mutation, so totals can never drift from their inputs.
type Totals struct {
	TotalItems     int
	SubTotal       float64
	TotalDiscount  float64
	GSTAmount      float64
	DeliveryCharge float64
	PlatformCharge float64
	PackingCharge  float64
	CouponDiscount float64
	FinalAmount    float64
}

// IsZero reports whether the totals are all zero, the state of an empty cart.
func (t Totals) IsZero() bool {
	return t == Totals{}
}
