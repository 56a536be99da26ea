package http

// Request and response bodies are hand-written rather than generated.
// Validation tags are enforced by the echo-registered RequestValidator
// before a handler runs.

// AddCartItemRequest adds a menu item to the customer's cart.
type AddCartItemRequest struct {
	MenuItemRef string `json:"menuItemRef" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	IsHalfPlate bool   `json:"isHalfPlate"`
	IsFullPlate bool   `json:"isFullPlate"`
}

// ChangeQuantityRequest steps one cart line's quantity by one.
type ChangeQuantityRequest struct {
	MenuItemRef string `json:"menuItemRef" validate:"required,uuid"`
	IsHalfPlate bool   `json:"isHalfPlate"`
	IsFullPlate bool   `json:"isFullPlate"`
	Action      string `json:"action" validate:"required,oneof=inc dec"`
}

// ApplyCouponRequest attaches a coupon to the customer's cart.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CheckoutRequest converts the customer's cart into an order. OrderID is
// optional; supplying one makes a retried checkout idempotent.
type CheckoutRequest struct {
	OrderID       string `json:"orderId" validate:"omitempty,uuid"`
	CustomerID    string `json:"customerId" validate:"required,uuid"`
	AddressID     string `json:"addressId" validate:"required,uuid"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=COD Online"`
}

// ChangeOrderStatusRequest records a vendor or customer decision.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Accepted Rejected Cancelled"`
}

// DispatchRequest fans assignment offers out for an accepted order.
type DispatchRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
}

// AcceptAssignmentRequest is a rider claiming an offered assignment.
type AcceptAssignmentRequest struct {
	AssignmentID string `json:"assignmentId" validate:"required,uuid"`
	RiderID      string `json:"riderId" validate:"required,uuid"`
}

// DeliveryStatusRequest is a rider reporting delivery progress.
type DeliveryStatusRequest struct {
	AssignmentID string `json:"assignmentId" validate:"required,uuid"`
	RiderID      string `json:"riderId" validate:"required,uuid"`
	Status       string `json:"status" validate:"required,oneof=Picked Delivered Failed"`
}

// CreateRiderRequest registers a rider. RiderID is optional; one is minted
// when absent.
type CreateRiderRequest struct {
	RiderID string `json:"riderId" validate:"omitempty,uuid"`
	Name    string `json:"name" validate:"required"`
}

// UpdateRiderLocationRequest reports a rider's position.
type UpdateRiderLocationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// TotalsResponse is the priced cart or order total breakdown.
type TotalsResponse struct {
	TotalItems     int     `json:"totalItems"`
	SubTotal       float64 `json:"subTotal"`
	TotalDiscount  float64 `json:"totalDiscount"`
	GSTAmount      float64 `json:"gstAmount"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	PlatformCharge float64 `json:"platformCharge"`
	PackingCharge  float64 `json:"packingCharge"`
	CouponDiscount float64 `json:"couponDiscount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// CartMutationResponse reports the cart state after a mutation.
type CartMutationResponse struct {
	Switched bool           `json:"switched,omitempty"`
	Applied  *bool          `json:"applied,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Totals   TotalsResponse `json:"totals"`
}

// CartLineResponse is one priced line of the cart read model.
type CartLineResponse struct {
	MenuItemRef    string  `json:"menuItemRef"`
	Name           string  `json:"name"`
	Variant        string  `json:"variant"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	FinalUnitPrice float64 `json:"finalUnitPrice"`
	LineTotal      float64 `json:"lineTotal"`
}

// CartResponse is the cart read model served to storefront clients.
type CartResponse struct {
	CartID       string             `json:"cartId"`
	CustomerID   string             `json:"customerId"`
	RestaurantID string             `json:"restaurantId,omitempty"`
	CouponCode   string             `json:"couponCode,omitempty"`
	Lines        []CartLineResponse `json:"lines"`
	Totals       TotalsResponse     `json:"totals"`
	Version      int64              `json:"version"`
}

// CheckoutResponse reports the order created at checkout.
type CheckoutResponse struct {
	OrderID string         `json:"orderId"`
	Totals  TotalsResponse `json:"totals"`
}

// AssignmentResponse is one assignment offer or decision.
type AssignmentResponse struct {
	AssignmentID     string  `json:"assignmentId"`
	OrderID          string  `json:"orderId"`
	RiderID          string  `json:"riderId"`
	PickupDistanceKm float64 `json:"pickupDistanceKm"`
	DropDistanceKm   float64 `json:"dropDistanceKm"`
	Status           string  `json:"status"`
}

// DispatchResponse lists the offers created or already standing for an order.
type DispatchResponse struct {
	Offers []AssignmentResponse `json:"offers"`
	Reason string               `json:"reason,omitempty"`
}

// UnassignedOrderResponse is one accepted order still waiting for a rider.
type UnassignedOrderResponse struct {
	OrderID       string  `json:"orderId"`
	RestaurantID  string  `json:"restaurantId"`
	RestaurantLat float64 `json:"restaurantLat"`
	RestaurantLon float64 `json:"restaurantLon"`
	CustomerLat   float64 `json:"customerLat"`
	CustomerLon   float64 `json:"customerLon"`
	PaymentMethod string  `json:"paymentMethod"`
	FinalAmount   float64 `json:"finalAmount"`
}

// CreateRiderResponse reports the identifier a rider was registered under.
type CreateRiderResponse struct {
	RiderID string `json:"riderId"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Winner  *AssignmentResponse `json:"winner,omitempty"`
}
