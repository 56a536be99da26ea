// Package http exposes the marketplace over REST. Handlers translate
// request bodies into commands and queries and map application errors onto
// status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartItemHandler          commands.AddCartItemCommandHandler
	changeItemQuantityHandler   commands.ChangeItemQuantityCommandHandler
	removeCartItemHandler       commands.RemoveCartItemCommandHandler
	applyCouponHandler          commands.ApplyCouponCommandHandler
	checkoutHandler             commands.CheckoutCommandHandler
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	dispatchAssignmentsHandler  commands.DispatchAssignmentsCommandHandler
	acceptAssignmentHandler     commands.AcceptAssignmentCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler
	createRiderHandler          commands.CreateRiderCommandHandler
	updateRiderLocationHandler  commands.UpdateRiderLocationCommandHandler

	// Query handlers
	getCartHandler             queries.GetCartQueryHandler
	getUnassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	changeItemQuantityHandler commands.ChangeItemQuantityCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	applyCouponHandler commands.ApplyCouponCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	dispatchAssignmentsHandler commands.DispatchAssignmentsCommandHandler,
	acceptAssignmentHandler commands.AcceptAssignmentCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	createRiderHandler commands.CreateRiderCommandHandler,
	updateRiderLocationHandler commands.UpdateRiderLocationCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getUnassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:          addCartItemHandler,
		changeItemQuantityHandler:   changeItemQuantityHandler,
		removeCartItemHandler:       removeCartItemHandler,
		applyCouponHandler:          applyCouponHandler,
		checkoutHandler:             checkoutHandler,
		changeOrderStatusHandler:    changeOrderStatusHandler,
		dispatchAssignmentsHandler:  dispatchAssignmentsHandler,
		acceptAssignmentHandler:     acceptAssignmentHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		createRiderHandler:          createRiderHandler,
		updateRiderLocationHandler:  updateRiderLocationHandler,
		getCartHandler:              getCartHandler,
		getUnassignedOrdersHandler:  getUnassignedOrdersHandler,
	}
}

// RegisterRoutes attaches the API to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/carts/:customerId/items", s.AddCartItem)
	v1.PATCH("/carts/:customerId/items/quantity", s.ChangeItemQuantity)
	v1.DELETE("/carts/:customerId/items/:menuItemRef/:variant", s.RemoveCartItem)
	v1.POST("/carts/:customerId/coupon", s.ApplyCoupon)
	v1.GET("/carts/:customerId", s.GetCart)

	v1.POST("/orders", s.Checkout)
	v1.PUT("/orders/:orderId/status", s.ChangeOrderStatus)
	v1.GET("/orders/unassigned", s.GetUnassignedOrders)

	v1.POST("/delivery/assign", s.DispatchAssignments)
	v1.POST("/delivery/accept", s.AcceptAssignment)
	v1.POST("/delivery/status", s.UpdateDeliveryStatus)

	v1.POST("/riders", s.CreateRider)
	v1.PUT("/riders/:riderId/location", s.UpdateRiderLocation)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// AddCartItem handles POST /api/v1/carts/:customerId/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	customerID, ok := pathUUID(ctx, "customerId")
	if !ok {
		return nil
	}

	var req AddCartItemRequest
	if !bind(ctx, &req) {
		return nil
	}

	menuItemRef, err := kernel.UUIDFromString(req.MenuItemRef)
	if err != nil {
		return badRequest(ctx, "invalid menuItemRef")
	}

	cmd, err := commands.NewAddCartItemCommand(customerID, menuItemRef, req.Quantity, req.IsHalfPlate, req.IsFullPlate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CartMutationResponse{
		Switched: result.Switched,
		Totals:   toTotalsResponse(result.Totals),
	})
}

// ChangeItemQuantity handles PATCH /api/v1/carts/:customerId/items/quantity.
func (s *Server) ChangeItemQuantity(ctx echo.Context) error {
	customerID, ok := pathUUID(ctx, "customerId")
	if !ok {
		return nil
	}

	var req ChangeQuantityRequest
	if !bind(ctx, &req) {
		return nil
	}

	menuItemRef, err := kernel.UUIDFromString(req.MenuItemRef)
	if err != nil {
		return badRequest(ctx, "invalid menuItemRef")
	}

	cmd, err := commands.NewChangeItemQuantityCommand(customerID, menuItemRef, req.IsHalfPlate, req.IsFullPlate, req.Action)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.changeItemQuantityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CartMutationResponse{Totals: toTotalsResponse(result.Totals)})
}

// RemoveCartItem handles DELETE /api/v1/carts/:customerId/items/:menuItemRef/:variant.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	customerID, ok := pathUUID(ctx, "customerId")
	if !ok {
		return nil
	}
	menuItemRef, ok := pathUUID(ctx, "menuItemRef")
	if !ok {
		return nil
	}
	variant, err := cart.PlateVariantFromString(ctx.Param("variant"))
	if err != nil {
		return badRequest(ctx, "invalid variant")
	}

	cmd, err := commands.NewRemoveCartItemCommand(
		customerID, menuItemRef, variant == cart.HalfPlate, variant == cart.FullPlate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CartMutationResponse{Totals: toTotalsResponse(result.Totals)})
}

// ApplyCoupon handles POST /api/v1/carts/:customerId/coupon.
func (s *Server) ApplyCoupon(ctx echo.Context) error {
	customerID, ok := pathUUID(ctx, "customerId")
	if !ok {
		return nil
	}

	var req ApplyCouponRequest
	if !bind(ctx, &req) {
		return nil
	}

	cmd, err := commands.NewApplyCouponCommand(customerID, req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.applyCouponHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CartMutationResponse{
		Applied: &result.Applied,
		Reason:  result.Reason,
		Totals:  toTotalsResponse(result.Totals),
	})
}

// GetCart handles GET /api/v1/carts/:customerId.
func (s *Server) GetCart(ctx echo.Context) error {
	customerID, ok := pathUUID(ctx, "customerId")
	if !ok {
		return nil
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	snapshot, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := CartResponse{
		CartID:     snapshot.CartID.String(),
		CustomerID: snapshot.CustomerID.String(),
		CouponCode: snapshot.CouponCode,
		Lines:      make([]CartLineResponse, len(snapshot.Lines)),
		Totals:     toTotalsResponse(snapshot.Totals),
		Version:    snapshot.Version,
	}
	if snapshot.RestaurantID != nil {
		response.RestaurantID = snapshot.RestaurantID.String()
	}
	for i, line := range snapshot.Lines {
		response.Lines[i] = CartLineResponse{
			MenuItemRef:    line.MenuItemRef.String(),
			Name:           line.Name,
			Variant:        line.Variant,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			FinalUnitPrice: line.FinalUnitPrice,
			LineTotal:      line.LineTotal,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Checkout handles POST /api/v1/orders.
func (s *Server) Checkout(ctx echo.Context) error {
	var req CheckoutRequest
	if !bind(ctx, &req) {
		return nil
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		var err error
		if orderID, err = kernel.UUIDFromString(req.OrderID); err != nil {
			return badRequest(ctx, "invalid orderId")
		}
	}
	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customerId")
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return badRequest(ctx, "invalid addressId")
	}

	cmd, err := commands.NewCheckoutCommand(orderID, customerID, addressID, req.PaymentMethod)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{
		OrderID: result.OrderID.String(),
		Totals:  toTotalsResponse(result.Totals),
	})
}

// ChangeOrderStatus handles PUT /api/v1/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, ok := pathUUID(ctx, "orderId")
	if !ok {
		return nil
	}

	var req ChangeOrderStatusRequest
	if !bind(ctx, &req) {
		return nil
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUnassignedOrders handles GET /api/v1/orders/unassigned.
func (s *Server) GetUnassignedOrders(ctx echo.Context) error {
	query := queries.NewGetUnassignedOrdersQuery()

	orders, err := s.getUnassignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]UnassignedOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = UnassignedOrderResponse{
			OrderID:       o.ID.String(),
			RestaurantID:  o.RestaurantID.String(),
			RestaurantLat: o.RestaurantLocation.Latitude(),
			RestaurantLon: o.RestaurantLocation.Longitude(),
			CustomerLat:   o.CustomerLocation.Latitude(),
			CustomerLon:   o.CustomerLocation.Longitude(),
			PaymentMethod: o.PaymentMethod,
			FinalAmount:   o.FinalAmount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DispatchAssignments handles POST /api/v1/delivery/assign.
func (s *Server) DispatchAssignments(ctx echo.Context) error {
	var req DispatchRequest
	if !bind(ctx, &req) {
		return nil
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid orderId")
	}

	cmd, err := commands.NewDispatchAssignmentsCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.dispatchAssignmentsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := DispatchResponse{
		Offers: make([]AssignmentResponse, len(result.Offers)),
		Reason: result.Reason,
	}
	for i, offer := range result.Offers {
		response.Offers[i] = toAssignmentResponse(offer)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptAssignment handles POST /api/v1/delivery/accept. A lost race answers
// 409 with the authoritative winner so the losing rider's client can show
// who holds the order.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	var req AcceptAssignmentRequest
	if !bind(ctx, &req) {
		return nil
	}

	assignmentID, err := kernel.UUIDFromString(req.AssignmentID)
	if err != nil {
		return badRequest(ctx, "invalid assignmentId")
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "invalid riderId")
	}

	cmd, err := commands.NewAcceptAssignmentCommand(assignmentID, riderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.acceptAssignmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyHandled) && result.Winner != nil {
			winner := toAssignmentResponse(result.Winner)
			return ctx.JSON(http.StatusConflict, ErrorResponse{
				Code:    http.StatusConflict,
				Message: err.Error(),
				Winner:  &winner,
			})
		}
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(result.Winner))
}

// UpdateDeliveryStatus handles POST /api/v1/delivery/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	var req DeliveryStatusRequest
	if !bind(ctx, &req) {
		return nil
	}

	assignmentID, err := kernel.UUIDFromString(req.AssignmentID)
	if err != nil {
		return badRequest(ctx, "invalid assignmentId")
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "invalid riderId")
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(assignmentID, riderID, req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateRider handles POST /api/v1/riders.
func (s *Server) CreateRider(ctx echo.Context) error {
	var req CreateRiderRequest
	if !bind(ctx, &req) {
		return nil
	}

	riderID := kernel.NewUUID()
	if req.RiderID != "" {
		var err error
		if riderID, err = kernel.UUIDFromString(req.RiderID); err != nil {
			return badRequest(ctx, "invalid riderId")
		}
	}

	cmd, err := commands.NewCreateRiderCommand(riderID, req.Name)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateRiderResponse{RiderID: riderID.String()})
}

// UpdateRiderLocation handles PUT /api/v1/riders/:riderId/location.
func (s *Server) UpdateRiderLocation(ctx echo.Context) error {
	riderID, ok := pathUUID(ctx, "riderId")
	if !ok {
		return nil
	}

	var req UpdateRiderLocationRequest
	if !bind(ctx, &req) {
		return nil
	}

	cmd, err := commands.NewUpdateRiderLocationCommand(riderID, req.Lat, req.Lon)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateRiderLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// bind decodes and validates the request body, answering 400 itself when
// either step fails. A false return means the response is already written.
func bind(ctx echo.Context, req any) bool {
	if err := ctx.Bind(req); err != nil {
		_ = badRequest(ctx, "invalid request body")
		return false
	}
	if err := ctx.Validate(req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = badRequest(ctx, toMessage(httpErr))
		} else {
			_ = badRequest(ctx, "invalid request body")
		}
		return false
	}
	return true
}

// pathUUID parses a path parameter, answering 400 itself on malformed input.
// A false return means the response is already written.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, bool) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		_ = badRequest(ctx, "invalid "+name)
		return kernel.UUID{}, false
	}
	return id, true
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func toMessage(httpErr *echo.HTTPError) string {
	if msg, ok := httpErr.Message.(string); ok {
		return msg
	}
	return "invalid request body"
}

func toTotalsResponse(totals cart.Totals) TotalsResponse {
	return TotalsResponse{
		TotalItems:     totals.TotalItems,
		SubTotal:       totals.SubTotal,
		TotalDiscount:  totals.TotalDiscount,
		GSTAmount:      totals.GSTAmount,
		DeliveryCharge: totals.DeliveryCharge,
		PlatformCharge: totals.PlatformCharge,
		PackingCharge:  totals.PackingCharge,
		CouponDiscount: totals.CouponDiscount,
		FinalAmount:    totals.FinalAmount,
	}
}

func toAssignmentResponse(offer *assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:     offer.ID().String(),
		OrderID:          offer.OrderID().String(),
		RiderID:          offer.RiderID().String(),
		PickupDistanceKm: offer.PickupDistanceKm(),
		DropDistanceKm:   offer.DropDistanceKm(),
		Status:           offer.Status().String(),
	}
}
