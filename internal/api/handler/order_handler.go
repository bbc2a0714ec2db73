package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/webshop-api/internal/api/metrics"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
)

// OrderHandler serves /api/orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type snapshotRequest struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type orderItemRequest struct {
	Product  snapshotRequest `json:"product"`
	Quantity float64         `json:"quantity"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

// List handles GET /api/orders. Customers only see their own orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	viewer, err := ctxUser(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListFor(c.Request().Context(), viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id. Orders of other customers are reported
// as not found.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	viewer, err := ctxUser(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), viewer, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Create handles POST /api/orders for customers.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createOrderRequest  true  "Order lines"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	customer, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			ProductID:   it.Product.ID,
			Name:        it.Product.Name,
			Price:       it.Product.Price,
			Description: it.Product.Description,
			Quantity:    it.Quantity,
		})
	}

	order, err := h.service.Create(c.Request().Context(), customer, items)
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderLineItems.Observe(float64(len(order.Items)))
	return c.JSON(http.StatusCreated, order)
}
