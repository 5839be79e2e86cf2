package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"certshop/internal/delivery/http/middleware"
	"certshop/internal/delivery/http/response"
	"certshop/internal/domain/entity"
	"certshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler holds dependencies for shopping cart handlers
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddItemRequest represents the request body for adding a certification to the cart
type AddItemRequest struct {
	LicenseID string `json:"license_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest represents the optional checkout body
type CheckoutRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// OrderItemView is the public shape of a cart line item.
type OrderItemView struct {
	ID               int64     `json:"id"`
	LicenseID        string    `json:"license_id"`
	LicenseName      string    `json:"license_name"`
	Quantity         int       `json:"quantity"`
	PriceAtOrderTime int64     `json:"price_at_order_time"`
	Subtotal         int64     `json:"subtotal"`
	CreatedDate      time.Time `json:"created_date"`
}

// OrderView is the public shape of an order.
type OrderView struct {
	OrderID      int64            `json:"order_id"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	Open         bool             `json:"open"`
	TotalAmount  int64            `json:"total_amount"`
	Comment      string           `json:"comment"`
	CreatedDate  time.Time        `json:"created_date"`
	UpdatedDate  time.Time        `json:"updated_date"`
	Items        []*OrderItemView `json:"items"`
}

// NewOrderView converts an order entity into its public shape.
func NewOrderView(order *entity.Order) *OrderView {
	if order == nil {
		return nil
	}

	items := make([]*OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, &OrderItemView{
			ID:               item.ID,
			LicenseID:        item.LicenseID,
			LicenseName:      item.LicenseName,
			Quantity:         item.Quantity,
			PriceAtOrderTime: item.PriceAtOrderTime,
			Subtotal:         item.Subtotal(),
			CreatedDate:      item.CreatedDate,
		})
	}

	return &OrderView{
		OrderID:      order.OrderID,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Open:         order.Status,
		TotalAmount:  order.TotalAmount,
		Comment:      order.Comment,
		CreatedDate:  order.CreatedDate,
		UpdatedDate:  order.UpdatedDate,
		Items:        items,
	}
}

// AddItem puts a certification into the logged-in customer's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "購物車資料格式錯誤")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.cartUC.AddItem(c.Request().Context(), &usecase.AddItemInput{
		CustomerID: middleware.CustomerID(c),
		LicenseID:  req.LicenseID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, NewOrderView(output.Order), "已加入購物車")
}

// ViewCart returns the open cart of the customer named in the path.
func (h *CartHandler) ViewCart(c echo.Context) error {
	customerID, err := h.pathCustomerID(c)
	if err != nil {
		return err
	}

	output, err := h.cartUC.ViewCart(c.Request().Context(), customerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, NewOrderView(output.Order), "")
}

// RemoveItem deletes a line item from the open cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	customerID, err := h.pathCustomerID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ITEM_ID", "商品編號格式錯誤")
	}

	output, err := h.cartUC.RemoveItem(c.Request().Context(), customerID, itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, NewOrderView(output.Order), "已自購物車移除")
}

// Checkout closes the open cart.
func (h *CartHandler) Checkout(c echo.Context) error {
	customerID, err := h.pathCustomerID(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "結帳資料格式錯誤")
	}

	output, err := h.cartUC.Checkout(c.Request().Context(), &usecase.CheckoutInput{
		CustomerID: customerID,
		Comment:    req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, NewOrderView(output.Order), "訂單已成立")
}

// pathCustomerID reads the customer ID from the path and rejects requests
// touching another customer's cart.
func (h *CartHandler) pathCustomerID(c echo.Context) (string, error) {
	customerID := c.Param("customerId")
	if customerID == "" {
		return "", response.BadRequest(c, "MISSING_CUSTOMER_ID", "缺少顧客編號")
	}

	if customerID != middleware.CustomerID(c) {
		return "", response.Forbidden(c, "FORBIDDEN", "存取被拒絕")
	}

	return customerID, nil
}
