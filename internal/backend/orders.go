package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// CreateOrderInput is the payload for /order/create.
type CreateOrderInput struct {
	Items   []models.OrderItem `json:"items"`
	Amount  float64            `json:"amount"`
	Address string             `json:"address,omitempty"`

	// ClientReference is a storefront-minted id that lets us correlate the
	// order across retries.
	ClientReference string `json:"clientReference,omitempty"`
}

// CreateOrder creates an order and returns the hosted-checkout session. The
// session id is handed to the payment widget by the frontend; capturing the
// payment itself is the widget's job, not ours.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (models.CheckoutSession, error) {
	var response struct {
		PaymentSessionID string `json:"paymentSessionId"`
		Order            struct {
			Cashfree struct {
				OrderID string `json:"orderId"`
			} `json:"cashfree"`
		} `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, c.endpoints.OrderCreate(), nil, input, &response); err != nil {
		return models.CheckoutSession{}, err
	}
	if response.PaymentSessionID == "" {
		return models.CheckoutSession{}, fmt.Errorf("%w: create-order response carried no payment session", ErrUnexpectedShape)
	}
	return models.CheckoutSession{
		OrderID:          response.Order.Cashfree.OrderID,
		PaymentSessionID: response.PaymentSessionID,
	}, nil
}

// VerifyPayment asks the backend to confirm payment capture for an order.
func (c *Client) VerifyPayment(ctx context.Context, orderID string) error {
	body := map[string]string{"orderId": orderID}
	return c.do(ctx, http.MethodPost, c.endpoints.OrderVerify(), nil, body, nil)
}

// GetUserOrders lists the authenticated user's orders.
func (c *Client) GetUserOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, c.endpoints.OrdersUser(), nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderDetails fetches a single order.
func (c *Client) GetOrderDetails(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, c.endpoints.OrderDetail(orderID), nil, nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}
