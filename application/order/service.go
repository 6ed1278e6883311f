/*
Package order orchestrates the order business processes: placement with a
price snapshot and the status lifecycle with its stock coupling.

Application services never publish events directly. The unit of work
collects events from registered aggregates and writes them to the outbox
table inside the same transaction; the outbox worker relays them later.
Customer notifications are dispatched only after a successful commit, and
only best-effort.
*/
package order

import (
	"context"
	"strings"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/pricing"
	"storefront/domain/shared"
	"storefront/domain/shipping"
	"storefront/notification"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService coordinates order placement and lifecycle.
type ApplicationService struct {
	orderRepo   order.Repository
	productRepo catalog.Repository
	resolver    *pricing.Resolver
	uowFactory  shared.UnitOfWorkFactory
	dispatcher  notification.Dispatcher
}

func NewApplicationService(
	orderRepo order.Repository,
	productRepo catalog.Repository,
	resolver *pricing.Resolver,
	uowFactory shared.UnitOfWorkFactory,
	dispatcher notification.Dispatcher,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		resolver:    resolver,
		uowFactory:  uowFactory,
		dispatcher:  dispatcher,
	}
}

// PlaceOrderRequest is the storefront checkout payload.
type PlaceOrderRequest struct {
	ProductID      string `json:"product_id"`
	VariantSku     string `json:"variant_sku"`
	Quantity       int    `json:"quantity"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	CustomerEmail  string `json:"customer_email"`
	Region         string `json:"region"`
	DeliveryMethod string `json:"delivery_method"`
	Address        string `json:"address"`
	Note           string `json:"note"`
}

// OrderResponse is the order DTO returned to clients.
type OrderResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	VariantSku     string    `json:"variant_sku"`
	Quantity       int       `json:"quantity"`
	UnitPrice      int64     `json:"unit_price"`
	ShippingFee    int64     `json:"shipping_fee"`
	TotalPrice     int64     `json:"total_price"`
	CustomerName   string    `json:"customer_name"`
	CustomerPhone  string    `json:"customer_phone"`
	CustomerEmail  string    `json:"customer_email,omitempty"`
	Region         string    `json:"region"`
	DeliveryMethod string    `json:"delivery_method"`
	Address        string    `json:"address"`
	Note           string    `json:"note,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListOrdersRequest filters the admin order listing.
type ListOrdersRequest struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"limit"`
}

// ListOrdersResponse is one page of orders.
type ListOrdersResponse struct {
	Orders   []*OrderResponse `json:"orders"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// missingFields lists required placement fields absent from the request.
func missingFields(req PlaceOrderRequest) []string {
	var missing []string
	if strings.TrimSpace(req.ProductID) == "" {
		missing = append(missing, "product_id")
	}
	if strings.TrimSpace(req.VariantSku) == "" {
		missing = append(missing, "variant_sku")
	}
	if req.Quantity == 0 {
		missing = append(missing, "quantity")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		missing = append(missing, "customer_phone")
	}
	if strings.TrimSpace(req.Region) == "" {
		missing = append(missing, "region")
	}
	if strings.TrimSpace(req.DeliveryMethod) == "" {
		missing = append(missing, "delivery_method")
	}
	if strings.TrimSpace(req.Address) == "" {
		missing = append(missing, "address")
	}
	return missing
}

// PlaceOrder validates the request, resolves the price snapshot, and
// persists the order in status pending. Stock is not touched at placement;
// that happens on confirmation.
func (s *ApplicationService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return nil, apperrors.Validation("missing required fields: " + strings.Join(missing, ", "))
	}

	phone, err := order.ValidatePhone(req.CustomerPhone)
	if err != nil {
		return nil, err
	}
	method, err := shipping.ParseDeliveryMethod(req.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	var quote pricing.Quote
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		quote, err = s.resolver.Resolve(ctx, req.ProductID, req.VariantSku, req.Quantity, req.Region, method)
		if err != nil {
			return err
		}

		o, err = order.NewOrder(order.NewOrderParams{
			ProductID:      req.ProductID,
			ProductName:    quote.ProductName,
			VariantSku:     req.VariantSku,
			Quantity:       req.Quantity,
			UnitPrice:      quote.UnitPrice,
			ShippingFee:    quote.ShippingFee,
			TotalPrice:     quote.TotalPrice,
			CustomerName:   req.CustomerName,
			CustomerPhone:  phone,
			CustomerEmail:  req.CustomerEmail,
			Region:         shipping.CanonicalName(req.Region),
			DeliveryMethod: method,
			Address:        req.Address,
			Note:           req.Note,
		})
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyPlacement(o, quote)
	return convertToResponse(o), nil
}

// UpdateStatus moves an order to the target status, adjusting variant
// stock per the transition inside one transaction. Same-status targets and
// terminal origins are no-ops returning the order unchanged.
func (s *ApplicationService) UpdateStatus(ctx context.Context, orderID string, rawStatus string) (*OrderResponse, error) {
	target, err := order.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	var changed bool

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		// Reloaded on every retry attempt so versions stay fresh.
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		prev := o.Status()
		changed = o.ChangeStatus(target)
		if !changed {
			return nil
		}

		switch order.StockImpactOf(prev, target) {
		case order.StockDecrement:
			if err := s.adjustStock(ctx, uow, o, true); err != nil {
				return err
			}
		case order.StockRestore:
			if err := s.adjustStock(ctx, uow, o, false); err != nil {
				return err
			}
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifyStatus(o)
	}
	return convertToResponse(o), nil
}

// adjustStock loads the ordered product and applies the stock mutation.
// The product save precedes the order save; its version guard is what
// keeps two concurrent confirmations from both committing.
func (s *ApplicationService) adjustStock(ctx context.Context, uow shared.UnitOfWork, o *order.Order, decrement bool) error {
	product, err := s.productRepo.FindByID(ctx, o.ProductID())
	if err != nil {
		return err
	}

	if decrement {
		err = product.DecrementStock(o.VariantSku(), o.Quantity())
	} else {
		err = product.RestoreStock(o.VariantSku(), o.Quantity())
	}
	if err != nil {
		return err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	uow.RegisterDirty(product)
	return nil
}

// GetOrder returns one order by ID.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return convertToResponse(o), nil
}

// ListOrders returns a page of orders for the admin view.
func (s *ApplicationService) ListOrders(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	if req.Status != "" && req.Status != "all" {
		if _, err := order.ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	orders, total, err := s.orderRepo.List(ctx, order.ListFilter{
		Status:   req.Status,
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = convertToResponse(o)
	}
	return &ListOrdersResponse{
		Orders:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// notifyPlacement sends the confirmation email after commit. Failures are
// logged and never surface to the caller.
func (s *ApplicationService) notifyPlacement(o *order.Order, quote pricing.Quote) {
	if s.dispatcher == nil || o.CustomerEmail() == "" {
		return
	}
	notice := notification.PlacementNotice{
		OrderID:       o.ID(),
		CustomerName:  o.CustomerName(),
		CustomerEmail: o.CustomerEmail(),
		ProductName:   quote.ProductName,
		VariantName:   quote.VariantName,
		Quantity:      o.Quantity(),
		TotalPrice:    o.TotalPrice(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.dispatcher.SendPlacementNotice(ctx, notice); err != nil {
			logger.Warn("Failed to send placement notice",
				zap.String("order_id", notice.OrderID),
				zap.Error(err))
		}
	}()
}

func (s *ApplicationService) notifyStatus(o *order.Order) {
	if s.dispatcher == nil || o.CustomerEmail() == "" {
		return
	}
	notice := notification.StatusNotice{
		OrderID:       o.ID(),
		CustomerName:  o.CustomerName(),
		CustomerEmail: o.CustomerEmail(),
		NewStatus:     string(o.Status()),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.dispatcher.SendStatusNotice(ctx, notice); err != nil {
			logger.Warn("Failed to send status notice",
				zap.String("order_id", notice.OrderID),
				zap.Error(err))
		}
	}()
}

func convertToResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:             o.ID(),
		ProductID:      o.ProductID(),
		VariantSku:     o.VariantSku(),
		Quantity:       o.Quantity(),
		UnitPrice:      o.UnitPrice(),
		ShippingFee:    o.ShippingFee(),
		TotalPrice:     o.TotalPrice(),
		CustomerName:   o.CustomerName(),
		CustomerPhone:  o.CustomerPhone(),
		CustomerEmail:  o.CustomerEmail(),
		Region:         o.Region(),
		DeliveryMethod: string(o.DeliveryMethod()),
		Address:        o.Address(),
		Note:           o.Note(),
		Status:         string(o.Status()),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}
