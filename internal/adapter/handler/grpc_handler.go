package handler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/core/service"
)

type GRPCHandler struct {
	inventory        *service.InventoryService
	defaultThreshold decimal.Decimal
}

func NewGRPCHandler(inventory *service.InventoryService, defaultThreshold decimal.Decimal) *GRPCHandler {
	return &GRPCHandler{inventory: inventory, defaultThreshold: defaultThreshold}
}

func (h *GRPCHandler) AddItem(ctx context.Context, req *AddItemRequest) (*MutationResponse, error) {
	qty, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return &MutationResponse{Success: false, Message: "quantity must be numeric"}, nil
	}

	journal := &service.LineCollector{}
	if err := h.inventory.AddItem(req.Item, qty, journal); err != nil {
		return mutationFailure(err), nil
	}

	total, _ := h.inventory.Quantity(req.Item)
	return &MutationResponse{
		Success:  true,
		Message:  "stock added",
		Quantity: total.String(),
		Journal:  journal.Lines(),
	}, nil
}

func (h *GRPCHandler) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*MutationResponse, error) {
	qty, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return &MutationResponse{Success: false, Message: "quantity must be numeric"}, nil
	}

	if err := h.inventory.RemoveItem(req.Item, qty); err != nil {
		return mutationFailure(err), nil
	}

	left, _ := h.inventory.Quantity(req.Item)
	return &MutationResponse{
		Success:  true,
		Message:  "stock removed",
		Quantity: left.String(),
	}, nil
}

func (h *GRPCHandler) GetQuantity(ctx context.Context, req *GetQuantityRequest) (*GetQuantityResponse, error) {
	qty, err := h.inventory.Quantity(req.Item)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &GetQuantityResponse{Item: req.Item, Quantity: qty.String()}, nil
}

func (h *GRPCHandler) ListLowItems(ctx context.Context, req *ListLowItemsRequest) (*ListLowItemsResponse, error) {
	threshold := h.defaultThreshold
	if req.Threshold != "" {
		parsed, err := decimal.NewFromString(req.Threshold)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "threshold must be numeric")
		}
		threshold = parsed
	}
	return &ListLowItemsResponse{Items: h.inventory.LowItems(threshold)}, nil
}

func (h *GRPCHandler) Report(ctx context.Context, req *ReportRequest) (*ReportResponse, error) {
	return h.report(), nil
}

func (h *GRPCHandler) SaveSnapshot(ctx context.Context, req *ReportRequest) (*ReportResponse, error) {
	h.inventory.Save(ctx)
	return h.report(), nil
}

func (h *GRPCHandler) LoadSnapshot(ctx context.Context, req *ReportRequest) (*ReportResponse, error) {
	h.inventory.Load(ctx)
	return h.report(), nil
}

func (h *GRPCHandler) report() *ReportResponse {
	items := h.inventory.Items()
	resp := &ReportResponse{Items: make([]ReportItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, ReportItem{Name: it.Name, Quantity: it.Quantity.String()})
	}
	return resp
}

func mutationFailure(err error) *MutationResponse {
	message := "internal error"
	if domain.IsMutationError(err) {
		message = err.Error()
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		message = "insufficient stock"
	}
	return &MutationResponse{Success: false, Message: message}
}

// UnaryLoggingInterceptor logs every call with a request id.
func UnaryLoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("grpc request",
			zap.String("request_id", uuid.NewString()),
			zap.String("method", info.FullMethod),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return resp, err
	}
}
