package handler

import (
	"context"

	"google.golang.org/grpc"
)

const inventoryServiceName = "inventory.v1.InventoryService"

type AddItemRequest struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

type RemoveItemRequest struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

type MutationResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Quantity string   `json:"quantity,omitempty"`
	Journal  []string `json:"journal,omitempty"`
}

type GetQuantityRequest struct {
	Item string `json:"item"`
}

type GetQuantityResponse struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

type ListLowItemsRequest struct {
	// Threshold is a decimal string; empty selects the server default.
	Threshold string `json:"threshold,omitempty"`
}

type ListLowItemsResponse struct {
	Items []string `json:"items"`
}

type ReportRequest struct{}

type ReportItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

type ReportResponse struct {
	Items []ReportItem `json:"items"`
}

// InventoryServer is the server API for inventory.v1.InventoryService.
type InventoryServer interface {
	AddItem(context.Context, *AddItemRequest) (*MutationResponse, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*MutationResponse, error)
	GetQuantity(context.Context, *GetQuantityRequest) (*GetQuantityResponse, error)
	ListLowItems(context.Context, *ListLowItemsRequest) (*ListLowItemsResponse, error)
	Report(context.Context, *ReportRequest) (*ReportResponse, error)
	SaveSnapshot(context.Context, *ReportRequest) (*ReportResponse, error)
	LoadSnapshot(context.Context, *ReportRequest) (*ReportResponse, error)
}

var inventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: inventoryServiceName,
	HandlerType: (*InventoryServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("AddItem", InventoryServer.AddItem),
		unaryMethod("RemoveItem", InventoryServer.RemoveItem),
		unaryMethod("GetQuantity", InventoryServer.GetQuantity),
		unaryMethod("ListLowItems", InventoryServer.ListLowItems),
		unaryMethod("Report", InventoryServer.Report),
		unaryMethod("SaveSnapshot", InventoryServer.SaveSnapshot),
		unaryMethod("LoadSnapshot", InventoryServer.LoadSnapshot),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterInventoryServer(s grpc.ServiceRegistrar, srv InventoryServer) {
	s.RegisterService(&inventoryServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + inventoryServiceName + "/" + name
}

func unaryMethod[Req, Resp any](name string, call func(InventoryServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(InventoryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(InventoryServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// InventoryClient calls inventory.v1.InventoryService over a client connection.
type InventoryClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryClient(cc grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{cc: cc}
}

func (c *InventoryClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	out := new(MutationResponse)
	if err := c.invoke(ctx, "AddItem", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	out := new(MutationResponse)
	if err := c.invoke(ctx, "RemoveItem", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) GetQuantity(ctx context.Context, in *GetQuantityRequest, opts ...grpc.CallOption) (*GetQuantityResponse, error) {
	out := new(GetQuantityResponse)
	if err := c.invoke(ctx, "GetQuantity", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) ListLowItems(ctx context.Context, in *ListLowItemsRequest, opts ...grpc.CallOption) (*ListLowItemsResponse, error) {
	out := new(ListLowItemsResponse)
	if err := c.invoke(ctx, "ListLowItems", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) Report(ctx context.Context, opts ...grpc.CallOption) (*ReportResponse, error) {
	out := new(ReportResponse)
	if err := c.invoke(ctx, "Report", &ReportRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) SaveSnapshot(ctx context.Context, opts ...grpc.CallOption) (*ReportResponse, error) {
	out := new(ReportResponse)
	if err := c.invoke(ctx, "SaveSnapshot", &ReportRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) LoadSnapshot(ctx context.Context, opts ...grpc.CallOption) (*ReportResponse, error) {
	out := new(ReportResponse)
	if err := c.invoke(ctx, "LoadSnapshot", &ReportRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, fullMethod(method), in, out, opts...)
}
