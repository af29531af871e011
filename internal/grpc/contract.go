package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"semaphore/my-espace/internal/portal"
)

const (
	serviceName    = "myespace.portal.v1.PortalQueryService"
	jsonCodecName  = "json"
	methodSchedule = "/" + serviceName + "/GetSchedule"
	methodNotes    = "/" + serviceName + "/GetNotes"
	methodAlerts   = "/" + serviceName + "/GetAlerts"
)

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type ScheduleRequest struct {
	Day        string `json:"day"`
	WeekOffset int32  `json:"week_offset"`
}

type NotesRequest struct {
	Filter string `json:"filter"`
}

type AlertsRequest struct {
	Category string `json:"category"`
}

type PortalQueryServer interface {
	GetSchedule(ctx context.Context, in *ScheduleRequest) (*portal.SchedulePage, error)
	GetNotes(ctx context.Context, in *NotesRequest) (*portal.NotesPage, error)
	GetAlerts(ctx context.Context, in *AlertsRequest) (*portal.AlertsPage, error)
}

type PortalQueryClient interface {
	GetSchedule(ctx context.Context, in *ScheduleRequest, opts ...grpc.CallOption) (*portal.SchedulePage, error)
	GetNotes(ctx context.Context, in *NotesRequest, opts ...grpc.CallOption) (*portal.NotesPage, error)
	GetAlerts(ctx context.Context, in *AlertsRequest, opts ...grpc.CallOption) (*portal.AlertsPage, error)
}

type portalQueryClient struct {
	conn grpc.ClientConnInterface
}

func NewPortalQueryClient(conn grpc.ClientConnInterface) PortalQueryClient {
	return &portalQueryClient{conn: conn}
}

func (c *portalQueryClient) GetSchedule(ctx context.Context, in *ScheduleRequest, opts ...grpc.CallOption) (*portal.SchedulePage, error) {
	out := &portal.SchedulePage{}
	if err := c.conn.Invoke(ctx, methodSchedule, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *portalQueryClient) GetNotes(ctx context.Context, in *NotesRequest, opts ...grpc.CallOption) (*portal.NotesPage, error) {
	out := &portal.NotesPage{}
	if err := c.conn.Invoke(ctx, methodNotes, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *portalQueryClient) GetAlerts(ctx context.Context, in *AlertsRequest, opts ...grpc.CallOption) (*portal.AlertsPage, error) {
	out := &portal.AlertsPage{}
	if err := c.conn.Invoke(ctx, methodAlerts, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withJSON(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(jsonCodecName)}, opts...)
}

// unary adapts one typed method to a grpc.MethodDesc handler.
func unary[Req any, Resp any](fullMethod string, call func(PortalQueryServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		impl := srv.(PortalQueryServer)
		if interceptor == nil {
			return call(impl, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(impl, ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterPortalQueryServer(server grpc.ServiceRegistrar, impl PortalQueryServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*PortalQueryServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetSchedule", Handler: unary(methodSchedule, PortalQueryServer.GetSchedule)},
			{MethodName: "GetNotes", Handler: unary(methodNotes, PortalQueryServer.GetNotes)},
			{MethodName: "GetAlerts", Handler: unary(methodAlerts, PortalQueryServer.GetAlerts)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "myespace/portal/v1/portal.proto",
	}, impl)
}
