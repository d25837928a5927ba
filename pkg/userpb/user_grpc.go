package userpb

import (
	"context"

	"heroacademy/pkg/rpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "heroacademy.user.v1.UserService"

const (
	methodGetProfile           = "/" + ServiceName + "/GetProfile"
	methodCreateProfile        = "/" + ServiceName + "/CreateProfile"
	methodFindByEmail          = "/" + ServiceName + "/FindByEmail"
	methodUpdateHero           = "/" + ServiceName + "/UpdateHero"
	methodSetPhoto             = "/" + ServiceName + "/SetPhoto"
	methodActivateLicense      = "/" + ServiceName + "/ActivateLicense"
	methodCompleteMission      = "/" + ServiceName + "/CompleteMission"
	methodPurchase             = "/" + ServiceName + "/Purchase"
	methodEquip                = "/" + ServiceName + "/Equip"
	methodListMissions         = "/" + ServiceName + "/ListMissions"
	methodGetLeaderboard       = "/" + ServiceName + "/GetLeaderboard"
	methodSetParentPin         = "/" + ServiceName + "/SetParentPin"
	methodVerifyParentPin      = "/" + ServiceName + "/VerifyParentPin"
	methodUpdateParentSettings = "/" + ServiceName + "/UpdateParentSettings"
	methodMarkRewardDelivered  = "/" + ServiceName + "/MarkRewardDelivered"
	methodWatchProfile         = "/" + ServiceName + "/WatchProfile"
)

// ProfileStream is the server side of WatchProfile.
type ProfileStream interface {
	Send(*ProfileSnapshot) error
	Context() context.Context
}

type UserServiceServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	CreateProfile(context.Context, *CreateProfileRequest) (*CreateProfileResponse, error)
	FindByEmail(context.Context, *FindByEmailRequest) (*ProfileResponse, error)
	UpdateHero(context.Context, *UpdateHeroRequest) (*ProfileResponse, error)
	SetPhoto(context.Context, *SetPhotoRequest) (*SetPhotoResponse, error)
	ActivateLicense(context.Context, *ActivateLicenseRequest) (*ActivateLicenseResponse, error)
	CompleteMission(context.Context, *CompleteMissionRequest) (*CompleteMissionResponse, error)
	Purchase(context.Context, *PurchaseRequest) (*ProfileResponse, error)
	Equip(context.Context, *EquipRequest) (*EquipResponse, error)
	ListMissions(context.Context, *ListMissionsRequest) (*ListMissionsResponse, error)
	GetLeaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error)
	SetParentPin(context.Context, *SetParentPinRequest) (*SuccessResponse, error)
	VerifyParentPin(context.Context, *VerifyParentPinRequest) (*SuccessResponse, error)
	UpdateParentSettings(context.Context, *UpdateParentSettingsRequest) (*ProfileResponse, error)
	MarkRewardDelivered(context.Context, *MarkRewardDeliveredRequest) (*ProfileResponse, error)
	WatchProfile(*WatchProfileRequest, ProfileStream) error
}

// UnimplementedUserServiceServer can be embedded to satisfy the interface.
type UnimplementedUserServiceServer struct{}

func (UnimplementedUserServiceServer) GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedUserServiceServer) CreateProfile(context.Context, *CreateProfileRequest) (*CreateProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProfile not implemented")
}
func (UnimplementedUserServiceServer) FindByEmail(context.Context, *FindByEmailRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindByEmail not implemented")
}
func (UnimplementedUserServiceServer) UpdateHero(context.Context, *UpdateHeroRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateHero not implemented")
}
func (UnimplementedUserServiceServer) SetPhoto(context.Context, *SetPhotoRequest) (*SetPhotoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetPhoto not implemented")
}
func (UnimplementedUserServiceServer) ActivateLicense(context.Context, *ActivateLicenseRequest) (*ActivateLicenseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ActivateLicense not implemented")
}
func (UnimplementedUserServiceServer) CompleteMission(context.Context, *CompleteMissionRequest) (*CompleteMissionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteMission not implemented")
}
func (UnimplementedUserServiceServer) Purchase(context.Context, *PurchaseRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Purchase not implemented")
}
func (UnimplementedUserServiceServer) Equip(context.Context, *EquipRequest) (*EquipResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Equip not implemented")
}
func (UnimplementedUserServiceServer) ListMissions(context.Context, *ListMissionsRequest) (*ListMissionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMissions not implemented")
}
func (UnimplementedUserServiceServer) GetLeaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLeaderboard not implemented")
}
func (UnimplementedUserServiceServer) SetParentPin(context.Context, *SetParentPinRequest) (*SuccessResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetParentPin not implemented")
}
func (UnimplementedUserServiceServer) VerifyParentPin(context.Context, *VerifyParentPinRequest) (*SuccessResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyParentPin not implemented")
}
func (UnimplementedUserServiceServer) UpdateParentSettings(context.Context, *UpdateParentSettingsRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateParentSettings not implemented")
}
func (UnimplementedUserServiceServer) MarkRewardDelivered(context.Context, *MarkRewardDeliveredRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkRewardDelivered not implemented")
}
func (UnimplementedUserServiceServer) WatchProfile(*WatchProfileRequest, ProfileStream) error {
	return status.Error(codes.Unimplemented, "method WatchProfile not implemented")
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProfile", Handler: rpc.Unary(methodGetProfile, UserServiceServer.GetProfile)},
		{MethodName: "CreateProfile", Handler: rpc.Unary(methodCreateProfile, UserServiceServer.CreateProfile)},
		{MethodName: "FindByEmail", Handler: rpc.Unary(methodFindByEmail, UserServiceServer.FindByEmail)},
		{MethodName: "UpdateHero", Handler: rpc.Unary(methodUpdateHero, UserServiceServer.UpdateHero)},
		{MethodName: "SetPhoto", Handler: rpc.Unary(methodSetPhoto, UserServiceServer.SetPhoto)},
		{MethodName: "ActivateLicense", Handler: rpc.Unary(methodActivateLicense, UserServiceServer.ActivateLicense)},
		{MethodName: "CompleteMission", Handler: rpc.Unary(methodCompleteMission, UserServiceServer.CompleteMission)},
		{MethodName: "Purchase", Handler: rpc.Unary(methodPurchase, UserServiceServer.Purchase)},
		{MethodName: "Equip", Handler: rpc.Unary(methodEquip, UserServiceServer.Equip)},
		{MethodName: "ListMissions", Handler: rpc.Unary(methodListMissions, UserServiceServer.ListMissions)},
		{MethodName: "GetLeaderboard", Handler: rpc.Unary(methodGetLeaderboard, UserServiceServer.GetLeaderboard)},
		{MethodName: "SetParentPin", Handler: rpc.Unary(methodSetParentPin, UserServiceServer.SetParentPin)},
		{MethodName: "VerifyParentPin", Handler: rpc.Unary(methodVerifyParentPin, UserServiceServer.VerifyParentPin)},
		{MethodName: "UpdateParentSettings", Handler: rpc.Unary(methodUpdateParentSettings, UserServiceServer.UpdateParentSettings)},
		{MethodName: "MarkRewardDelivered", Handler: rpc.Unary(methodMarkRewardDelivered, UserServiceServer.MarkRewardDelivered)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchProfile",
			ServerStreams: true,
			Handler: rpc.ServerStreaming(func(s UserServiceServer, req *WatchProfileRequest, stream rpc.ServerStream[ProfileSnapshot]) error {
				return s.WatchProfile(req, stream)
			}),
		},
	},
	Metadata: "user.proto",
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// ProfileStreamClient is the client side of WatchProfile.
type ProfileStreamClient interface {
	Recv() (*ProfileSnapshot, error)
}

type UserServiceClient interface {
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*CreateProfileResponse, error)
	FindByEmail(ctx context.Context, in *FindByEmailRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	UpdateHero(ctx context.Context, in *UpdateHeroRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	SetPhoto(ctx context.Context, in *SetPhotoRequest, opts ...grpc.CallOption) (*SetPhotoResponse, error)
	ActivateLicense(ctx context.Context, in *ActivateLicenseRequest, opts ...grpc.CallOption) (*ActivateLicenseResponse, error)
	CompleteMission(ctx context.Context, in *CompleteMissionRequest, opts ...grpc.CallOption) (*CompleteMissionResponse, error)
	Purchase(ctx context.Context, in *PurchaseRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	Equip(ctx context.Context, in *EquipRequest, opts ...grpc.CallOption) (*EquipResponse, error)
	ListMissions(ctx context.Context, in *ListMissionsRequest, opts ...grpc.CallOption) (*ListMissionsResponse, error)
	GetLeaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error)
	SetParentPin(ctx context.Context, in *SetParentPinRequest, opts ...grpc.CallOption) (*SuccessResponse, error)
	VerifyParentPin(ctx context.Context, in *VerifyParentPinRequest, opts ...grpc.CallOption) (*SuccessResponse, error)
	UpdateParentSettings(ctx context.Context, in *UpdateParentSettingsRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	MarkRewardDelivered(ctx context.Context, in *MarkRewardDeliveredRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	WatchProfile(ctx context.Context, in *WatchProfileRequest, opts ...grpc.CallOption) (ProfileStreamClient, error)
}

type userServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserServiceClient(cc grpc.ClientConnInterface) UserServiceClient {
	return &userServiceClient{cc: cc}
}

func (c *userServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.cc.Invoke(ctx, methodGetProfile, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*CreateProfileResponse, error) {
	out := new(CreateProfileResponse)
	if err := c.cc.Invoke(ctx, methodCreateProfile, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) FindByEmail(ctx context.Context, in *FindByEmailRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.cc.Invoke(ctx, methodFindByEmail, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) UpdateHero(ctx context.Context, in *UpdateHeroRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.cc.Invoke(ctx, methodUpdateHero, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) SetPhoto(ctx context.Context, in *SetPhotoRequest, opts ...grpc.CallOption) (*SetPhotoResponse, error) {
	out := new(SetPhotoResponse)
	if err := c.cc.Invoke(ctx, methodSetPhoto, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) ActivateLicense(ctx context.Context, in *ActivateLicenseRequest, opts ...grpc.CallOption) (*ActivateLicenseResponse, error) {
	out := new(ActivateLicenseResponse)
	if err := c.cc.Invoke(ctx, methodActivateLicense, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) CompleteMission(ctx context.Context, in *CompleteMissionRequest, opts ...grpc.CallOption) (*CompleteMissionResponse, error) {
	out := new(CompleteMissionResponse)
	if err := c.cc.Invoke(ctx, methodCompleteMission, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) Purchase(ctx context.Context, in *PurchaseRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.cc.Invoke(ctx, methodPurchase, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) Equip(ctx context.Context, in *EquipRequest, opts ...grpc.CallOption) (*EquipResponse, error) {
	out := new(EquipResponse)
	if err := c.cc.Invoke(ctx, methodEquip, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) ListMissions(ctx context.Context, in *ListMissionsRequest, opts ...grpc.CallOption) (*ListMissionsResponse, error) {
	out := new(ListMissionsResponse)
	if err := c.cc.Invoke(ctx, methodListMissions, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) GetLeaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	out := new(LeaderboardResponse)
	if err := c.cc.Invoke(ctx, methodGetLeaderboard, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) SetParentPin(ctx context.Context, in *SetParentPinRequest, opts ...grpc.CallOption) (*SuccessResponse, error) {
	out := new(SuccessResponse)
	if err := c.cc.Invoke(ctx, methodSetParentPin, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) VerifyParentPin(ctx context.Context, in *VerifyParentPinRequest, opts ...grpc.CallOption) (*SuccessResponse, error) {
	out := new(SuccessResponse)
	if err := c.cc.Invoke(ctx, methodVerifyParentPin, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) UpdateParentSettings(ctx context.Context, in *UpdateParentSettingsRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.cc.Invoke(ctx, methodUpdateParentSettings, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) MarkRewardDelivered(ctx context.Context, in *MarkRewardDeliveredRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.cc.Invoke(ctx, methodMarkRewardDelivered, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userServiceClient) WatchProfile(ctx context.Context, in *WatchProfileRequest, opts ...grpc.CallOption) (ProfileStreamClient, error) {
	stream, err := rpc.OpenServerStream[WatchProfileRequest, ProfileSnapshot](ctx, c.cc, &serviceDesc.Streams[0], methodWatchProfile, in, opts...)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
