package fakebackend

// APIPrefix is the versioned base path every route is served under.
const APIPrefix = "/api/v1"

const (
	RouteAuthRegister = "/auth/register"
	RouteAuthLogin    = "/auth/login"
	RouteAuthRefresh  = "/auth/refresh"
	RouteAuthLogout   = "/auth/logout"

	RouteUsersMe      = "/users/me"
	RouteContacts     = "/users/contacts"
	RouteContactsByID = "/users/contacts/{id}"

	RoutePathsStart  = "/paths/start"
	RoutePaths       = "/paths"
	RoutePathByID    = "/paths/{id}"
	RoutePathStop    = "/paths/{id}/stop"
	RoutePathPoints  = "/paths/{id}/points"
	RoutePathShare   = "/paths/{id}/share"
	RouteSharedPath  = "/paths/shared/{token}"
	RouteHealthcheck = "/health"
)
