package fakebackend

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	authed := s.APIMiddleware(s.RequireAuth())

	s.RegisterRouteFunc("GET "+RouteHealthcheck, ChainMiddleware(s.Healthcheck(), api...))

	// AUTH
	s.RegisterRouteFunc("POST "+APIPrefix+RouteAuthRegister, ChainMiddleware(s.Register(), api...))
	s.RegisterRouteFunc("POST "+APIPrefix+RouteAuthLogin, ChainMiddleware(s.Login(), api...))
	s.RegisterRouteFunc("POST "+APIPrefix+RouteAuthRefresh, ChainMiddleware(s.Refresh(), api...))
	s.RegisterRouteFunc("POST "+APIPrefix+RouteAuthLogout, ChainMiddleware(s.Logout(), authed...))

	// USERS
	s.RegisterRouteFunc("GET "+APIPrefix+RouteUsersMe, ChainMiddleware(s.GetProfile(), authed...))
	s.RegisterRouteFunc("PUT "+APIPrefix+RouteUsersMe, ChainMiddleware(s.UpdateProfile(), authed...))
	s.RegisterRouteFunc("GET "+APIPrefix+RouteContacts, ChainMiddleware(s.ListContacts(), authed...))
	s.RegisterRouteFunc("POST "+APIPrefix+RouteContacts, ChainMiddleware(s.AddContact(), authed...))
	s.RegisterRouteFunc("PUT "+APIPrefix+RouteContactsByID, ChainMiddleware(s.UpdateContact(), authed...))
	s.RegisterRouteFunc("DELETE "+APIPrefix+RouteContactsByID, ChainMiddleware(s.DeleteContact(), authed...))

	// PATHS
	s.RegisterRouteFunc("POST "+APIPrefix+RoutePathsStart, ChainMiddleware(s.StartPath(), authed...))
	s.RegisterRouteFunc("POST "+APIPrefix+RoutePathStop, ChainMiddleware(s.StopPath(), authed...))
	s.RegisterRouteFunc("POST "+APIPrefix+RoutePathPoints, ChainMiddleware(s.AddPathPoints(), authed...))
	s.RegisterRouteFunc("GET "+APIPrefix+RoutePaths, ChainMiddleware(s.ListPaths(), authed...))
	s.RegisterRouteFunc("GET "+APIPrefix+RoutePathByID, ChainMiddleware(s.GetPath(), authed...))
	s.RegisterRouteFunc("PUT "+APIPrefix+RoutePathByID, ChainMiddleware(s.UpdatePath(), authed...))
	s.RegisterRouteFunc("DELETE "+APIPrefix+RoutePathByID, ChainMiddleware(s.DeletePath(), authed...))
	s.RegisterRouteFunc("POST "+APIPrefix+RoutePathShare, ChainMiddleware(s.SharePath(), authed...))
	s.RegisterRouteFunc("GET "+APIPrefix+RouteSharedPath, ChainMiddleware(s.GetSharedPath(), api...))
}
