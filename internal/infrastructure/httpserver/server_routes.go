package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	// Citizens land here from the link in the validation e-mail.
	s.echo.GET("/validate-profile-email", s.validateProfileEmail)
}
