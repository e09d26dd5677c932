package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/civicgate/email-validation/internal/core/domain/validation"
)

var validationOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "email_validation_outcomes_total",
		Help: "The total number of e-mail validation requests by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(validationOutcomes)
}

// validateProfileEmail handles the tokenized link clicked by the
// citizen. Structural input validation happens here; everything past it
// answers with a redirect, never an error page.
func (s *Server) validateProfileEmail(c echo.Context) error {
	token, err := validation.ParseToken(c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid token format")
	}

	flowChoice := validation.FlowConfirm
	if raw := c.QueryParam("flowChoice"); raw != "" {
		flowChoice, err = validation.ParseFlowChoice(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid flowChoice value")
		}
	}

	outcome := s.validationSvc.HandleValidation(c.Request().Context(), token, flowChoice)

	label := string(outcome.Kind)
	if outcome.Kind == validation.RedirectFailure {
		label = string(outcome.Code)
	}
	validationOutcomes.WithLabelValues(label).Inc()

	return c.Redirect(http.StatusSeeOther, outcome.URL)
}
