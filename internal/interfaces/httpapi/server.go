package httpapi

import (
	"net/http"

	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// InternalJobToken guards every /v1/internal route. Empty makes them answer 503.
	InternalJobToken string
}

// NewRouter mounts every route behind tracing, access logging, CORS and panic recovery, outermost first.
func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerPublicSeasonRoutes(mux, handler)
	registerUserRoutes(mux, handler)
	registerInternalAdminRoutes(mux, handler, cfg.InternalJobToken)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	var h http.Handler = mux
	h = recoverPanic(logger, h)
	h = CORS(cfg.CORSAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}
