package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// Season ids such as "2024/25" travel path-escaped ("2024%2F25").
func registerPublicSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/pick-rules", handler.GetPickRules)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/seasons/{seasonID}/gameweeks/{week}/picks", RequireUser(http.HandlerFunc(handler.CreatePick)))
	mux.Handle("DELETE /v1/seasons/{seasonID}/gameweeks/{week}/picks/me", RequireUser(http.HandlerFunc(handler.DeleteMyPick)))
	mux.Handle("GET /v1/seasons/{seasonID}/picks/me", RequireUser(http.HandlerFunc(handler.ListMyPicks)))
}

func registerInternalAdminRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireInternalJobToken(internalJobToken, fn))
	}

	internal("POST /v1/internal/seasons/{seasonID}/gameweeks/{week}/picks", handler.AdminCreatePick)
	internal("POST /v1/internal/seasons/{seasonID}/gameweeks/{week}/eliminations", handler.ProcessEliminations)
	internal("POST /v1/internal/seasons/{seasonID}/gameweeks/{week}/auto-picks", handler.AssignMissedPicks)
	internal("PUT /v1/internal/seasons/{seasonID}/elimination-counts", handler.SetEliminationCounts)
	internal("GET /v1/internal/seasons/{seasonID}/elimination-config", handler.GetEliminationConfig)
	internal("PUT /v1/internal/seasons/{seasonID}/pick-rules/{half}", handler.SetPickRule)
	internal("POST /v1/internal/fixtures/{fixtureID}/result", handler.ApplyFixtureResult)
	internal("POST /v1/internal/fixtures/{fixtureID}/recompute", handler.RecomputeFixture)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/auto-picks", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAutoPickJob)))
}
