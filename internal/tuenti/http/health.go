package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process serves.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tuentisdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, tuentisdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the object store and the token signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tuentisdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	tuentisdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	objects objectstore.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &tuentisdk.HealthChecks{
			Database:    "ok",
			ObjectStore: "ok",
			Signer:      "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		degrade := func(field *string, msg string) {
			*field = "error: " + msg
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			degrade(&checks.Database, err.Error())
		}
		if err := objects.Ping(r.Context()); err != nil {
			degrade(&checks.ObjectStore, err.Error())
		}
		if !keys.IsReady() {
			degrade(&checks.Signer, "no keys loaded")
		}

		httpx.WriteJSON(w, statusCode, tuentisdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// JWKSHandler godoc
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set that verifies access tokens.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tuentisdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, tuentisdk.JWKSResponse(keys.PublicJWKS()))
	}
}
