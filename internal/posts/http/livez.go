package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/postboard/pkg/httpx"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 whenever the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	postsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, postsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
