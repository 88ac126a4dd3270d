package controllers

import (
	"net/http"

	"github.com/craftline/pos-terminal/api/responses"
	"github.com/craftline/pos-terminal/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Terminal-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
