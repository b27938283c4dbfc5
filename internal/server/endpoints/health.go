package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/redpen/internal/api"
	"github.com/jackzampolin/redpen/internal/svcctx"
)

// RootEndpoint handles GET / with a welcome message.
type RootEndpoint struct{}

// RootResponse is the root endpoint response.
type RootResponse struct {
	Message string `json:"message" example:"Welcome to the Redpen correction API"`
}

// Route returns the HTTP route for this endpoint.
//
//	@Summary		API root
//	@Description	Returns a welcome message
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func (e *RootEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/{$}", e.handle
}

func (e *RootEndpoint) RequiresInit() bool { return false }

func (e *RootEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "Welcome to the Redpen correction API",
	})
}

// Command returns the CLI command for this endpoint.
func (e *RootEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:    "root",
		Short:  "Call the API root",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp RootResponse
			if err := client.Get(cmd.Context(), "/", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Route returns the HTTP route for this endpoint.
//
//	@Summary		Health check
//	@Description	Returns ok when the server is up
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/health", e.handle
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

func (e *HealthEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Command returns the CLI command for this endpoint.
func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(ctx, "/health", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// StatusEndpoint handles GET /status with provider details.
type StatusEndpoint struct{}

// StatusResponse reports the server's correction setup.
type StatusResponse struct {
	Status    string   `json:"status" example:"ok"`
	Provider  string   `json:"provider" example:"ollama"`
	Model     string   `json:"model" example:"gemma3"`
	Providers []string `json:"providers"`
}

// Route returns the HTTP route for this endpoint.
//
//	@Summary		Server status
//	@Description	Returns the active correction provider and model
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/status [get]
func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/status", e.handle
}

func (e *StatusEndpoint) RequiresInit() bool { return true }

func (e *StatusEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := StatusResponse{Status: "ok"}
	if reg := svcctx.RegistryFrom(ctx); reg != nil {
		resp.Providers = reg.List()
	}
	if mgr := svcctx.ConfigManagerFrom(ctx); mgr != nil {
		cfg := mgr.Get()
		resp.Provider = cfg.Correction.Provider
		resp.Model = cfg.Correction.Model
	}

	writeJSON(w, http.StatusOK, resp)
}

// Command returns the CLI command for this endpoint.
func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server status and active provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(ctx, "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
