package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/redpen/internal/api"
	"github.com/jackzampolin/redpen/internal/correct"
	"github.com/jackzampolin/redpen/internal/svcctx"
)

// CorrectEndpoint handles POST /api/correct for single-sentence correction.
type CorrectEndpoint struct{}

// CorrectRequest is the request body for a single correction.
type CorrectRequest struct {
	Text string `json:"text" example:"Thiss sentence has somee spelling mistaks."`
}

// Route returns the HTTP route for this endpoint.
//
//	@Summary		Correct a sentence
//	@Description	Corrects grammar and spelling errors in one sentence
//	@Tags			correction
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CorrectRequest	true	"Sentence to correct"
//	@Success		200		{object}	correct.Result
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/correct [post]
func (e *CorrectEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodPost, "/api/correct", e.handle
}

func (e *CorrectEndpoint) RequiresInit() bool { return true }

func (e *CorrectEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	var req CorrectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	svc := svcctx.CorrectorFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "correction service not initialized")
		return
	}

	result, err := svc.Correct(r.Context(), req.Text)
	if err != nil {
		writeCorrectionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeCorrectionError maps correction errors to HTTP status codes.
// Empty input is a client error, connectivity and upstream failures are 503,
// malformed model output is a 502 bad gateway.
func writeCorrectionError(w http.ResponseWriter, err error) {
	var (
		connErr   *correct.ConnectivityError
		svcErr    *correct.ServiceError
		decodeErr *correct.DecodeError
		schemaErr *correct.SchemaError
	)

	switch {
	case errors.Is(err, correct.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &connErr):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &svcErr):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &decodeErr):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &schemaErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Command returns the CLI command for this endpoint.
func (e *CorrectEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "correct <sentence>",
		Short: "Correct a single sentence",
		Long: `Correct grammar and spelling errors in a single sentence.

The response lists each correction with the wrong word, its replacement,
and the reason, plus the fully corrected sentence.

Example:
  redpen api correct "Thiss sentence has somee spelling mistaks."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var result correct.Result
			if err := client.Post(cmd.Context(), "/api/correct", CorrectRequest{Text: args[0]}, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
}
