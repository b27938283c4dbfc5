package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/redpen/internal/api"
	"github.com/jackzampolin/redpen/internal/correct"
	"github.com/jackzampolin/redpen/internal/svcctx"
)

// CorrectBatchEndpoint handles POST /api/correct/batch.
type CorrectBatchEndpoint struct{}

// CorrectBatchRequest is the request body for batch correction.
type CorrectBatchRequest struct {
	Texts []string `json:"texts"`
}

// CorrectBatchResponse wraps the per-sentence results.
type CorrectBatchResponse struct {
	Results []*correct.Result `json:"results"`
}

// Route returns the HTTP route for this endpoint.
//
//	@Summary		Correct a batch of sentences
//	@Description	Corrects each sentence independently; a failed sentence yields a placeholder result rather than failing the batch
//	@Tags			correction
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CorrectBatchRequest	true	"Sentences to correct"
//	@Success		200		{object}	CorrectBatchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/correct/batch [post]
func (e *CorrectBatchEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodPost, "/api/correct/batch", e.handle
}

func (e *CorrectBatchEndpoint) RequiresInit() bool { return true }

func (e *CorrectBatchEndpoint) handle(w http.ResponseWriter, r *http.Request) {
	var req CorrectBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts must contain at least one sentence")
		return
	}

	svc := svcctx.CorrectorFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "correction service not initialized")
		return
	}

	results := svc.CorrectBatch(r.Context(), req.Texts)
	writeJSON(w, http.StatusOK, CorrectBatchResponse{Results: results})
}

// Command returns the CLI command for this endpoint.
func (e *CorrectBatchEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "correct-batch <sentence> [sentence...]",
		Short: "Correct multiple sentences in one request",
		Long: `Correct grammar and spelling errors in multiple sentences.

Each sentence is corrected independently. A sentence that fails to
correct does not fail the batch; its result carries an error message
in place of the corrected sentence.

Example:
  redpen api correct-batch "Thiss is wrong." "So is thiss."`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp CorrectBatchResponse
			if err := client.Post(cmd.Context(), "/api/correct/batch", CorrectBatchRequest{Texts: args}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
