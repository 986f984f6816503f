package social

import (
	"encoding/json"
	"net/http"

	dto "github.com/dropDatabas3/socialgate/internal/http/dto/social"
	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
)

// ResultController handles GET /result, the viewer for the last operation
// outcome stored in the session.
type ResultController struct{}

// NewResultController creates a new ResultController.
func NewResultController() *ResultController {
	return &ResultController{}
}

// Result renders LastResult as-is; reading it does not consume it.
func (c *ResultController) Result(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFrom(r.Context())
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	resp := dto.ResultResponse{Title: "No result", Payload: map[string]any{}}
	if lr := sess.LastResult; lr != nil {
		resp = dto.ResultResponse{Title: lr.Title, Payload: lr.Payload, Error: lr.Error}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}
