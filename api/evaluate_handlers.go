package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gallerykit/gallery-engine/internal/engine"
	"github.com/gallerykit/gallery-engine/internal/logging"
	"github.com/gallerykit/gallery-engine/model"
)

// EvaluateRequest represents the JSON request for a gallery evaluation.
// When Rules is omitted and Shop is set, the shop's stored rules and
// settings are used instead.
type EvaluateRequest struct {
	Shop     string                  `json:"shop,omitempty"`
	Rules    []model.Rule            `json:"rules,omitempty"`
	Context  model.EvaluationContext `json:"context"`
	Settings *model.GlobalSettings   `json:"settings,omitempty"`
}

// EvaluateResponse represents the JSON response for a gallery evaluation
type EvaluateResponse struct {
	Status  string                   `json:"status"`
	Result  model.EvaluationResult   `json:"result"`
	Context *model.EvaluationContext `json:"context"`
}

// EvaluateHandler handles POST /api/v1/evaluate
func (api *API) EvaluateHandler(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	ctx := engine.BuildContext(req.Context)

	var result model.EvaluationResult
	var err error
	switch {
	case req.Rules != nil:
		settings := model.DefaultGlobalSettings()
		if req.Settings != nil {
			settings = *req.Settings
		}
		result, err = engine.Evaluate(req.Rules, ctx, settings)
	case req.Shop != "":
		result, err = api.rules.EvaluateForShop(req.Shop, ctx)
	default:
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Request must include either 'rules' or 'shop'")
		return
	}
	if err != nil {
		SendEvaluationError(c, err)
		return
	}

	if req.Shop != "" && api.analytics != nil {
		go func() {
			if trackErr := api.analytics.TrackEvaluation(req.Shop, ctx, result); trackErr != nil {
				logging.Logger.Warn().Err(trackErr).Str("shop", req.Shop).Msg("Failed to record evaluation event")
			}
		}()
	}

	c.JSON(http.StatusOK, EvaluateResponse{
		Status:  "success",
		Result:  result,
		Context: ctx,
	})
}
