package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"puresearch/bfhl-api/common/classifier"
	"puresearch/bfhl-api/common/models"
)

const (
	msgDataNotArray = `Invalid payload: "data" must be an array.`
	msgInvalidJSON  = "Invalid JSON payload."
	msgTooLarge     = "Payload too large."
	msgInternal     = "Internal server error"
	msgWelcome      = "Welcome to the BFHL API"
)

// handleInfo godoc
// @Summary      API information
// @Description  Static description of the service and its endpoints
// @Tags         info
// @Produce      json
// @Success      200  {object}  models.InfoResponse
// @Router       / [get]
func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.InfoResponse{
		OK:      true,
		Message: msgWelcome,
		Endpoints: models.InfoEndpoints{
			PostBFHL: s.cfg.PublicBaseURL + "/bfhl",
		},
	})
}

// handleBFHL godoc
// @Summary      Classify tokens
// @Description  Splits "data" into even numbers, odd numbers, alphabets and special characters
// @Tags         bfhl
// @Accept       json
// @Produce      json
// @Param        request  body      models.BFHLRequest  true  "Array of tokens under data"
// @Success      200      {object}  models.BFHLResponse
// @Failure      400      {object}  models.ErrorResponse
// @Failure      413      {object}  models.ErrorResponse
// @Failure      500      {object}  models.ErrorResponse
// @Router       /bfhl [post]
func (s *Server) handleBFHL(c *gin.Context) {
	var request models.BFHLRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		var tooLarge *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.As(err, &tooLarge):
			s.fail(c, http.StatusRequestEntityTooLarge, msgTooLarge, err)
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			s.fail(c, http.StatusBadRequest, msgInvalidJSON, err)
		default:
			// empty bodies and non-object documents carry no data array
			s.fail(c, http.StatusBadRequest, msgDataNotArray, err)
		}
		return
	}

	tokens, err := models.ParseTokens(request.Data)
	if err != nil {
		if errors.Is(err, models.ErrNotArray) {
			s.fail(c, http.StatusBadRequest, msgDataNotArray, err)
			return
		}
		s.fail(c, http.StatusBadRequest, msgInvalidJSON, err)
		return
	}

	result, stats := classifier.ClassifyWithStats(tokens)
	s.metrics.ObserveClassification(len(tokens), stats)
	s.logger.Debug("Classified tokens",
		zap.String("request_id", getRequestID(c)),
		zap.Int("tokens", len(tokens)),
		zap.String("sum", result.Sum),
	)

	c.JSON(http.StatusOK, models.NewBFHLResponse(s.cfg.Identity(), result))
}

// fail writes the failure envelope and attaches err for the access log
func (s *Server) fail(c *gin.Context, status int, message string, err error) {
	_ = c.Error(err)
	c.JSON(status, models.NewErrorResponse(s.cfg.Identity(), message))
}
