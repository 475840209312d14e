package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneydash/backend/internal/httputil"
	"github.com/moneydash/backend/internal/models"
	md_uuid "github.com/moneydash/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEnvelopes)
		r.GET("", GetEnvelopes)
		r.POST("", CreateEnvelope)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", OptionsEnvelopeDetail)
		r.GET("/:id", GetEnvelope)
		r.PATCH("/:id", UpdateEnvelope)
		r.DELETE("/:id", DeleteEnvelope)
		r.DELETE("/:id/rule", DeleteEnvelopeRule)
	}
}

// EnvelopeEditable contains the fields of an envelope that can be set by
// API requests.
type EnvelopeEditable struct {
	Name      string                 `json:"name" binding:"required" example:"Groceries"`
	AccountID md_uuid.UUID           `json:"accountId" binding:"required" example:"d07595e6-ad25-4c4b-9751-9a72ae02dbb4"`
	Note      string                 `json:"note" example:"Everything for the fridge"`
	Allocated decimal.Decimal        `json:"allocated" example:"500"`
	Spent     decimal.Decimal        `json:"spent" example:"120.5"`
	Color     string                 `json:"color" example:"#e67e22"`
	Archived  bool                   `json:"archived" example:"false"`
	Rule      *models.AllocationRule `json:"rule"`
}

func (editable EnvelopeEditable) model() models.Envelope {
	envelope := models.Envelope{
		Name:      editable.Name,
		AccountID: editable.AccountID.UUID,
		Note:      editable.Note,
		Allocated: editable.Allocated,
		Spent:     editable.Spent,
		Color:     editable.Color,
		Archived:  editable.Archived,
	}

	if editable.Rule != nil {
		envelope.SetRule(*editable.Rule)
	}

	return envelope
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes [options]
func OptionsEnvelopes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the envelope"
// @Router			/v1/envelopes/{id} [options]
func OptionsEnvelopeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Envelope{})
}

// @Summary		Create envelope
// @Description	Creates a new envelope for an account
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		201			{object}	models.Envelope
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			envelope	body		EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes [post]
func CreateEnvelope(c *gin.Context) {
	var editable EnvelopeEditable
	err := c.ShouldBindJSON(&editable)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.AccountID == md_uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAccountIDField.Error()})
		return
	}

	envelope := editable.model()
	err = models.DB.Create(&envelope).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, envelope)
}

// @Summary		List envelopes
// @Description	Returns a list of envelopes
// @Tags			Envelopes
// @Produce		json
// @Success		200	{array}		models.Envelope
// @Failure		500	{object}	httpError
// @Param			account	query	string	false	"Filter by account ID"
// @Router			/v1/envelopes [get]
func GetEnvelopes(c *gin.Context) {
	var filter struct {
		AccountID md_uuid.UUID `form:"account"`
	}
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var envelopes []models.Envelope
	err := models.DB.Where(&models.Envelope{AccountID: filter.AccountID.UUID}).Find(&envelopes).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, envelopes)
}

// @Summary		Get envelope
// @Description	Returns a specific envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	models.Envelope
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the envelope"
// @Router			/v1/envelopes/{id} [get]
func GetEnvelope(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var envelope models.Envelope
	err := models.DB.First(&envelope, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// @Summary		Update envelope
// @Description	Updates an envelope. Zero values of editable fields are left unchanged.
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		200			{object}	models.Envelope
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID of the envelope"
// @Param			envelope	body		EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes/{id} [patch]
func UpdateEnvelope(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var envelope models.Envelope
	err := models.DB.First(&envelope, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable EnvelopeEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.AccountID == md_uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAccountIDField.Error()})
		return
	}

	err = models.DB.Model(&envelope).Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// @Summary		Remove allocation rule
// @Description	Removes the income allocation rule from an envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	models.Envelope
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the envelope"
// @Router			/v1/envelopes/{id}/rule [delete]
func DeleteEnvelopeRule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var envelope models.Envelope
	err := models.DB.First(&envelope, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	envelope.ClearRule()
	err = models.DB.Model(&envelope).Select("RuleValue", "RuleKind").Updates(envelope).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// @Summary		Delete envelope
// @Description	Deletes an envelope
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID of the envelope"
// @Router			/v1/envelopes/{id} [delete]
func DeleteEnvelope(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var envelope models.Envelope
	err := models.DB.First(&envelope, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&envelope).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
