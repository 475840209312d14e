package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moneydash/backend/internal/httputil"
	"github.com/moneydash/backend/internal/importer"
	"github.com/moneydash/backend/internal/importer/parser/bankcsv"
	"github.com/moneydash/backend/internal/metrics"
	"github.com/moneydash/backend/internal/models"
	md_uuid "github.com/moneydash/backend/internal/uuid"
)

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", Import)
	r.OPTIONS("/preview", OptionsImportPreview)
	r.POST("/preview", ImportPreview)
}

// ImportQuery are the query parameters for imports.
type ImportQuery struct {
	AccountID md_uuid.UUID `form:"accountId" binding:"required"` // ID of the account to import the transactions for
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseUpload parses the uploaded statement for the account named in the
// query and applies match rules and duplicate detection to every record.
func parseUpload(c *gin.Context) ([]importer.TransactionPreview, models.Account, error) {
	var query ImportQuery
	err := c.BindQuery(&query)
	if err != nil {
		return nil, models.Account{}, err
	}

	if query.AccountID == md_uuid.Nil {
		return nil, models.Account{}, errAccountIDParameter
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		return nil, models.Account{}, err
	}

	var account models.Account
	err = models.DB.First(&account, query.AccountID).Error
	if err != nil {
		return nil, models.Account{}, err
	}

	previews, err := bankcsv.Parse(f, account)
	if err != nil {
		return nil, models.Account{}, err
	}

	rules, err := models.MatchRules(models.DB)
	if err != nil {
		return nil, models.Account{}, err
	}

	for i := range previews {
		importer.Match(&previews[i], rules)

		duplicates, err := models.DuplicateTransactionIDs(models.DB, previews[i].Transaction.ImportHash)
		if err != nil {
			return nil, models.Account{}, err
		}
		previews[i].DuplicateTransactionIDs = duplicates
	}

	return previews, account, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/preview [options]
func OptionsImportPreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Preview import
// @Description	Parses a CSV statement and returns the resulting transactions without persisting them, including duplicate and match rule information
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200			{array}		importer.TransactionPreview
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			accountId	query		string	true	"ID of the account to import into"
// @Param			file		formData	file	true	"CSV file to import"
// @Router			/v1/import/preview [post]
func ImportPreview(c *gin.Context) {
	previews, _, err := parseUpload(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, previews)
}

// @Summary		Import transactions
// @Description	Parses a CSV statement and persists the transactions. Unassigned income rows are distributed across the account's envelopes by the allocation engine.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{array}		models.Transaction
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			accountId	query		string	true	"ID of the account to import into"
// @Param			file		formData	file	true	"CSV file to import"
// @Router			/v1/import [post]
func Import(c *gin.Context) {
	previews, account, err := parseUpload(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions, err := importer.Create(models.DB, account, previews)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	metrics.ImportedTransactions.Add(float64(len(transactions)))

	c.JSON(http.StatusCreated, transactions)
}
