package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"food-delivery/middleware"
	"food-delivery/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps domain errors onto their status and code. Anything else
// is logged and reported as an internal error without details.
func respondError(c *gin.Context, err error) {
	if appErr, ok := models.AsAppError(err); ok {
		c.JSON(appErr.Status, models.ErrorResponse{
			Success: false,
			Message: appErr.Message,
			Error:   appErr.Code,
		})
		return
	}

	log.WithError(err).WithFields(log.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Message: "Internal server error",
		Error:   models.CodeInternal,
	})
}

// bindJSON decodes the body into req and writes the 400 response itself
// when that fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	respondBindError(c, err)
	return false
}

// bindOptionalJSON accepts a missing or empty body, chunked ones included,
// and leaves req zeroed.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondBindError(c, err)
	return false
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		respondError(c, models.ValidationError(verrs))
	} else {
		respondError(c, models.BadRequest("Invalid request body").WithCode(models.CodeValidation))
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		respondError(c, models.BadRequest("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// currentActor is only called behind AuthMiddleware.
func currentActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, models.Unauthorized("Authentication required"))
	}
	return actor, ok
}

func getPaginationParams(c *gin.Context) models.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.DefaultPageLimit)))
	return models.Page{
		Page:      page,
		Limit:     limit,
		Ascending: c.Query("sort") == "asc",
	}.Normalize()
}

func generateLinks(c *gin.Context, page, limit, totalPages int) models.PaginationLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	host := c.Request.Host
	path := c.Request.URL.Path
	queryParams := c.Request.URL.Query()

	makeURL := func(pageNum int) string {
		newParams := url.Values{}
		for key, values := range queryParams {
			if key != "page" {
				for _, value := range values {
					newParams.Add(key, value)
				}
			}
		}
		newParams.Set("page", strconv.Itoa(pageNum))
		newParams.Set("limit", strconv.Itoa(limit))
		return fmt.Sprintf("%s://%s%s?%s", scheme, host, path, newParams.Encode())
	}

	links := models.PaginationLinks{
		Self: makeURL(page),
	}
	if page > 1 {
		links.Prev = makeURL(page - 1)
	}
	if page < totalPages {
		links.Next = makeURL(page + 1)
	}
	return links
}

func buildResponse(c *gin.Context, message string, data interface{}, page models.Page, totalItems int) models.HATEOASResponse {
	totalPages := models.TotalPages(totalItems, page.Limit)

	return models.HATEOASResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta: models.PaginationMeta{
			Page:       page.Page,
			Limit:      page.Limit,
			TotalItems: totalItems,
			TotalPages: totalPages,
		},
		Links: generateLinks(c, page.Page, page.Limit, totalPages),
	}
}
