package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ordelo-app/ordelo/services"
	"github.com/ordelo-app/ordelo/utils"
)

// respondServiceError memetakan kategori error service ke status HTTP.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrBadRequest):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(value), true
}

func contextUint(c *gin.Context, key string) (uint, bool) {
	raw, exists := c.Get(key)
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New(key+" not found in context"))
		return 0, false
	}
	value, ok := raw.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid "+key+" type"))
		return 0, false
	}
	return value, true
}
