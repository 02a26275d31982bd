package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hms/backend/internal/application/query"
)

var errInvalidID = errors.New("invalid ID format")

// pathID parses a UUID path parameter
func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

// bindListQuery binds the standard list-screen query parameters
func bindListQuery(c *gin.Context) (query.ListQuery, error) {
	var q query.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return query.ListQuery{}, err
	}
	return q, nil
}
