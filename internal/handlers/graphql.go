package handlers

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

// GraphQLHandler serves the single GraphQL endpoint
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler creates a new GraphQLHandler
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// RegisterGraphQLRoutes registers the GraphQL endpoint
func (h *GraphQLHandler) RegisterGraphQLRoutes(e *echo.Echo) {
	e.POST("/graphql", h.Serve)
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve executes one GraphQL request. The caller identity, if any, was
// attached to the request context by the identity middleware.
func (h *GraphQLHandler) Serve(c echo.Context) error {
	var req graphqlRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request().Context(),
	})

	return c.JSON(http.StatusOK, result)
}
