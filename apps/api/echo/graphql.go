package echoapi

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/userql/core"
)

type graphqlApi struct {
	schema   *graphql.Schema
	validate *core.Validator
}

func registerGraphQLAPI(e *echo.Echo, schema *graphql.Schema) {
	api := graphqlApi{schema: schema, validate: core.NewValidator()}

	e.POST("/graphql", api.query)
	e.GET("/play", api.playground)
}

type graphqlRequest struct {
	Query         string                 `json:"query" validate:"required,notblank"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// query executes a GraphQL request. Resolver failures are part of the
// GraphQL response, so the status is 200 whenever the request could be read.
func (api *graphqlApi) query(ctx echo.Context) error {
	var req graphqlRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding graphql request")
	}
	if err := api.validate.Struct(req); err != nil {
		return err
	}

	resp := api.schema.Exec(ctx.Request().Context(), req.Query, req.OperationName, req.Variables)
	return ctx.JSON(http.StatusOK, resp)
}

func (api *graphqlApi) playground(ctx echo.Context) error {
	return ctx.HTML(http.StatusOK, playgroundPage)
}

// GraphiQL explorer, posting to /graphql
const playgroundPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<title>GraphiQL</title>
	<style>body { height: 100vh; margin: 0; overflow: hidden; } #graphiql { height: 100vh; }</style>
	<link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
	<script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
	<script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
</head>
<body>
	<div id="graphiql">Loading...</div>
	<script>
		const fetcher = GraphiQL.createFetcher({ url: '/graphql' });
		ReactDOM.createRoot(document.getElementById('graphiql')).render(React.createElement(GraphiQL, { fetcher }));
	</script>
</body>
</html>
`
