package autocomplete

import (
	"net/http"
	"strings"
	"time"

	"autocomplete/core/logger"
	"autocomplete/core/router"
	"autocomplete/core/types"
)

type AutocompleteController struct {
	Service *AutocompleteService
	Logger  logger.Logger
}

func NewAutocompleteController(service *AutocompleteService, log logger.Logger) *AutocompleteController {
	return &AutocompleteController{
		Service: service,
		Logger:  log,
	}
}

// Routes mounts one GET route per registered handler
func (c *AutocompleteController) Routes(router *router.RouterGroup) {
	for _, name := range c.Service.Registry.Names() {
		router.GET("/"+name, c.Handler(name))
	}
}

// Handler godoc
// @Summary Autocomplete suggestions
// @Description Case-insensitive substring search over the registered columns, one suggestion per line
// @Tags Core/Autocomplete
// @Produce plain
// @Param q query string false "Search term"
// @Param options[column] query string false "Extra equality filter (multi-attribute handlers)"
// @Param select query string false "Space separated attribute paths such as department.name"
// @Success 200 {string} string
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /autocomplete_{entity}_{attributes} [get]
func (c *AutocompleteController) Handler(name string) router.HandlerFunc {
	return func(ctx *router.Context) error {
		start := time.Now()
		params := Params{
			Query:   ctx.Query("q"),
			Filters: ctx.QueryMap("options"),
			Select:  strings.Fields(ctx.Query("select")),
		}

		lines, err := c.Service.Complete(ctx.Context(), name, params)
		if err != nil {
			status, kind := statusOf(err)
			c.Service.Metrics.IncError(name, kind)
			c.Logger.Error("Autocomplete failed",
				logger.String("handler", name),
				logger.String("kind", kind),
				logger.String("error", err.Error()))
			return ctx.JSON(status, types.ErrorResponse{Error: err.Error()})
		}

		c.Logger.Debug("Autocomplete",
			logger.String("handler", name),
			logger.Int("rows", len(lines)),
			logger.Duration("duration", time.Since(start)))
		return ctx.String(http.StatusOK, Render(lines))
	}
}
