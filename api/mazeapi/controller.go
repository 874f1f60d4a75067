package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultRunsLimit = 10

// Controller serves the maze catalog.
type Controller struct {
	catalog  i.MazeCatalog
	runStore i.RunStore
	logger   i.Logger
}

// NewController creates a maze Controller. runStore may be nil, in which case
// run history is reported as empty.
func NewController(catalog i.MazeCatalog, runStore i.RunStore, logger i.Logger) (*Controller, error) {
	if catalog == nil || logger == nil {
		return nil, errors.New("maze controller needs a catalog and a logger")
	}
	return &Controller{catalog: catalog, runStore: runStore, logger: logger}, nil
}

// RegisterPublic registers public routes.
func (mc *Controller) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("", mc.list)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/runs", mc.runs)
	}
}

// RegisterProtected registers protected routes.
func (mc *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", mc.create)
}

func (mc *Controller) list(ctx *gin.Context) {
	limit, err := queryInt(ctx, "limit", 0)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docs, err := mc.catalog.List(ctx.Request.Context(), limit)
	if err != nil {
		mc.logger.Error("listing mazes: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list mazes"})
		return
	}

	resp := ListResponse{Data: make([]MazeResponse, 0, len(docs))}
	for _, doc := range docs {
		m, err := toResponse(doc)
		if err != nil {
			mc.logger.Warning("skipping invalid stored maze " + doc.ID.String() + ": " + err.Error())
			continue
		}
		resp.Data = append(resp.Data, m)
	}
	ctx.JSON(http.StatusOK, resp)
}

func (mc *Controller) byID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	doc, err := mc.catalog.ByID(ctx.Request.Context(), id)
	if err != nil {
		mc.respondError(ctx, err)
		return
	}

	resp, err := toResponse(doc)
	if err != nil {
		mc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (mc *Controller) runs(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	limit, err := queryInt(ctx, "limit", defaultRunsLimit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := mc.catalog.ByID(ctx.Request.Context(), id); err != nil {
		mc.respondError(ctx, err)
		return
	}

	resp := RunsResponse{Data: []i.RunRecord{}}
	if mc.runStore != nil {
		runs, err := mc.runStore.Recent(ctx.Request.Context(), id, limit)
		if err != nil {
			mc.respondError(ctx, err)
			return
		}
		resp.Data = runs
	}
	ctx.JSON(http.StatusOK, resp)
}

func (mc *Controller) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := mc.catalog.Create(ctx.Request.Context(), request.Name, request.Rows)
	if err != nil {
		mc.respondError(ctx, err)
		return
	}

	resp, err := toResponse(doc)
	if err != nil {
		mc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

func (mc *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrMalformedGrid):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		mc.logger.Error(err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(ctx *gin.Context, key string, def int) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}
