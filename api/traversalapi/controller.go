package traversalapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/traversal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller drives traversal sessions.
type Controller struct {
	sessions i.TraversalSessionManager
	logger   i.Logger
}

// NewController creates a traversal Controller.
func NewController(sessions i.TraversalSessionManager, logger i.Logger) (*Controller, error) {
	if sessions == nil || logger == nil {
		return nil, errors.New("traversal controller needs a session manager and a logger")
	}
	return &Controller{sessions: sessions, logger: logger}, nil
}

// RegisterPublic registers public routes.
func (tc *Controller) RegisterPublic(route *gin.RouterGroup) {
	traversals := route.Group("/traversals")
	{
		traversals.POST("", tc.create)
		traversals.GET("/:ID", tc.snapshot)
		traversals.POST("/:ID/start", tc.command(tc.sessions.Start))
		traversals.POST("/:ID/reset", tc.command(tc.sessions.Reset))
		traversals.POST("/:ID/toggle", tc.command(tc.sessions.Toggle))
		traversals.DELETE("/:ID", tc.close)
		traversals.GET("/:ID/stream", tc.stream)
	}
}

// RegisterProtected registers protected routes.
func (tc *Controller) RegisterProtected(route *gin.RouterGroup) {}

func (tc *Controller) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, snap, err := tc.sessions.NewSession(ctx.Request.Context(), request.MazeID)
	if err != nil {
		tc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newSessionResponse(s, snap))
}

func (tc *Controller) snapshot(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	s, snap, err := tc.sessions.Snapshot(id)
	if err != nil {
		tc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(s, snap))
}

func (tc *Controller) command(cmd func(uuid.UUID) (i.Session, traversal.Snapshot, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		s, snap, err := cmd(id)
		if err != nil {
			tc.respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, newSessionResponse(s, snap))
	}
}

func (tc *Controller) close(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := tc.sessions.Close(id); err != nil {
		tc.respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (tc *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrSessionNotFound), errors.Is(err, i.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrTooManySessions):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrMalformedGrid), errors.Is(err, maze.ErrOutOfBounds):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		tc.logger.Error(err.Error())
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
