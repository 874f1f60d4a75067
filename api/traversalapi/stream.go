package traversalapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/traversal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// stream pushes every snapshot of a session to a websocket client and applies
// the commands it sends back. It ends when the client disconnects or the
// session closes.
func (tc *Controller) stream(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	s, updates, cancel, err := tc.sessions.Subscribe(id)
	if err != nil {
		tc.respondError(ctx, err)
		return
	}
	defer cancel()

	ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		tc.logger.Error(fmt.Sprintf("upgrading stream of session %s: %s", id, err))
		return
	}
	defer ws.Close()

	commands := make(chan StreamCommand)
	done := make(chan struct{})
	go tc.readCommands(ws, commands, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snap, open := <-updates:
			if !open {
				_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
				_ = ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := tc.send(ws, newSessionResponse(s, snap)); err != nil {
				return
			}
		case cmd := <-commands:
			if err := tc.apply(id, cmd); err != nil {
				if err := tc.send(ws, StreamError{Error: err.Error()}); err != nil {
					return
				}
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readCommands forwards client commands until the connection fails.
func (tc *Controller) readCommands(ws *websocket.Conn, commands chan<- StreamCommand, done chan<- struct{}) {
	defer close(done)

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd StreamCommand
		if err := ws.ReadJSON(&cmd); err != nil {
			return
		}
		select {
		case commands <- cmd:
		case <-time.After(writeWait):
			return
		}
	}
}

func (tc *Controller) apply(id uuid.UUID, cmd StreamCommand) error {
	var run func(uuid.UUID) (i.Session, traversal.Snapshot, error)
	switch cmd.Action {
	case "start":
		run = tc.sessions.Start
	case "reset":
		run = tc.sessions.Reset
	case "toggle":
		run = tc.sessions.Toggle
	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}
	_, _, err := run(id)
	return err
}

func (tc *Controller) send(ws *websocket.Conn, v any) error {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ws.WriteJSON(v); err != nil {
		tc.logger.Warning(fmt.Sprintf("writing to stream: %s", err))
		return err
	}
	return nil
}
