package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gaurav-prasanna/clipmark/core/render"
	"github.com/gaurav-prasanna/clipmark/internal/logging"
)

const (
	wsReadTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
)

// upgrader keeps gorilla's default same-origin check.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsReply is sent for every converted message.
type wsReply struct {
	Markdown string `json:"markdown"`
	Filename string `json:"filename"`
}

// handleWebSocket converts each text message (HTML) and answers with a
// wsReply. Binary frames and oversized messages close the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logRequestError(r, "websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	log := logging.FromContext(r.Context())
	log.Debug("websocket connected")

	conn.SetReadLimit(s.maxBody)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	md := render.NewMarkdownRenderer()
	reader := isTrue(r.URL.Query().Get("reader"))

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket unexpected close", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if kind != websocket.TextMessage {
			closeWith(conn, websocket.CloseUnsupportedData, "expected a text message")
			return
		}

		res, err := s.pipelineFor(reader).Run("paste", string(msg), md)
		if err != nil {
			log.Warn("websocket conversion failed", "error", err)
			closeWith(conn, websocket.CloseInternalServerErr, "conversion failed")
			return
		}

		reply, err := json.Marshal(wsReply{Markdown: res.Markdown, Filename: res.Meta.Filename + md.Extension()})
		if err != nil {
			return
		}
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			return
		}
	}
}

func closeWith(conn *websocket.Conn, code int, text string) {
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(wsWriteTimeout))
}
