package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// origin policy is enforced by the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsRequest struct {
	Op               string   `json:"op"`
	Text             string   `json:"text"`
	Texts            []string `json:"texts"`
	TopN             *int     `json:"top_n"`
	SharedVocabulary bool     `json:"shared_vocabulary"`
}

type wsResponse struct {
	Op        string      `json:"op"`
	RequestID string      `json:"request_id"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrResult  `json:"error,omitempty"`
}

// websocket answers one response per request frame until the client
// closes the connection.
func (h *Handler) websocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade:", err)
		return
	}
	defer conn.Close()
	if h.cfg.MaxBodyBytes > 0 {
		conn.SetReadLimit(h.cfg.MaxBodyBytes)
	}
	ctx := c.Request.Context()
	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("websocket read:", err)
			}
			return
		}
		resp := wsResponse{Op: req.Op, RequestID: newRequestID()}
		var data interface{}
		switch req.Op {
		case "segment":
			data, err = h.s.Segment(req.Text)
		case "keywords":
			data, err = h.s.Keywords(req.Text, h.s.TopN(req.TopN))
		case "batch-keywords":
			data, err = h.s.BatchKeywords(ctx, req.Texts, h.s.TopN(req.TopN), req.SharedVocabulary)
		default:
			err = badRequest("unknown op %q", req.Op)
		}
		if err != nil {
			resp.Error = &ErrResult{Status: statusOf(err), Des: err.Error(), RequestID: resp.RequestID}
		} else {
			resp.Data = data
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Println("websocket write:", err)
			return
		}
	}
}
