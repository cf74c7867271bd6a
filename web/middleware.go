package web

import (
	"bytes"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/snappy"
	"github.com/oklog/ulid"
	"github.com/pkg/errors"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newRequestID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// requestID keeps a caller supplied X-Request-ID or assigns a ULID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.GetString(requestIDKey))
	}
}

// limitBody caps the bytes read from a request body; 0 means unlimited.
func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// snappyBody decodes request bodies sent with Content-Encoding: snappy
// (block format). The declared length is checked against limit before
// anything is allocated for it.
func snappyBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Content-Encoding") != "snappy" {
			c.Next()
			return
		}
		compressed, err := io.ReadAll(c.Request.Body)
		if err != nil {
			writeErr(c, bindError(err))
			return
		}
		n, err := snappy.DecodedLen(compressed)
		if err != nil {
			writeErr(c, badRequest("decode snappy body: %v", err))
			return
		}
		if limit > 0 && int64(n) > limit {
			writeErr(c, errors.Wrapf(errBodyTooLarge, "snappy body decodes to %d bytes, limit %d", n, limit))
			return
		}
		reqBuf, err := snappy.Decode(nil, compressed)
		if err != nil {
			writeErr(c, badRequest("decode snappy body: %v", err))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(reqBuf))
		c.Request.ContentLength = int64(len(reqBuf))
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, &ErrResult{
		Status:    http.StatusNotFound,
		Des:       "no route for " + c.Request.Method + " " + c.Request.URL.Path,
		RequestID: c.GetString(requestIDKey),
	})
}
