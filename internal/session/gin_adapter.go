package session

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// cookieCommitter delays the session commit until the first byte of the
// response, so handlers can bind a searcher after c.Next has started.
type cookieCommitter struct {
	gin.ResponseWriter
	m         *Manager
	req       *http.Request
	committed bool
}

func (w *cookieCommitter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieCommitter) WriteHeaderNow() {
	w.commit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieCommitter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *cookieCommitter) WriteString(s string) (int, error) {
	w.commit()
	return w.ResponseWriter.WriteString(s)
}

func (w *cookieCommitter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.Hijack()
}

// commit runs once per request.
func (w *cookieCommitter) commit() {
	if w.committed {
		return
	}
	w.committed = true

	ctx := w.req.Context()
	var (
		token  string
		expiry time.Time
	)
	switch w.m.Status(ctx) {
	case scs.Modified:
		var err error
		token, expiry, err = w.m.Commit(ctx)
		if err != nil {
			return
		}
	case scs.Destroyed:
		// empty token and zero expiry clear the cookie
	default:
		return
	}
	w.m.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
}

// LoadSave loads the session named by the request cookie and commits it with
// the response.
func (m *Manager) LoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, err := m.Load(c.Request.Context(), m.cookieToken(c.Request))
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		w := &cookieCommitter{ResponseWriter: c.Writer, m: m, req: c.Request}
		c.Writer = w
		c.Next()
		w.commit()
	}
}

func (m *Manager) cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(m.Cookie.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
