package server

import (
	"bufio"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/Brownie44l1/http-server/internal/request"
	"github.com/Brownie44l1/http-server/internal/response"
)

// serveConn handles the single request carried by conn and closes it.
func (s *Server) serveConn(conn net.Conn) {
	defer s.conns.Done()
	defer conn.Close()

	connID := uuid.New().String()
	remote := conn.RemoteAddr().String()

	if s.config.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	}

	req, err := request.RequestFromReaderWithLimits(conn, request.Limits{
		MaxHeaderBytes: s.config.MaxHeaderBytes,
		MaxBodyBytes:   s.config.MaxRequestBodySize,
	})
	if err != nil {
		s.Logger.Warn("failed reading the request",
			Field{"conn_id", connID},
			Field{"remote", remote},
			Field{"error", err},
		)
		s.write(conn, connID, response.BadRequest())
		return
	}

	s.Logger.Debug("request parsed",
		Field{"conn_id", connID},
		Field{"remote", remote},
		Field{"method", req.Method},
		Field{"path", req.Path},
		Field{"version", req.Version},
		Field{"user_agent", req.UserAgent()},
		Field{"body_bytes", len(req.Body)},
	)
	for _, skipped := range req.Headers.Skipped() {
		s.Logger.Debug("header line skipped",
			Field{"conn_id", connID},
			Field{"error", skipped},
		)
	}

	s.write(conn, connID, s.handleRequest(connID, req))
}

// handleRequest wraps handler call with panic recovery
func (s *Server) handleRequest(connID string, req *request.Request) (res *response.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("handler panic",
				Field{"conn_id", connID},
				Field{"error", r},
			)
			res = response.Empty(req.Version, response.StatusInternalServerError)
		}
	}()

	res = s.handler.Route(req)
	if res == nil {
		res = response.Empty(req.Version, response.StatusInternalServerError)
	}
	return res
}

func (s *Server) write(conn net.Conn, connID string, res *response.Response) {
	if s.config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}

	bw := bufio.NewWriter(conn)
	_, err := res.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		s.Logger.Warn("failed writing the response",
			Field{"conn_id", connID},
			Field{"status", res.Status.Code()},
			Field{"error", err},
		)
	}
}
