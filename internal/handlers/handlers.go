// Package handlers implements the server's endpoints.
package handlers

import (
	"errors"
	"fmt"

	"github.com/Brownie44l1/http-server/internal/files"
	"github.com/Brownie44l1/http-server/internal/request"
	"github.com/Brownie44l1/http-server/internal/response"
	"github.com/Brownie44l1/http-server/internal/router"
)

// Register installs every route on r.
//
//	GET  /             200, empty
//	GET  /echo/{s}     200 text/plain, body s
//	GET  /user-agent   200 text/plain, body is the User-Agent header
//	GET  /files/{name} 200 application/octet-stream, or 404
//	POST /files/{name} 201 after storing the body
func Register(r *router.Router, store *files.Store) {
	fh := &fileHandler{store: store}

	r.Root("GET", Root)
	r.GET("echo", Echo)
	r.GET("user-agent", UserAgent)
	r.GET("files", fh.get)
	r.POST("files", fh.post)
}

func Root(req *request.Request, _ string) (*response.Response, error) {
	return response.Empty(req.Version, response.StatusOK), nil
}

func Echo(req *request.Request, rest string) (*response.Response, error) {
	return response.Text(req.Version, response.StatusOK, rest), nil
}

func UserAgent(req *request.Request, _ string) (*response.Response, error) {
	return response.Text(req.Version, response.StatusOK, req.UserAgent()), nil
}

type fileHandler struct {
	store *files.Store
}

// get serves a stored file. Missing, unreadable and refused names are
// all answered with 404.
func (h *fileHandler) get(req *request.Request, name string) (*response.Response, error) {
	data, err := h.store.Read(name)
	if err != nil {
		return response.Empty(req.Version, response.StatusNotFound), nil
	}
	return response.Octets(req.Version, response.StatusOK, data), nil
}

func (h *fileHandler) post(req *request.Request, name string) (*response.Response, error) {
	err := h.store.Write(name, req.Body)
	if errors.Is(err, files.ErrUnsafePath) {
		return response.Empty(req.Version, response.StatusNotFound), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	return response.Empty(req.Version, response.StatusCreated), nil
}
