// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/config"
	"github.com/katalvlaran/dstoolbox/dsplot"
	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/variables"
)

type handlers struct {
	reg *registry
}

func texts(es []*expression.Expression) []string {
	out := make([]string, len(es))
	for k, e := range es {
		out[k] = e.String()
	}
	return out
}

func describe(e *entry) DesignSpaceResponse {
	return DesignSpaceResponse{
		ID:            e.id,
		Name:          e.model.Name,
		Equations:     texts(e.ds.Equations()),
		Xd:            e.ds.Xd().Names(),
		Xi:            e.ds.Xi().Names(),
		Signature:     e.ds.Signature(),
		NumberOfCases: e.ds.NumberOfCases(),
	}
}

// handleCreate handles POST /v1/designspaces. The body is a model in YAML
// or JSON.
//
// Response:
//
//	201 Created: DesignSpaceResponse
//	400 Bad Request: unreadable or invalid model
//	422 Unprocessable Entity: equations that are not a GMA system
func (h *handlers) handleCreate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	m, err := config.Parse(raw)
	if err != nil {
		if !errors.Is(err, config.ErrInvalidModel) {
			err = fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		fail(c, err)
		return
	}
	e, err := h.reg.create(m)
	if err != nil {
		fail(c, err)
		return
	}
	requestLogger(c).Info("design space created",
		"id", e.id, "name", m.Name, "cases", e.ds.NumberOfCases())
	c.JSON(http.StatusCreated, describe(e))
}

// handleList handles GET /v1/designspaces.
func (h *handlers) handleList(c *gin.Context) {
	list, err := h.reg.list()
	if err != nil {
		fail(c, err)
		return
	}
	resp := ListResponse{DesignSpaces: make([]ListEntry, len(list))}
	for k, e := range list {
		resp.DesignSpaces[k] = ListEntry{ID: e.ID, Created: e.Created}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) entry(c *gin.Context) (*entry, bool) {
	e, err := h.reg.get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return e, true
}

// handleGet handles GET /v1/designspaces/:id.
func (h *handlers) handleGet(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	resp := describe(e)
	resp.Created = h.reg.created(e.id)
	c.JSON(http.StatusOK, resp)
}

// handleDelete handles DELETE /v1/designspaces/:id.
func (h *handlers) handleDelete(c *gin.Context) {
	if err := h.reg.delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) caseOf(c *gin.Context, e *entry) (*cases.Case, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		fail(c, fmt.Errorf("%w: case number %q", ErrBadRequest, c.Param("number")))
		return nil, false
	}
	cs, err := e.ds.CaseWithNumber(n)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return cs, true
}

// handleCase handles GET /v1/designspaces/:id/cases/:number. The query
// parameter log=true selects the log form of conditions and solution.
func (h *handlers) handleCase(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	cs, ok := h.caseOf(c, e)
	if !ok {
		return
	}
	logForm := c.Query("log") == "true"
	resp := CaseResponse{
		Number:     cs.Number(),
		Signature:  cs.SignatureString(),
		Equations:  texts(cs.Equations()),
		Conditions: texts(cs.Conditions(logForm)),
		Valid:      cs.IsValid(),
	}
	if cs.HasSolution() {
		sol, err := cs.Solution(logForm)
		if err != nil {
			fail(c, err)
			return
		}
		bnd, err := cs.Boundaries(logForm)
		if err != nil {
			fail(c, err)
			return
		}
		resp.Solution, resp.Boundaries = texts(sol), texts(bnd)
	}
	c.JSON(http.StatusOK, resp)
}

func queryPool(c *gin.Context, key string) (*variables.Pool, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	p, err := variables.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadRequest, key, err)
	}
	return p, nil
}

// handleValid handles GET /v1/designspaces/:id/valid. The optional lower
// and upper query parameters ("a=1,b=0.1") restrict validity to a slice;
// either one alone fixes a point.
func (h *handlers) handleValid(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	lower, err := queryPool(c, "lower")
	if err != nil {
		fail(c, err)
		return
	}
	upper, err := queryPool(c, "upper")
	if err != nil {
		fail(c, err)
		return
	}
	switch {
	case lower == nil && upper != nil:
		lower = upper
	case upper == nil && lower != nil:
		upper = lower
	}
	numbers, err := h.reg.valid(c.Request.Context(), e, lower, upper)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ValidResponse{ID: e.id, Cases: numbers, Count: len(numbers)})
}

// handleSteadyState handles POST /v1/designspaces/:id/cases/:number/steady-state.
func (h *handlers) handleSteadyState(c *gin.Context) {
	var req SteadyStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	e, ok := h.entry(c)
	if !ok {
		return
	}
	cs, ok := h.caseOf(c, e)
	if !ok {
		return
	}
	ss, err := cs.SteadyStateAt(req.Point)
	if err != nil {
		fail(c, err)
		return
	}
	fl, err := cs.FluxAt(req.Point)
	if err != nil {
		fail(c, err)
		return
	}
	valid, err := cs.IsValidAtPoint(req.Point)
	if err != nil {
		fail(c, err)
		return
	}

	xd := cs.Xd()
	state, _ := variables.NewPool()
	fluxes, _ := variables.NewPool()
	for k, name := range xd {
		if err = state.Add(name, ss[k]); err == nil {
			err = fluxes.Add("V_"+name, fl[k])
		}
		if err != nil {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, SteadyStateResponse{Case: cs.Number(), Valid: valid, SteadyState: state, Fluxes: fluxes})
}

// handlePlot handles POST /v1/designspaces/:id/plot and returns the scene.
// Without a point in the body the model's own point is used.
func (h *handlers) handlePlot(c *gin.Context) {
	var req PlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.Plot.Validate(); err != nil {
		fail(c, err)
		return
	}
	e, ok := h.entry(c)
	if !ok {
		return
	}

	m := *e.model
	m.Plot = &req.Plot
	if req.Point != nil {
		m.Point = m.Point[:0:0]
		for _, v := range req.Point.Variables() {
			m.Point = append(m.Point, config.Assignment{Name: v.Name, Value: v.Value})
		}
	}
	p, draw, err := m.NewPlot(e.ds)
	if err != nil {
		fail(c, err)
		return
	}

	var scene *dsplot.Scene
	if req.Case > 0 {
		scene, err = p.DrawCase(c.Request.Context(), req.Case, draw)
	} else {
		scene, err = p.Draw(c.Request.Context(), draw)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, scene)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
