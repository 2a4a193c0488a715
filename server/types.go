// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"time"

	"github.com/katalvlaran/dstoolbox/config"
	"github.com/katalvlaran/dstoolbox/variables"
)

var (
	// ErrNotFound indicates an unknown design space id.
	ErrNotFound = errors.New("server: design space not found")

	// ErrBadRequest wraps malformed path, query or body input.
	ErrBadRequest = errors.New("server: bad request")
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// DesignSpaceResponse describes a registered design space.
type DesignSpaceResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Equations     []string  `json:"equations"`
	Xd            []string  `json:"xd"`
	Xi            []string  `json:"xi"`
	Signature     []int     `json:"signature"`
	NumberOfCases int       `json:"number_of_cases"`
	Created       time.Time `json:"created,omitzero"`
}

// ListResponse is the body of GET /v1/designspaces.
type ListResponse struct {
	DesignSpaces []ListEntry `json:"designspaces"`
}

// ListEntry is one stored design space.
type ListEntry struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
}

// CaseResponse summarizes one case.
type CaseResponse struct {
	Number     int      `json:"number"`
	Signature  string   `json:"signature"`
	Equations  []string `json:"equations"`
	Solution   []string `json:"solution,omitempty"`
	Conditions []string `json:"conditions"`
	Boundaries []string `json:"boundaries,omitempty"`
	Valid      bool     `json:"valid"`
}

// ValidResponse lists valid case numbers.
type ValidResponse struct {
	ID    string `json:"id"`
	Cases []int  `json:"cases"`
	Count int    `json:"count"`
}

// SteadyStateRequest is the body of the steady-state route.
type SteadyStateRequest struct {
	Point *variables.Pool `json:"point" binding:"required"`
}

// SteadyStateResponse holds the steady state of one case at a point.
type SteadyStateResponse struct {
	Case        int             `json:"case"`
	Valid       bool            `json:"valid"`
	SteadyState *variables.Pool `json:"steady_state"`
	Fluxes      *variables.Pool `json:"fluxes"`
}

// PlotRequest is the body of the plot route. Case 0 draws every valid
// case.
type PlotRequest struct {
	Point *variables.Pool `json:"point"`
	Plot  config.Plot     `json:"plot"`
	Case  int             `json:"case,omitempty"`
}
