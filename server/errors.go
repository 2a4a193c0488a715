// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/config"
	"github.com/katalvlaran/dstoolbox/designspace"
	"github.com/katalvlaran/dstoolbox/dsplot"
	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/ssystem"
	"github.com/katalvlaran/dstoolbox/store"
	"github.com/katalvlaran/dstoolbox/variables"
)

// statusTable maps sentinel errors to a status and code. The first match
// wins.
var statusTable = []struct {
	err    error
	status int
	code   string
}{
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{store.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{cases.ErrCaseNumberZero, http.StatusNotFound, "CASE_NOT_FOUND"},
	{cases.ErrCaseNumberOutOfRange, http.StatusNotFound, "CASE_NOT_FOUND"},

	{ErrBadRequest, http.StatusBadRequest, "INVALID_REQUEST"},
	{config.ErrInvalidModel, http.StatusBadRequest, "INVALID_MODEL"},
	{variables.ErrMalformed, http.StatusBadRequest, "INVALID_POINT"},
	{variables.ErrInvalidName, http.StatusBadRequest, "INVALID_POINT"},
	{variables.ErrDuplicateVariable, http.StatusBadRequest, "INVALID_POINT"},
	{expression.ErrSyntax, http.StatusBadRequest, "INVALID_EXPRESSION"},

	{gma.ErrMissingEquals, http.StatusUnprocessableEntity, "INVALID_EQUATIONS"},
	{gma.ErrUnknownDependent, http.StatusUnprocessableEntity, "INVALID_EQUATIONS"},
	{gma.ErrNotPowerLaw, http.StatusUnprocessableEntity, "INVALID_EQUATIONS"},
	{gma.ErrNoPositiveTerm, http.StatusUnprocessableEntity, "INVALID_EQUATIONS"},
	{gma.ErrNoNegativeTerm, http.StatusUnprocessableEntity, "INVALID_EQUATIONS"},
	{gma.ErrEquationCount, http.StatusUnprocessableEntity, "INVALID_EQUATIONS"},
	{gma.ErrNoEquations, http.StatusUnprocessableEntity, "INVALID_EQUATIONS"},
	{dsplot.ErrMissingFunction, http.StatusUnprocessableEntity, "INVALID_PLOT"},
	{dsplot.ErrAxisNotIndependent, http.StatusUnprocessableEntity, "INVALID_PLOT"},
	{dsplot.ErrBadLimits, http.StatusUnprocessableEntity, "INVALID_PLOT"},
	{dsplot.ErrUnknownMode, http.StatusUnprocessableEntity, "INVALID_PLOT"},
	{cases.ErrNoSolution, http.StatusUnprocessableEntity, "NO_SOLUTION"},
	{ssystem.ErrNoSolution, http.StatusUnprocessableEntity, "NO_SOLUTION"},
	{ssystem.ErrVariableNotFound, http.StatusUnprocessableEntity, "MISSING_VARIABLE"},
	{ssystem.ErrNonPositive, http.StatusUnprocessableEntity, "NON_POSITIVE"},
	{expression.ErrUnknownVariable, http.StatusUnprocessableEntity, "MISSING_VARIABLE"},
	{variables.ErrVariableNotFound, http.StatusUnprocessableEntity, "MISSING_VARIABLE"},
	{cases.ErrNotFixed, http.StatusUnprocessableEntity, "INVALID_SLICE"},
	{cases.ErrBadBounds, http.StatusUnprocessableEntity, "INVALID_SLICE"},
	{cases.ErrSliceDimension, http.StatusUnprocessableEntity, "INVALID_SLICE"},
	{cases.ErrVariableNotIndependent, http.StatusUnprocessableEntity, "INVALID_SLICE"},
	{designspace.ErrConditionShape, http.StatusUnprocessableEntity, "INVALID_CONDITIONS"},
}

// statusFor returns the response status and code of err.
func statusFor(err error) (int, string) {
	for _, row := range statusTable {
		if errors.Is(err, row.err) {
			return row.status, row.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL"
}

// fail writes err as an ErrorResponse and logs it at a level matching the
// status.
func fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	logger := requestLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.String("code", code), slog.Any("error", err))
	} else {
		logger.Warn("request rejected", slog.String("code", code), slog.Any("error", err))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}
