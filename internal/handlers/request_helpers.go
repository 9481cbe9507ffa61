package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
)

// looseString accepts a JSON string or a bare number, so "10" and 10 both
// reach the date parser, which decides what is valid.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}

	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		raw = ""
	}
	*s = looseString(raw)
	return nil
}

// fail writes err. Faults are logged; business errors are expected.
func fail(c *gin.Context, log *zap.Logger, err error, internalCode string) {
	if _, ok := httperr.Code(err); !ok {
		logger.OrNop(log).Error(internalCode,
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	httperr.FromError(c, err, internalCode)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// dayFromPath reads :day plus optional year/month query values, which
// default to the current month.
func dayFromPath(c *gin.Context, today calendar.Date) (calendar.Date, error) {
	return calendar.ParseParts(c.Query("year"), c.Query("month"), c.Param("day"), today)
}

func queryInt(c *gin.Context, name string) (int, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_day")
	}
	return n, nil
}
