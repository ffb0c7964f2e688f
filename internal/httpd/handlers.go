package httpd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cwbudde/traffic-vmd/internal/demo"
)

const dateLayout = "2006-01-02"

// viewParams is the wire form of a pipeline request, shared by the
// REST endpoint and the websocket.
type viewParams struct {
	Year      int       `json:"year"`
	StartDate string    `json:"start_date"`
	Days      int       `json:"days"`
	Weights   []float64 `json:"weights"`
	Include   []bool    `json:"include"`
}

// parseRequest converts wire parameters to an engine request. Errors
// are client errors.
func parseRequest(params viewParams) (demo.ViewRequest, error) {
	req := demo.ViewRequest{
		Year:    params.Year,
		Days:    params.Days,
		Weights: params.Weights,
		Include: params.Include,
	}
	if params.StartDate == "" {
		return demo.ViewRequest{}, fmt.Errorf("start_date is required")
	}
	day, err := time.Parse(dateLayout, params.StartDate)
	if err != nil {
		return demo.ViewRequest{}, fmt.Errorf("start_date must be %s: %q", dateLayout, params.StartDate)
	}
	req.StartDate = day
	return req, nil
}

func (s *Server) handleYears(c *gin.Context) {
	years, err := s.engine.Years()
	if err != nil {
		fail(c, err)
		return
	}
	if years == nil {
		years = []int{}
	}
	success(c, gin.H{"years": years, "synthetic_year": demo.SyntheticYear})
}

func (s *Server) handleDates(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
	if err != nil {
		badRequest(c, "year must be an integer")
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil {
		badRequest(c, "days must be an integer")
		return
	}

	dates, err := s.engine.Dates(year, days)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	success(c, gin.H{"dates": out})
}

func (s *Server) handleView(c *gin.Context) {
	var params viewParams
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	req, err := parseRequest(params)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	view, err := s.engine.View(req)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, view)
}
