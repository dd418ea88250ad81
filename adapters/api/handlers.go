// Package api exposes the checking engines over HTTP. Extraction is not
// offered here; callers submit already-structured claim records and get
// verdict rows back.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"veristat/adapters/postgres"
	"veristat/app"
	"veristat/domain/claim"
	"veristat/domain/core"
	"veristat/domain/verdict"
	"veristat/internal"
	"veristat/ports"
)

// Handler serves the claim-checking endpoints. The repository is optional;
// without one, runs are not persisted and report lookups return 404.
type Handler struct {
	alpha float64
	repo  ports.ReportRepository
	log   *internal.Logger
}

// NewHandler creates an API handler.
func NewHandler(alpha float64, repo ports.ReportRepository, log *internal.Logger) *Handler {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Handler{alpha: alpha, repo: repo, log: log}
}

// checkRequest is the shared request body. Claims is the raw record array,
// decoded per tool so the printed precision of each number is preserved.
type checkRequest struct {
	Source string          `json:"source"`
	Alpha  float64         `json:"alpha"`
	Claims json.RawMessage `json:"claims"`
}

// HandleStatcheck evaluates a batch of test claims.
func (h *Handler) HandleStatcheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		claims, skips := claim.DecodeTestClaims(req.Claims)
		if len(claims) == 0 && len(skips) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "no valid claims in request",
				"skipped": errorStrings(skips),
			})
			return
		}

		alpha := req.Alpha
		if alpha <= 0 {
			alpha = h.alpha
		}
		res := app.NewStatcheckService(alpha, h.log).Run(claims)
		res.Skipped += len(skips)

		h.persist(c, "statcheck", req.Source, alpha, res.Skipped, res.Rows)
		c.JSON(http.StatusOK, gin.H{
			"results": res.Rows,
			"skipped": res.Skipped,
			"summary": res.Summary,
			"alpha":   alpha,
		})
	}
}

// HandleGRIM evaluates a batch of mean claims.
func (h *Handler) HandleGRIM() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		claims, skips := claim.DecodeMeanClaims(req.Claims)
		if len(claims) == 0 && len(skips) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "no valid claims in request",
				"skipped": errorStrings(skips),
			})
			return
		}

		res := app.NewGRIMService(h.log).Run(claims)
		res.Skipped += len(skips)

		h.persist(c, "grim", req.Source, 0, res.Skipped, res.Rows)
		c.JSON(http.StatusOK, gin.H{
			"results":      res.Rows,
			"skipped":      res.Skipped,
			"inapplicable": res.Inapplicable,
		})
	}
}

// HandleGetReport returns one persisted run.
func (h *Handler) HandleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.repo == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "persistence is not configured"})
			return
		}
		report, err := h.repo.GetByID(c.Request.Context(), core.ReportID(c.Param("id")))
		if errors.Is(err, postgres.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		if err != nil {
			h.log.Error("api: loading report: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// HandleListReports returns recent runs for one source document.
func (h *Handler) HandleListReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.repo == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "persistence is not configured"})
			return
		}
		source := c.Query("source")
		if source == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "source query parameter is required"})
			return
		}
		reports, err := h.repo.ListBySource(c.Request.Context(), source, 20)
		if err != nil {
			h.log.Error("api: listing reports: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
	}
}

// persist stores a finished run when a repository and source are present.
// Persistence failures are logged, not surfaced; the verdicts themselves
// are still returned.
func (h *Handler) persist(c *gin.Context, tool, source string, alpha float64, skipped int, rows []verdict.Row) {
	if h.repo == nil || source == "" {
		return
	}
	report := postgres.NewReport(tool, source, alpha, skipped, rows)
	if err := h.repo.Save(c.Request.Context(), report); err != nil {
		h.log.Error("api: persisting %s report: %v", tool, err)
	}
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
