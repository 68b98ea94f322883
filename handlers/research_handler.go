package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"argutree-backend/models"
	"argutree-backend/service"
	"argutree-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultDepth    = 0
	defaultMaxDepth = 2
)

// NodeStore is the persistence surface the handler needs for research nodes
type NodeStore interface {
	Create(ctx context.Context, rec *models.ResearchRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ResearchRecord, error)
	ListRecent(ctx context.Context, limit int) ([]models.ResearchRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobStore is the persistence surface the handler needs for research jobs
type JobStore interface {
	Create(ctx context.Context, job *models.ResearchJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ResearchJob, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ResearchJobStatus) error
	UpdateProgress(ctx context.Context, id uuid.UUID, currentStep string, steps models.ResearchSteps) error
	Complete(ctx context.Context, id uuid.UUID, nodeID *uuid.UUID) error
	Fail(ctx context.Context, id uuid.UUID, errorMessage string) error
}

// ResearchHandler handles HTTP requests for the research pipeline
type ResearchHandler struct {
	researchService *service.ResearchService
	nodeRepo        NodeStore
	jobRepo         JobStore
	briefStorage    storage.Storage
}

// NewResearchHandler creates a new research handler. nodeRepo, jobRepo
// and briefStorage may be nil; the features backed by them degrade to
// unavailable rather than blocking the synchronous pipeline.
func NewResearchHandler(
	researchService *service.ResearchService,
	nodeRepo NodeStore,
	jobRepo JobStore,
	briefStorage storage.Storage,
) *ResearchHandler {
	return &ResearchHandler{
		researchService: researchService,
		nodeRepo:        nodeRepo,
		jobRepo:         jobRepo,
		briefStorage:    briefStorage,
	}
}

// ResearchRequest represents the request body for a research build.
// Depth and MaxDepth are pointers so an explicit 0 is distinguishable
// from an absent field.
type ResearchRequest struct {
	Query    string `json:"query"`
	Depth    *int   `json:"depth"`
	MaxDepth *int   `json:"max_depth"`
}

// resolve validates the request and applies defaults
func (req *ResearchRequest) resolve() (query string, depth, maxDepth int, err error) {
	query = strings.TrimSpace(req.Query)
	if query == "" {
		return "", 0, 0, errMissingQuery
	}

	depth = defaultDepth
	if req.Depth != nil {
		depth = *req.Depth
	}
	maxDepth = defaultMaxDepth
	if req.MaxDepth != nil {
		maxDepth = *req.MaxDepth
	}
	if depth < 0 || maxDepth < 0 {
		return "", 0, 0, errNegativeDepth
	}

	return query, depth, maxDepth, nil
}

var (
	errMissingQuery  = errors.New("query is required")
	errNegativeDepth = errors.New("depth and max_depth must be non-negative")
)

// Research handles POST /api/research: the synchronous pipeline entrypoint
func (h *ResearchHandler) Research(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	query, depth, maxDepth, err := req.resolve()
	if errors.Is(err, errMissingQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DEPTH",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.researchService.BuildNode(c.Request.Context(), service.BuildRequest{
		Query:    query,
		Depth:    depth,
		MaxDepth: maxDepth,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESEARCH_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Persistence is best-effort: the pipeline result stands on its own
	if result.Status == models.BuildSuccess && h.nodeRepo != nil {
		rec := &models.ResearchRecord{
			Query:              query,
			Depth:              depth,
			MaxDepth:           maxDepth,
			Node:               result.ResearchNode,
			TotalCasesAnalyzed: result.TotalCasesAnalyzed,
		}
		if err := h.nodeRepo.Create(c.Request.Context(), rec); err != nil {
			log.Printf("Warning: Failed to persist research node: %v", err)
		} else {
			result.NodeID = &rec.ID
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetResearch handles GET /api/research/:id
func (h *ResearchHandler) GetResearch(c *gin.Context) {
	if h.nodeRepo == nil {
		h.persistenceUnavailable(c)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	rec, err := h.nodeRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Research node not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rec,
	})
}

// ListResearch handles GET /api/research
func (h *ResearchHandler) ListResearch(c *gin.Context) {
	if h.nodeRepo == nil {
		h.persistenceUnavailable(c)
		return
	}

	records, err := h.nodeRepo.ListRecent(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

// GetBrief handles GET /api/research/:id/brief: renders a stored node
// as a plain-text brief and archives a copy when storage is configured
func (h *ResearchHandler) GetBrief(c *gin.Context) {
	if h.nodeRepo == nil {
		h.persistenceUnavailable(c)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	rec, err := h.nodeRepo.GetByID(c.Request.Context(), id)
	if err != nil || rec.Node == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Research node not found",
			},
		})
		return
	}

	// Serve the archived copy when one exists; otherwise render fresh
	// and archive it best-effort
	filename := briefFilename(rec.ID)
	if h.briefStorage != nil {
		if body, err := h.briefStorage.Download(c.Request.Context(), storage.ArchivePath(rec.ID, filename)); err == nil {
			data, readErr := io.ReadAll(body)
			body.Close()
			if readErr == nil {
				c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
				return
			}
			log.Printf("Warning: Failed to read archived brief for node %s: %v", rec.ID, readErr)
		}
	}

	brief := service.AssembleBrief(rec.Node)

	if h.briefStorage != nil {
		if _, err := h.briefStorage.Upload(c.Request.Context(), rec.ID, filename, strings.NewReader(brief)); err != nil {
			log.Printf("Warning: Failed to archive brief for node %s: %v", rec.ID, err)
		}
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(brief))
}

// DeleteResearch handles DELETE /api/research/:id: removes a stored node
// and its archived brief, if any
func (h *ResearchHandler) DeleteResearch(c *gin.Context) {
	if h.nodeRepo == nil {
		h.persistenceUnavailable(c)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.nodeRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Research node not found",
			},
		})
		return
	}

	// The archive is best-effort on the way out too
	if h.briefStorage != nil {
		if err := h.briefStorage.Delete(c.Request.Context(), storage.ArchivePath(id, briefFilename(id))); err != nil {
			log.Printf("Warning: Failed to delete archived brief for node %s: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": id},
	})
}

// briefFilename names a node's rendered brief in the archive
func briefFilename(id uuid.UUID) string {
	return fmt.Sprintf("brief-%s.txt", id)
}

// CreateResearchJob handles POST /api/research/jobs: asynchronous builds
// polled via GetResearchJob
func (h *ResearchHandler) CreateResearchJob(c *gin.Context) {
	if h.jobRepo == nil {
		h.persistenceUnavailable(c)
		return
	}

	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	query, depth, maxDepth, err := req.resolve()
	if errors.Is(err, errMissingQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DEPTH",
				"message": err.Error(),
			},
		})
		return
	}

	steps := make(models.ResearchSteps, 0)
	for _, stage := range service.PipelineStages() {
		steps = append(steps, models.ResearchStep{Name: stage, Status: "pending"})
	}

	job := &models.ResearchJob{
		Query:    query,
		Depth:    depth,
		MaxDepth: maxDepth,
		Status:   models.JobStatusPending,
		Steps:    steps,
	}
	if err := h.jobRepo.Create(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_CREATION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Background context so the build outlives the HTTP request
	go h.runJob(context.Background(), job)

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"job_id":  job.ID,
			"status":  models.JobStatusPending,
			"message": "Research job created. Poll /api/research/jobs/:id for updates.",
		},
	})
}

// runJob executes one research build in the background, tracking
// per-stage progress on the job record
func (h *ResearchHandler) runJob(ctx context.Context, job *models.ResearchJob) {
	if err := h.jobRepo.UpdateStatus(ctx, job.ID, models.JobStatusInProgress); err != nil {
		log.Printf("Warning: Failed to mark job %s in progress: %v", job.ID, err)
	}

	steps := job.Steps
	progress := func(stage string) {
		for i := range steps {
			if steps[i].Status == "in_progress" {
				steps[i].Status = "completed"
			}
			if steps[i].Name == stage {
				steps[i].Status = "in_progress"
			}
		}
		if err := h.jobRepo.UpdateProgress(ctx, job.ID, stage, steps); err != nil {
			log.Printf("Warning: Failed to update progress for job %s: %v", job.ID, err)
		}
	}

	result, err := h.researchService.BuildNode(ctx, service.BuildRequest{
		Query:    job.Query,
		Depth:    job.Depth,
		MaxDepth: job.MaxDepth,
		Progress: progress,
	})
	if err != nil {
		if failErr := h.jobRepo.Fail(ctx, job.ID, err.Error()); failErr != nil {
			log.Printf("Warning: Failed to mark job %s failed: %v", job.ID, failErr)
		}
		return
	}

	var nodeID *uuid.UUID
	if result.Status == models.BuildSuccess {
		for i := range steps {
			steps[i].Status = "completed"
		}
		if err := h.jobRepo.UpdateProgress(ctx, job.ID, service.StageCounterRebuttal, steps); err != nil {
			log.Printf("Warning: Failed to finalize steps for job %s: %v", job.ID, err)
		}

		if h.nodeRepo != nil {
			rec := &models.ResearchRecord{
				Query:              job.Query,
				Depth:              job.Depth,
				MaxDepth:           job.MaxDepth,
				Node:               result.ResearchNode,
				TotalCasesAnalyzed: result.TotalCasesAnalyzed,
			}
			if err := h.nodeRepo.Create(ctx, rec); err != nil {
				log.Printf("Warning: Failed to persist research node for job %s: %v", job.ID, err)
			} else {
				nodeID = &rec.ID
			}
		}
	}

	if err := h.jobRepo.Complete(ctx, job.ID, nodeID); err != nil {
		log.Printf("Warning: Failed to complete job %s: %v", job.ID, err)
	}
}

// GetResearchJob handles GET /api/research/jobs/:id
func (h *ResearchHandler) GetResearchJob(c *gin.Context) {
	if h.jobRepo == nil {
		h.persistenceUnavailable(c)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	job, err := h.jobRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Research job not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// parseID parses the :id path parameter, writing the error response itself
func (h *ResearchHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// persistenceUnavailable responds when the database-backed features are
// not configured
func (h *ResearchHandler) persistenceUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "PERSISTENCE_UNAVAILABLE",
			"message": "Persistence is not configured",
		},
	})
}
