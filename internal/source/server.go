package source

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/boothlab/photowall/internal/media"
)

// Server exposes the record store over HTTP in the shape the kiosk polls:
// GET /api/records?event= returning {"items": [...]}.
type Server struct {
	store *Store
	log   *zap.SugaredLogger
}

func NewServer(store *Store, log *zap.SugaredLogger) *Server {
	return &Server{store: store, log: log}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": s.store.Len()})
	})

	api := r.Group("/api")
	{
		api.GET("/records", s.listRecords)
		api.POST("/records", s.createRecord)
		api.DELETE("/records/:id", s.deleteRecord)
	}
	return r
}

func (s *Server) Run(addr string) error {
	s.log.Infow("record source listening", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) listRecords(c *gin.Context) {
	event := c.Query("event")
	c.JSON(http.StatusOK, gin.H{"items": s.store.List(event)})
}

type createRequest struct {
	ConceptName string     `json:"conceptName" binding:"required"`
	ImageURL    string     `json:"imageUrl"`
	DownloadURL string     `json:"downloadUrl"`
	Kind        media.Kind `json:"kind"`
	Event       string     `json:"event"`
}

func (s *Server) createRecord(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind == "" {
		req.Kind = media.KindImage
	}
	if req.Kind != media.KindImage && req.Kind != media.KindVideo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be image or video"})
		return
	}
	rec, err := s.store.Add(req.ConceptName, req.ImageURL, req.DownloadURL, req.Kind, req.Event)
	if err != nil {
		s.log.Errorw("store add failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store write failed"})
		return
	}
	s.log.Infow("record created", "id", rec.ID, "concept", rec.ConceptName)
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) deleteRecord(c *gin.Context) {
	id := c.Param("id")
	ok, err := s.store.Remove(id)
	if err != nil {
		s.log.Errorw("store remove failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store write failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such record"})
		return
	}
	c.Status(http.StatusNoContent)
}
