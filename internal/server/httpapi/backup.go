package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) backup(c *gin.Context) {
	key, err := s.backups.Backup(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, backupResponse{StorageKey: key})
}

func (s *Server) restore(c *gin.Context) {
	n, err := s.backups.Restore(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, restoreResponse{Restored: n})
}
