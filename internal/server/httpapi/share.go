package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) createShare(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	link, err := s.contacts.CreateShareLink(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, shareResponse{Token: link.Token, ExpiresAt: link.ExpiresAt})
}

func (s *Server) resolveShare(c *gin.Context) {
	m, err := s.contacts.ResolveShareLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sharedContactResponse{Name: m.Name, PhoneCipher: m.PhoneCipher})
}
