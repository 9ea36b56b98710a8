package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) addReminder(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "date and message are required"})
		return
	}

	rem, err := s.contacts.AddReminder(c.Request.Context(), id, currentUserID(c), req.Date, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReminderResponse(rem))
}

func (s *Server) listReminders(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	list, err := s.contacts.ListReminders(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]reminderResponse, 0, len(list))
	for _, rem := range list {
		out = append(out, toReminderResponse(rem))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) completeReminder(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	err := s.contacts.SetReminderCompleted(c.Request.Context(), c.Param("rid"), id, currentUserID(c), true)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) deleteReminder(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	err := s.contacts.DeleteReminder(c.Request.Context(), c.Param("rid"), id, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
