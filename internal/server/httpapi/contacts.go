package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phonesaver/phonesaver/internal/server/models"
	"github.com/phonesaver/phonesaver/internal/server/repositories/contacts"
)

func contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid contact id"})
		return 0, false
	}
	return id, true
}

func (s *Server) createContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "name and phone_cipher are required"})
		return
	}

	m := req.toModel(currentUserID(c))
	id, err := s.contacts.Create(c.Request.Context(), m)
	if err != nil {
		writeError(c, err)
		return
	}

	m.ID = id
	c.JSON(http.StatusCreated, toContactResponse(m))
}

func (s *Server) bulkCreateContacts(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Contacts) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "contacts must be a non-empty array"})
		return
	}

	userID := currentUserID(c)
	items := make([]*models.Contact, 0, len(req.Contacts))
	for i := range req.Contacts {
		items = append(items, req.Contacts[i].toModel(userID))
	}

	ids, err := s.contacts.BulkCreate(c.Request.Context(), userID, items)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bulkCreateResponse{IDs: ids})
}

func (s *Server) getContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	m, err := s.contacts.Get(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toContactResponse(m))
}

func (s *Server) listContacts(c *gin.Context) {
	f := contacts.Filter{
		Query:  c.Query("q"),
		Tag:    c.Query("tag"),
		SortBy: c.Query("sort"),
		Desc:   c.Query("order") == "desc",
	}

	list, err := s.contacts.List(c.Request.Context(), currentUserID(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]contactResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toContactResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var req contactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.contacts.Patch(c.Request.Context(), id, currentUserID(c), req.toPatch()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) deleteContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := s.contacts.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// patchField is the shared shape of the single-field PUT endpoints.
func (s *Server) patchField(c *gin.Context, p models.ContactPatch) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := s.contacts.Patch(c.Request.Context(), id, currentUserID(c), p); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) updateTags(c *gin.Context) {
	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "tags are required"})
		return
	}
	s.patchField(c, models.ContactPatch{Tags: &req.Tags})
}

func (s *Server) updateLastInteraction(c *gin.Context) {
	var req lastInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "last_interaction is required"})
		return
	}
	s.patchField(c, models.ContactPatch{LastInteraction: &req.LastInteraction})
}

func (s *Server) updateBirthday(c *gin.Context) {
	var req birthdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "birthday is required"})
		return
	}
	s.patchField(c, models.ContactPatch{Birthday: &req.Birthday})
}

func (s *Server) updateFrequency(c *gin.Context) {
	var req frequencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "frequency is required"})
		return
	}
	s.patchField(c, models.ContactPatch{Frequency: &req.Frequency})
}

func (s *Server) updatePreferredTime(c *gin.Context) {
	var req preferredTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	s.patchField(c, models.ContactPatch{PreferredTime: &req.PreferredTime})
}

func (s *Server) updateNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	s.patchField(c, models.ContactPatch{Notes: &req.Notes})
}

func (s *Server) insights(c *gin.Context) {
	ins, err := s.contacts.GetInsights(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ins)
}
