package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/clinicdesk/internal/client/domain"
	"github.com/smallbiznis/clinicdesk/pkg/db/pagination"
)

type createClientRequest struct {
	Name     string         `json:"name"`
	Phone    string         `json:"phone"`
	Email    string         `json:"email"`
	Gender   string         `json:"gender"`
	Address  string         `json:"address"`
	Notes    string         `json:"notes"`
	Metadata map[string]any `json:"metadata"`
}

type updateClientRequest struct {
	Name     *string        `json:"name,omitempty"`
	Phone    *string        `json:"phone,omitempty"`
	Email    *string        `json:"email,omitempty"`
	Gender   *string        `json:"gender,omitempty"`
	Address  *string        `json:"address,omitempty"`
	Notes    *string        `json:"notes,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *Server) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Create(c.Request.Context(), clientdomain.CreateRequest{
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.TrimSpace(req.Email),
		Gender:   strings.ToLower(strings.TrimSpace(req.Gender)),
		Address:  strings.TrimSpace(req.Address),
		Notes:    req.Notes,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListClients(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Query string `form:"q"`
		Name  string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	q := strings.TrimSpace(query.Query)
	if q == "" {
		q = strings.TrimSpace(query.Name)
	}

	resp, err := s.clientSvc.List(c.Request.Context(), clientdomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Query:     q,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetClientByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.clientSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateClient(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var gender *string
	if req.Gender != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Gender))
		gender = &lowered
	}

	resp, err := s.clientSvc.Update(c.Request.Context(), clientdomain.UpdateRequest{
		ID:       id,
		Name:     trimStringPtr(req.Name),
		Phone:    trimStringPtr(req.Phone),
		Email:    trimStringPtr(req.Email),
		Gender:   gender,
		Address:  trimStringPtr(req.Address),
		Notes:    req.Notes,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteClient(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.clientSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isClientValidationError(err error) bool {
	switch err {
	case clientdomain.ErrInvalidID,
		clientdomain.ErrInvalidName,
		clientdomain.ErrInvalidPhone,
		clientdomain.ErrInvalidEmail,
		clientdomain.ErrInvalidGender:
		return true
	default:
		return false
	}
}

func isClientNotFound(err error) bool {
	return err == clientdomain.ErrNotFound
}
