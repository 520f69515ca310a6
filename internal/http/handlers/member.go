package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/shop-backend/internal/domain/shop"
	"github.com/yungbote/shop-backend/internal/http/response"
	"github.com/yungbote/shop-backend/internal/services"
)

type MemberHandler struct {
	members services.MemberService
}

func NewMemberHandler(members services.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type joinMemberRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// POST /api/members
func (h *MemberHandler) Join(c *gin.Context) {
	var req joinMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	id, err := h.members.Join(c.Request.Context(), req.Name, types.Address{
		City:    req.City,
		Street:  req.Street,
		Zipcode: req.Zipcode,
	})
	if err != nil {
		response.RespondServiceError(c, "join_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"id": id})
}

// GET /api/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.members.FindMembers(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_members_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"members": members})
}

// GET /api/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_member_id", err)
		return
	}
	m, err := h.members.FindOne(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, "load_member_failed", err)
		return
	}
	if m == nil {
		response.RespondError(c, http.StatusNotFound, "member_not_found", nil)
		return
	}
	response.RespondOK(c, gin.H{"member": m})
}
