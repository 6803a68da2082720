package handler

import (
	"net/http"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/service"
	"github.com/ujjiboni/dashboard/pkg/response"
)

type MemberHandler struct {
	members service.Members
}

func NewMemberHandler(members service.Members) *MemberHandler {
	return &MemberHandler{members: members}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListMembers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, members)
}

func (h *MemberHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req domain.InviteMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.members.InviteMember(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusCreated, message)
}

type SummaryHandler struct {
	summary service.Summary
}

func NewSummaryHandler(summary service.Summary) *SummaryHandler {
	return &SummaryHandler{summary: summary}
}

func (h *SummaryHandler) Organization(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.OrganizationSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, summary)
}
