package handler

import (
	"net/http"
	"strings"

	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
)

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string   `json:"name" validate:"required,max=50"`
		Links []string `json:"links" validate:"required,min=1,max=30,dive,required,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 先去掉首尾空白再校验，否则全是空格的名字也能通过 required
	req.Name = strings.TrimSpace(req.Name)
	links := make([]string, 0, len(req.Links))
	for _, link := range req.Links {
		if link = strings.TrimSpace(link); link != "" {
			links = append(links, link)
		}
	}
	req.Links = links

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	submission := &domain.Submission{
		Name:  req.Name,
		Links: req.Links,
	}

	if err := h.repository.InsertSubmission(submission); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "投稿成功", submission)
}
