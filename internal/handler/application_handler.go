package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/hireman/internal/application"
	"github.com/hitoshi/hireman/internal/model"
)

const (
	// defaultPage はページ番号が未指定・解析不能な場合のデフォルト。
	defaultPage = 1
	// defaultLimit は1ページあたりの件数のデフォルト。
	defaultLimit = 10
)

// ApplicationServiceInterface は応募ハンドラーが必要とするサービスインターフェース。
type ApplicationServiceInterface interface {
	ListByJob(ctx context.Context, jobID string, page, limit int) (*application.Page, error)
	ListByUser(ctx context.Context, userID string, page, limit int) (*application.Page, error)
	CreateApplication(ctx context.Context, input application.CreateApplicationInput) (*model.Application, error)
	UpdateStatus(ctx context.Context, applicationID string, status model.ApplicationStatus) (*model.ApplicationWithJob, error)
	UpdateInterviewRounds(ctx context.Context, applicationID string, rounds int) (*model.ApplicationWithJob, error)
}

// ApplicationHandler は応募管理のHTTPハンドラー。
type ApplicationHandler struct {
	service ApplicationServiceInterface
}

// NewApplicationHandler はApplicationHandlerを生成する。
func NewApplicationHandler(service ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// --- リクエスト・レスポンス型 ---

// hrApplicationListResponse は求人単位の応募一覧レスポンス。
type hrApplicationListResponse struct {
	Applications []application.HRView `json:"applications"`
	Total        int                  `json:"total"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
}

// userApplicationListResponse は応募者本人の応募一覧レスポンス。
// progressはapplicationsと同じ順序で並ぶ。
type userApplicationListResponse struct {
	Applications []application.ApplicantView `json:"applications"`
	Progress     []application.ProgressEntry `json:"progress"`
	Total        int                         `json:"total"`
	Page         int                         `json:"page"`
	Limit        int                         `json:"limit"`
}

type createApplicationRequest struct {
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	Resume         string `json:"resume"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateInterviewRoundsRequest struct {
	InterviewRounds int `json:"interviewRounds"`
}

// parsePaging はクエリ文字列からページ番号と件数を取り出す。
// 未指定・解析不能な値はデフォルト（1ページ目・10件）に落とし、エラーにしない。
func parsePaging(r *http.Request) (int, int) {
	page := defaultPage
	limit := defaultLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	return page, limit
}

// ListJobApplications は求人単位の応募一覧をページネーション付きで取得する。
// GET /api/jobs/{jobID}/applications?page=1&limit=10
// 候補者情報を含むため人事担当者のみ閲覧できる。
func (h *ApplicationHandler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if principal.Role != model.RoleHR {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	jobID := chi.URLParam(r, "jobID")
	page, limit := parsePaging(r)

	result, err := h.service.ListByJob(r.Context(), jobID, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hrApplicationListResponse{
		Applications: application.AssembleHRViews(result.Applications),
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
	})
}

// ListMyApplications は応募者本人の応募一覧を面接進捗付きで取得する。
// GET /api/user/applications?page=1&limit=10
func (h *ApplicationHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if principal.Role != model.RoleUser {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	page, limit := parsePaging(r)

	result, err := h.service.ListByUser(r.Context(), principal.UserID, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	views, progress := application.AssembleApplicantViews(result.Applications)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userApplicationListResponse{
		Applications: views,
		Progress:     progress,
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
	})
}

// CreateApplication は求人への応募を登録する。
// POST /api/jobs/{jobID}/applications
func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	// 応募の登録は応募者本人のみ
	if principal.Role != model.RoleUser {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST_BODY",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "JSON形式でcandidateNameとcandidateEmailを指定してください。",
		})
		return
	}

	created, err := h.service.CreateApplication(r.Context(), application.CreateApplicationInput{
		JobID:          chi.URLParam(r, "jobID"),
		UserID:         principal.UserID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Resume:         req.Resume,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":          created.ID,
		"jobId":       created.JobID,
		"status":      string(created.Status),
		"appliedDate": created.AppliedDate,
	})
}

// UpdateStatus は応募の選考ステータスを更新する。
// PUT /api/applications/{id}
// どのステータスからどのステータスへも遷移できる。
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if principal.Role != model.RoleHR {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST_BODY",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "JSON形式でstatusを指定してください。",
		})
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), model.ApplicationStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(application.AssembleHRView(updated))
}

// UpdateInterviewRounds は応募の面接ラウンド数を更新する。
// PUT /api/applications/{id}/progress
// 進捗パーセンテージはラウンド数から毎回算出して返す。
func (h *ApplicationHandler) UpdateInterviewRounds(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if principal.Role != model.RoleHR {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	var req updateInterviewRoundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST_BODY",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "JSON形式でinterviewRoundsを指定してください。",
		})
		return
	}

	updated, err := h.service.UpdateInterviewRounds(r.Context(), chi.URLParam(r, "id"), req.InterviewRounds)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(application.AssembleHRView(updated))
}
