package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/hireman/internal/job"
	"github.com/hitoshi/hireman/internal/model"
)

// JobServiceInterface は求人ハンドラーが必要とするサービスインターフェース。
type JobServiceInterface interface {
	// ListJobs は検索・ソート条件に合致する求人を応募件数付きで全件返す。
	ListJobs(ctx context.Context, search, sortBy string, order model.SortOrder) ([]model.JobWithCount, error)
	// CreateJob は新しい求人を作成する。
	CreateJob(ctx context.Context, input job.CreateJobInput) (*model.Job, error)
}

// JobHandler は求人カタログのHTTPハンドラー。
type JobHandler struct {
	service JobServiceInterface
}

// NewJobHandler はJobHandlerを生成する。
func NewJobHandler(service JobServiceInterface) *JobHandler {
	return &JobHandler{service: service}
}

// --- リクエスト・レスポンス型 ---

// jobResponse は求人一覧の要素。応募件数はクエリ時に毎回集計した値。
type jobResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Department        string    `json:"department"`
	Location          string    `json:"location,omitempty"`
	PostedDate        time.Time `json:"postedDate"`
	TotalApplications int       `json:"totalApplications"`
}

type createJobRequest struct {
	Title      string `json:"title"`
	Department string `json:"department"`
	Location   string `json:"location"`
}

// ListJobs は求人一覧を取得する。
// GET /api/jobs?search=xxx&sortBy=title&sortOrder=asc
// ページネーションは行わず、条件に合致する全件を返す。
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	// 求人一覧は人事担当者・応募者の両ロールが閲覧できる
	if principal.Role != model.RoleHR && principal.Role != model.RoleUser {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	query := r.URL.Query()
	search := query.Get("search")
	sortBy := query.Get("sortBy")
	order := model.SortOrder(query.Get("sortOrder"))

	jobs, err := h.service.ListJobs(r.Context(), search, sortBy, order)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, jobResponse{
			ID:                j.ID,
			Title:             j.Title,
			Department:        j.Department,
			Location:          j.Location,
			PostedDate:        j.PostedDate,
			TotalApplications: j.TotalApplications,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// CreateJob は新しい求人を登録する。
// POST /api/jobs
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	// 求人の登録は人事担当者のみ
	if principal.Role != model.RoleHR {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST_BODY",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "JSON形式でtitleとdepartmentを指定してください。",
		})
		return
	}

	created, err := h.service.CreateJob(r.Context(), job.CreateJobInput{
		Title:      req.Title,
		Department: req.Department,
		Location:   req.Location,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(jobResponse{
		ID:         created.ID,
		Title:      created.Title,
		Department: created.Department,
		Location:   created.Location,
		PostedDate: created.PostedDate,
	})
}
