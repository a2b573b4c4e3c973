package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/gate"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/repository"
)

func newTestHandler(t *testing.T, now time.Time) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.Dir = t.TempDir()
	cfg.Storage.SubmissionsFile = "submissions.json"
	cfg.Storage.ScheduleFile = "schedule.json"
	cfg.Calendar.RequiredDays = 24
	cfg.Calendar.SlotsPerDay = 3
	cfg.Calendar.TargetMonth = 12
	cfg.Server.StaticDir = t.TempDir()

	h, err := NewHandler(cfg, repository.NewRepository(cfg), time.UTC)
	require.NoError(t, err)

	h.now = func() time.Time { return now }
	h.RegisterRoutes()

	return h
}

func doJSONRequest(t *testing.T, h *Handler, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	return rec
}

func TestCreateSubmission(t *testing.T) {
	h := newTestHandler(t, time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC))

	rec := doJSONRequest(t, h, http.MethodPost, "/api/submissions", map[string]any{
		"name":  "  王伟  ",
		"links": []string{" https://example.com/a1 ", "https://example.com/a2"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "投稿成功", resp.Message)

	submissions, err := h.repository.GetAllSubmissions()
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	require.Equal(t, "王伟", submissions[0].Name)
	require.Equal(t, []string{"https://example.com/a1", "https://example.com/a2"}, submissions[0].Links)
	require.NotEmpty(t, submissions[0].ID)
}

func TestCreateSubmission_Invalid(t *testing.T) {
	h := newTestHandler(t, time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC))

	cases := []struct {
		name string
		body any
	}{
		{"缺少姓名", map[string]any{"links": []string{"https://example.com/a1"}}},
		{"姓名全是空格", map[string]any{"name": "   ", "links": []string{"https://example.com/a1"}}},
		{"没有链接", map[string]any{"name": "王伟", "links": []string{}}},
		{"链接全是空格", map[string]any{"name": "王伟", "links": []string{"   "}}},
		{"链接不是 URL", map[string]any{"name": "王伟", "links": []string{"不是链接"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSONRequest(t, h, http.MethodPost, "/api/submissions", tc.body)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				Success bool `json:"success"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.False(t, resp.Success)
		})
	}

	submissions, err := h.repository.GetAllSubmissions()
	require.NoError(t, err)
	require.Empty(t, submissions)
}

func TestCreateSubmission_MalformedJSON(t *testing.T) {
	h := newTestHandler(t, time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader("{这不是 JSON"))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "请求体不是合法的 JSON", resp.Message)
}

func TestCreateSubmission_RejectedAfterGenerate(t *testing.T) {
	h := newTestHandler(t, time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, h.repository.ReplaceSchedule(&domain.Schedule{
		Seed: 1,
		Days: map[int][]domain.CalendarSlot{
			1: {{URL: "https://example.com/a1", SubmitterName: "王伟"}},
		},
	}))

	rec := doJSONRequest(t, h, http.MethodPost, "/api/submissions", map[string]any{
		"name":  "李娜",
		"links": []string{"https://example.com/b1"},
	})

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "日历已经生成，投稿已截止", resp.Message)

	submissions, err := h.repository.GetAllSubmissions()
	require.NoError(t, err)
	require.Empty(t, submissions)
}

func TestGetCalendar_NoScheduleAllLocked(t *testing.T) {
	h := newTestHandler(t, time.Date(2024, time.December, 10, 10, 0, 0, 0, time.UTC))

	rec := doJSONRequest(t, h, http.MethodGet, "/api/calendar", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                          `json:"success"`
		Data    map[int][]domain.CalendarSlot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 24)

	for day := 1; day <= 24; day++ {
		require.Equal(t, []domain.CalendarSlot{{URL: gate.Redacted, SubmitterName: gate.Redacted}}, resp.Data[day])
	}
}

func TestGetCalendar_GateApplied(t *testing.T) {
	h := newTestHandler(t, time.Date(2024, time.December, 2, 10, 0, 0, 0, time.UTC))

	schedule := &domain.Schedule{
		Seed: 1,
		Days: map[int][]domain.CalendarSlot{
			1: {{URL: "https://example.com/a1", SubmitterName: "王伟"}},
			2: {{URL: "https://example.com/b1", SubmitterName: "李娜"}},
			3: {{URL: "https://example.com/c1", SubmitterName: "张敏"}},
		},
	}
	require.NoError(t, h.repository.ReplaceSchedule(schedule))

	rec := doJSONRequest(t, h, http.MethodGet, "/api/calendar", nil)

	var resp struct {
		Success bool                          `json:"success"`
		Data    map[int][]domain.CalendarSlot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 3)

	require.Equal(t, schedule.Days[1], resp.Data[1])
	require.Equal(t, schedule.Days[2], resp.Data[2])
	require.Equal(t, []domain.CalendarSlot{{URL: gate.Redacted, SubmitterName: gate.Redacted}}, resp.Data[3])
}
