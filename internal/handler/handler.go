package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/repository"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	location   *time.Location
	now        func() time.Time // 测试时可以替换掉

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, loc *time.Location) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		location:   loc,
		now:        time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/api", func(r chi.Router) {
		r.With(h.preventSubmitAfterGenerate).Post("/submissions", h.CreateSubmission)
		r.Get("/calendar", h.GetCalendar)
	})

	// 日历页面是纯静态页面，由后端一并提供
	h.Mux.Handle("/*", http.FileServer(http.Dir(h.config.Server.StaticDir)))
}
