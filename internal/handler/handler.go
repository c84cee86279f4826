package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/schedule"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	scheduler   *schedule.Validator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 排班规则从默认目录出发，把配置里的开关落到规则上
	rules := schedule.DefaultRuleCatalog()
	rules.StrictHourEquality = cfg.Schedule.StrictHourEquality
	if cfg.Schedule.SaturdayRuleSeverity == string(schedule.SeverityWarning) {
		rules.SaturdayRuleSeverity = schedule.SeverityWarning
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		scheduler:   schedule.NewValidator(rules),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUser)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStoreManager})).Post("/", h.CreateEmployee)
			r.Route("/{numberDocument}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStoreManager})).Patch("/", h.UpdateEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteEmployee)
			})
		})

		r.Route("/shift-types", func(r chi.Router) {
			r.Get("/", h.GetAllShiftTypes)
			r.Get("/{code}", h.GetShiftType)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateShiftType)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/{code}", h.UpdateShiftType)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/{code}", h.DeleteShiftType)
		})

		r.Route("/employee-shifts", func(r chi.Router) {
			r.Get("/weeks", h.GetMonthWeeks)
			r.Get("/range", h.GetShiftsByDateRange)
			r.Get("/employee/{numberDocument}", h.GetShiftsByEmployee)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStoreManager}), h.myInfo).Post("/generate", h.GenerateShifts)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStoreManager})).Delete("/{id}", h.DeleteShift)
		})
	})
}
