package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/article"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/auth"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/category"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/feedback"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/report"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/reportlog"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport/middleware"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport/swagger"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/user"
)

type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Report    *report.Handler
	ReportLog *reportlog.Handler
	Article   *article.Handler
	Category  *category.Handler
	Feedback  *feedback.Handler
}

// RegisterAllRoutes wires every handler into the route tree. Route groups
// carry the role gate; per-record ownership checks stay in the services.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRoleAuthorization(logger)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Authenticated routes
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)
			pr.Get("/categories", h.Category.ListCategories)

			pr.Route("/reports", func(rr chi.Router) {
				rr.Post("/", h.Report.CreateReport)
				rr.Get("/", h.Report.ListReports)
				rr.Get("/{id}", h.Report.GetReport)
				rr.Delete("/{id}", h.Report.DeleteReport)
				rr.Get("/{id}/attachment", h.Report.GetAttachmentURL)

				rr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Patch("/{id}/assignee", h.Report.AssignReport)
				})

				rr.Group(func(ir chi.Router) {
					ir.Use(rbac.RequireIT())
					ir.Patch("/{id}/status", h.Report.TransitionStatus)
				})
			})

			pr.Group(func(sr chi.Router) {
				sr.Use(rbac.RequireStaff())
				sr.Get("/report-logs", h.ReportLog.ListLogs)
			})

			pr.Route("/articles", func(ar chi.Router) {
				ar.Get("/", h.Article.ListArticles)
				ar.Get("/mine", h.Article.ListMyArticles)
				ar.Post("/", h.Article.CreateArticle)
				ar.Get("/{id}", h.Article.GetArticle)
				ar.Put("/{id}", h.Article.UpdateArticle)
				ar.Delete("/{id}", h.Article.DeleteArticle)

				ar.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireAdmin())
					mr.Get("/pending", h.Article.ListPendingArticles)
					mr.Patch("/{id}/approve", h.Article.ApproveArticle)
					mr.Patch("/{id}/reject", h.Article.RejectArticle)
				})
			})

			pr.Post("/feedback", h.Feedback.SubmitFeedback)

			// Admin-only surfaces
			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin())

				ar.Get("/users/it-personnel", h.User.ListITPersonnel)

				ar.Route("/admin/categories", func(cr chi.Router) {
					cr.Post("/", h.Category.CreateCategory)
					cr.Get("/{id}", h.Category.GetCategory)
					cr.Put("/{id}", h.Category.UpdateCategory)
					cr.Delete("/{id}", h.Category.DeleteCategory)
				})

				ar.Route("/admin/feedback", func(fr chi.Router) {
					fr.Get("/", h.Feedback.ListFeedback)
					fr.Get("/{id}", h.Feedback.GetFeedback)
				})
			})
		})
	})
}
