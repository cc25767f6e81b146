package router

import (
	"pixelforge/internal/config"
	"pixelforge/internal/handler"
	"pixelforge/internal/middleware"
	"pixelforge/internal/repository"
	"pixelforge/internal/service"
	"pixelforge/internal/session"
	"pixelforge/internal/storage"
	"pixelforge/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto the route
// surface.
func SetupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	db *gorm.DB,
	sessions *session.Store,
	files *storage.Store,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.RegisterValidations()

	r := gin.New()

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo, auditRepo, files, logger)
	projectService := service.NewProjectService(projectRepo, userRepo, files, logger)
	documentService := service.NewDocumentService(docRepo, projectRepo, files, cfg, logger)

	authHandler := handler.NewAuthHandler(authService, sessions, cfg)
	userHandler := handler.NewUserHandler(userService, sessions)
	projectHandler := handler.NewProjectHandler(projectService, sessions)
	documentHandler := handler.NewDocumentHandler(documentService, projectService, sessions)

	// Anonymous routes.
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)

	// Everything else requires a live session.
	authorized := r.Group("")
	authorized.Use(middleware.SessionAuth(sessions, userRepo, cfg.Session))
	{
		authorized.GET("/", projectHandler.Index)
		authorized.GET("/logout", authHandler.Logout)

		authorized.GET("/account_settings", authHandler.ShowAccountSettings)
		authorized.POST("/account_settings", authHandler.UpdatePassword)

		// Project-scoped routes; ownership is checked per resource by the
		// services against the authorization policy.
		authorized.GET("/project/:id", projectHandler.Details)
		authorized.GET("/project/:id/assign_team", projectHandler.ShowAssignTeam)
		authorized.POST("/project/:id/assign_team", projectHandler.AssignTeam)
		authorized.GET("/project/:id/upload_document", documentHandler.ShowUpload)
		authorized.POST("/project/:id/upload_document", documentHandler.Upload)
		authorized.GET("/uploads/*key", documentHandler.Download)

		// Admin-only routes.
		admin := authorized.Group("")
		admin.Use(middleware.RequireAdmin(sessions))
		{
			admin.GET("/register", userHandler.ShowRegister)
			admin.POST("/register", userHandler.Register)
			admin.GET("/users", userHandler.ListUsers)
			admin.GET("/user/:id/edit_role", userHandler.ShowEditRole)
			admin.POST("/user/:id/edit_role", userHandler.EditRole)
			admin.POST("/user/:id/delete", userHandler.DeleteUser)
			admin.GET("/audit", userHandler.ShowAuditLog)

			admin.GET("/projects/add", projectHandler.ShowAddProject)
			admin.POST("/projects/add", projectHandler.AddProject)
			admin.GET("/project/:id/mark_completed", projectHandler.MarkCompleted)
			admin.POST("/project/:id/delete", projectHandler.DeleteProject)
		}
	}

	return r
}
