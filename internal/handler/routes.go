package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes : маршруты /users под basePath. authMiddleware защищает всё, кроме
// регистрации, входа и обновления токенов
func SetupRoutes(
	router chi.Router,
	basePath string,
	authHandler *AuthenticationHandler,
	userHandler *UserHandler,
	authMiddleware func(http.Handler) http.Handler,
) {
	router.Route(basePath+"/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Post("/register", userHandler.RegisterUser)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh-token", authHandler.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", authHandler.Logout)
			r.Get("/current-user", userHandler.GetCurrentUser)
			r.Post("/change-password", userHandler.ChangePassword)
			r.Patch("/update-account", userHandler.UpdateAccountDetails)
			r.Patch("/avatar", userHandler.UpdateAvatar)
			r.Patch("/cover-image", userHandler.UpdateCoverImage)
		})
	})
}
