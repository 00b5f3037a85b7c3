// Package api exposes the HTTP surface: auth and profile endpoints, the
// board/category/goal/comment CRUD, and the bot verification endpoint.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"goaltracker/internal/auth"
	"goaltracker/internal/bot"
	"goaltracker/internal/database"
)

type API struct {
	store   *database.Store
	log     *slog.Logger
	secret  []byte
	revoked *auth.RevokedTokens

	// tg pushes the link confirmation to the chat on /bot/verify. May be
	// nil when the server runs without a bot token.
	tg bot.Client
}

func New(store *database.Store, log *slog.Logger, secret []byte, revoked *auth.RevokedTokens, tg bot.Client) *API {
	return &API{
		store:   store,
		log:     log,
		secret:  secret,
		revoked: revoked,
		tg:      tg,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)

	r.Route("/core", func(r chi.Router) {
		r.Post("/signup", a.handleSignup)
		r.Post("/login", a.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(a.authenticate)
			r.Get("/profile", a.handleGetProfile)
			r.Put("/profile", a.handleUpdateProfile)
			r.Patch("/profile", a.handleUpdateProfile)
			r.Delete("/profile", a.handleLogout)
			r.Put("/update_password", a.handleUpdatePassword)
		})
	})

	r.Route("/goals", func(r chi.Router) {
		r.Use(a.authenticate)

		r.Post("/board/create", a.handleCreateBoard)
		r.Get("/board/list", a.handleListBoards)
		r.Get("/board/{id}", a.handleGetBoard)
		r.Put("/board/{id}", a.handleUpdateBoard)
		r.Patch("/board/{id}", a.handleUpdateBoard)
		r.Delete("/board/{id}", a.handleDeleteBoard)

		r.Post("/goal_category/create", a.handleCreateCategory)
		r.Get("/goal_category/list", a.handleListCategories)
		r.Get("/goal_category/{id}", a.handleGetCategory)
		r.Put("/goal_category/{id}", a.handleUpdateCategory)
		r.Patch("/goal_category/{id}", a.handleUpdateCategory)
		r.Delete("/goal_category/{id}", a.handleDeleteCategory)

		r.Post("/goal/create", a.handleCreateGoal)
		r.Get("/goal/list", a.handleListGoals)
		r.Get("/goal/{id}", a.handleGetGoal)
		r.Put("/goal/{id}", a.handleUpdateGoal)
		r.Patch("/goal/{id}", a.handleUpdateGoal)
		r.Delete("/goal/{id}", a.handleDeleteGoal)

		r.Post("/goal_comment/create", a.handleCreateComment)
		r.Get("/goal_comment/list", a.handleListComments)
		r.Get("/goal_comment/{id}", a.handleGetComment)
		r.Put("/goal_comment/{id}", a.handleUpdateComment)
		r.Patch("/goal_comment/{id}", a.handleUpdateComment)
		r.Delete("/goal_comment/{id}", a.handleDeleteComment)
	})

	r.With(a.authenticate).Patch("/bot/verify", a.handleVerify)

	return r
}
