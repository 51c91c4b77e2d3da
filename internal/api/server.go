package api

import "github.com/RoyceAzure/lab/phonebook/internal/api/handler"

type Server struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ContactHandler *handler.ContactHandler
	PhotoHandler   *handler.PhotoHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	contactHandler *handler.ContactHandler,
	photoHandler *handler.PhotoHandler,
) *Server {
	return &Server{
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		ContactHandler: contactHandler,
		PhotoHandler:   photoHandler,
	}
}
