package api

import (
	"net/http"

	"github.com/AntonStoeckl/library-management-api/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-management-api/app/features/query/authenticateuser"
	"github.com/AntonStoeckl/library-management-api/app/features/query/currentuser"
	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

func (s *Server) userRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/users/register", handleCommand(s, s.handlers.RegisterUser, http.StatusCreated,
		func(w http.ResponseWriter, r *http.Request) (registeruser.Command, error) {
			var req registerRequest
			if err := decodeJSON(w, r, &req); err != nil {
				return registeruser.Command{}, err
			}

			return registeruser.BuildCommand(req.Username, req.Password, s.now()), nil
		},
	))

	mux.HandleFunc("POST /api/users/login", s.login)

	mux.Handle("GET /api/users/me", s.authenticated(handleQuery(s, s.handlers.CurrentUser,
		func(r *http.Request) (currentuser.Query, error) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				return currentuser.Query{}, core.Unauthorized(msgMissingToken)
			}

			userID, err := claims.UserID()
			if err != nil {
				return currentuser.Query{}, core.Unauthorized(msgInvalidToken).WithCause(err)
			}

			return currentuser.BuildQuery(userID), nil
		},
	)))
}

// login answers like any query and additionally sets the token as an HttpOnly cookie.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.handlers.AuthenticateUser.Handle(r.Context(), authenticateuser.BuildQuery(req.Username, req.Password))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    result.Token.AccessToken,
		Path:     "/",
		Expires:  result.Token.ExpiresAt,
		HttpOnly: true,
		Secure:   !s.development,
		SameSite: http.SameSiteLaxMode,
	})

	s.writeJSON(w, r, http.StatusOK, result)
}
