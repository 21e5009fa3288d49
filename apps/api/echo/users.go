package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pekotaker/student-management-be/core"
	"github.com/Pekotaker/student-management-be/core/user"
)

// LoginResponse is the bearer token envelope returned by both login endpoints.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userAPI struct {
	svc  *user.Service
	conf *core.Config
}

func registerUserAPI(g *echo.Group, svc *user.Service, conf *core.Config) {
	api := userAPI{svc: svc, conf: conf}

	g.POST("/register", api.register)
	g.POST("/login", api.login)
}

func (api *userAPI) register(ctx echo.Context) error {
	data := new(user.NewUser)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return err
	}

	usr, err := api.svc.RegisterUser(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userAPI) login(ctx echo.Context) error {
	data := new(user.Credentials)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.AuthenticateUser(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	token, err := GenerateToken(GetClaims(usr.ID, user.RoleUser, api.conf), api.conf)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{AccessToken: token, TokenType: "bearer"})
}
