package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pekotaker/student-management-be/core/school"
)

type studentAPI struct {
	svc *school.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := studentAPI{svc: svc}

	ag := g.Group("", jwt)
	ag.POST("/register-student", api.registerStudent)
	ag.GET("/scores/:user_id", api.getScores)
	ag.GET("/schedule/:user_id", api.getSchedule)
}

func (api *studentAPI) registerStudent(ctx echo.Context) error {
	data := new(school.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.svc.RegisterStudent(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentAPI) getScores(ctx echo.Context) error {
	userID, err := pathID(ctx, "user_id")
	if err != nil {
		return err
	}

	scores, err := api.svc.StudentScores(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, scores)
}

func (api *studentAPI) getSchedule(ctx echo.Context) error {
	userID, err := pathID(ctx, "user_id")
	if err != nil {
		return err
	}

	entries, err := api.svc.StudentSchedule(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}
