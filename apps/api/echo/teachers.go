package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Pekotaker/student-management-be/core/school"
)

type teacherAPI struct {
	svc *school.Service
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := teacherAPI{svc: svc}

	ag := g.Group("", jwt)
	ag.POST("/register-teacher", api.registerTeacher)
	ag.GET("/subject/:teacher_id", api.getSubject)
	ag.GET("/classes/:teacher_id", api.getClasses)
	ag.GET("/students/:teacher_id", api.getStudents)
	ag.POST("/add-score", api.addScore)
}

func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func (api *teacherAPI) registerTeacher(ctx echo.Context) error {
	data := new(school.NewTeacher)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tch, err := api.svc.RegisterTeacher(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *teacherAPI) getSubject(ctx echo.Context) error {
	teacherID, err := pathID(ctx, "teacher_id")
	if err != nil {
		return err
	}

	sub, err := api.svc.TeacherSubject(ctx.Request().Context(), teacherID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"subject_id": sub.ID, "subject_name": sub.Name})
}

func (api *teacherAPI) getClasses(ctx echo.Context) error {
	teacherID, err := pathID(ctx, "teacher_id")
	if err != nil {
		return err
	}

	classes, err := api.svc.TeacherClasses(ctx.Request().Context(), teacherID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *teacherAPI) getStudents(ctx echo.Context) error {
	teacherID, err := pathID(ctx, "teacher_id")
	if err != nil {
		return err
	}

	students, err := api.svc.TeacherStudents(ctx.Request().Context(), teacherID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *teacherAPI) addScore(ctx echo.Context) error {
	data := new(school.NewScore)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if _, err := api.svc.AddScore(ctx.Request().Context(), *data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Score added successfully"})
}
