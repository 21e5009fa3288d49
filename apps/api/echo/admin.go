package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pekotaker/student-management-be/core"
	"github.com/Pekotaker/student-management-be/core/school"
	"github.com/Pekotaker/student-management-be/core/user"
)

type adminAPI struct {
	usrSvc    *user.Service
	schoolSvc *school.Service
	conf      *core.Config
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, usrSvc *user.Service, schoolSvc *school.Service, conf *core.Config) {
	api := adminAPI{usrSvc: usrSvc, schoolSvc: schoolSvc, conf: conf}

	// un-authed endpoints
	g.POST("/register", api.register)
	g.POST("/login", api.login)

	// authed endpoints
	ag := g.Group("", jwt, adminMiddleware())
	ag.POST("/create-class", api.createClass)
	ag.POST("/create-subject", api.createSubject)
	ag.POST("/assign-teacher-to-class", api.assignTeacherToClass)
	ag.POST("/create-schedule", api.createSchedule)
	ag.GET("/teachers", api.queryTeachers)
	ag.GET("/classes", api.queryClasses)
	ag.GET("/subjects", api.querySubjects)
}

func (api *adminAPI) register(ctx echo.Context) error {
	data := new(user.NewAdmin)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(ctx.Request().Context(), api.usrSvc); err != nil {
		return err
	}

	adm, err := api.usrSvc.RegisterAdmin(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, adm)
}

func (api *adminAPI) login(ctx echo.Context) error {
	data := new(user.Credentials)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	adm, err := api.usrSvc.AuthenticateAdmin(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	token, err := GenerateToken(GetClaims(adm.ID, user.RoleAdmin, api.conf), api.conf)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{AccessToken: token, TokenType: "bearer"})
}

func (api *adminAPI) createClass(ctx echo.Context) error {
	data := new(school.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.schoolSvc.CreateClass(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *adminAPI) createSubject(ctx echo.Context) error {
	data := new(school.NewSubject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sub, err := api.schoolSvc.CreateSubject(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *adminAPI) assignTeacherToClass(ctx echo.Context) error {
	data := new(school.AssignTeacherClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if _, err := api.schoolSvc.AssignTeacherToClass(ctx.Request().Context(), *data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Teacher assigned to class successfully"})
}

func (api *adminAPI) createSchedule(ctx echo.Context) error {
	data := new(school.NewSchedule)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sch, err := api.schoolSvc.CreateSchedule(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sch)
}

func (api *adminAPI) queryTeachers(ctx echo.Context) error {
	teachers, err := api.schoolSvc.Teachers(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *adminAPI) queryClasses(ctx echo.Context) error {
	classes, err := api.schoolSvc.Classes(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *adminAPI) querySubjects(ctx echo.Context) error {
	subjects, err := api.schoolSvc.Subjects(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}
