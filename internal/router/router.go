package router

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"smartattend/internal/auth"
	"smartattend/internal/handler"
	"smartattend/internal/service"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth       *handler.AuthHandler
	Classroom  *handler.ClassroomHandler
	Attendance *handler.AttendanceHandler
	Focus      *handler.FocusHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authService service.AuthService,
	h Handlers,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = NewCustomValidator()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.MessageResponse{Message: "Smart Attendance API is running"})
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/signup", h.Auth.Signup)
	e.POST("/login", h.Auth.Login)
	e.GET("/classrooms", h.Classroom.ListClassrooms)
	e.GET("/classrooms/:id", h.Classroom.GetClassroom)

	// Secured routes (require a bearer token naming an existing user)
	secured := e.Group("",
		echojwt.WithConfig(JWTConfig(jwtService)),
		handler.RequireUser(authService),
	)

	secured.GET("/me", h.Auth.Me)
	secured.POST("/logout", h.Auth.Logout)

	// Attendance routes
	secured.POST("/attendance", h.Attendance.MarkAttendance)
	secured.GET("/attendance/history", h.Attendance.AttendanceHistory)

	// Focus routes
	secured.POST("/focus/start", h.Focus.StartFocus)
	secured.POST("/focus/stop", h.Focus.StopFocus)
	secured.GET("/focus/status", h.Focus.FocusStatus)
}

// JWTConfig reads "Authorization: Bearer <token>" and validates it with
// jwtService. Validated *auth.Claims are stored under handler.ClaimsContextKey.
// Every failure answers with the same 401 body.
func JWTConfig(jwtService *auth.JWTService) echojwt.Config {
	return echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Debugf("rejected bearer token: %v", err)
			return handler.Unauthorized()
		},
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator registers the project's extra tags on a fresh validator.
// maxbytes=N limits the encoded length of a string, as bcrypt counts bytes
// where max counts characters.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return &CustomValidator{validator: v}
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
