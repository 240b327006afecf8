package main

import (
	"errors"
	"io"
	"log"
	"mrs/src/boot"
	"mrs/src/common"
	"mrs/src/middlewares"
	"mrs/src/models"
	"mrs/src/store"
	"mrs/src/types"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const (
	apiPrefix string = "/api/v1"
)

// Chilled units sit around 2..8C and freezers go down to -80C, so anything
// outside that band is a sensor or operator mistake.
var storageTempValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	temp, ok := fl.Field().Interface().(float64)
	if !ok {
		if p, pok := fl.Field().Interface().(*float64); pok && p != nil {
			temp = *p
		} else {
			return false
		}
	}
	return temp >= -80.0 && temp <= 15.0
}

func requestFailed(ctx *gin.Context, err error) {
	var validation *common.ValidationError
	var notFound *common.NotFoundError
	var conflict *common.ConflictError
	var persistence *common.PersistenceError
	switch {
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "problems": validation.Problems})
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &persistence):
		log.Printf("Could not complete request: %s\n", persistence.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
	default:
		log.Printf("Could not complete request: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
	}
}

func generateJWT(user *models.User) (string, error) {
	claims := &types.Claims{
		Username: user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(user.ID)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func guestAuthRoutes(g *gin.Engine, svc *common.Service) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	guest := apiv1.Group("/auth")
	guest.
		POST("/login", func(ctx *gin.Context) {
			var body struct {
				Email      string `json:"email" binding:"required,email"`
				Name       string `json:"name,omitempty"`
				AccessCode string `json:"access_code,omitempty"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			accessCode := os.Getenv("AUTH_ACCESS_CODE")
			if accessCode != "" && body.AccessCode != accessCode {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
				return
			}
			user, err := svc.Store().GetUserByEmail(body.Email)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					log.Printf("Error retrieving user [%s]: %s\n", body.Email, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
					return
				}
				user = &models.User{Email: body.Email, Name: body.Name, Role: "staff"}
				if err := svc.Store().CreateUser(user); err != nil {
					log.Printf("Error creating user [%s]: %s\n", body.Email, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
					return
				}
			}
			token, err := generateJWT(user)
			if err != nil {
				log.Printf("Error signing token: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token})
		})
	return guest
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	gateway, err := store.New()
	if err != nil {
		log.Fatalf("Failed to initialize storage gateway: %s", err.Error())
	}
	svc := common.NewService(gateway)

	if _, ok := gateway.(*store.GormGateway); ok {
		boot.InitDb()
	}
	boot.InitScheduler(svc)

	router := setupRouter()

	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOrigins = []string{os.Getenv("APP_HOST")}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("storagetemp", storageTempValidatorFunc)
	}

	router = maintenanceModeMiddleware(router)

	guestAuthRoutes(router, svc)

	webhooks := apiv1Group(router)
	temperatureWebhookHandler(webhooks, svc)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		authorized = bodyHandlers(authorized, svc)
		authorized = storageUnitHandlers(authorized, svc)
		authorized = allocationHandlers(authorized, svc)
		authorized = exitHandlers(authorized, svc)
		authorized = movementHandlers(authorized, svc)
		authorized = reportHandlers(authorized, svc)

		authorized.
			GET("/users/me", func(ctx *gin.Context) {
				username := ctx.GetString("username")
				user, err := svc.Store().GetUserByEmail(username)
				if err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "No user account is associated with this session"})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": user})
			})
	}

	if os.Getenv("TLS_ENABLE") == "true" {
		cwd, _ := os.Getwd()
		certpath := path.Join(cwd, "certificates", "localhost.pem")
		keypath := path.Join(cwd, "certificates", "localhost-key.pem")
		if err := router.RunTLS(":9090", certpath, keypath); err != nil {
			log.Fatalf("Failed to start server: %s", err)
		}
	}
	if err := router.Run(":9090"); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
