package main

import (
	"fmt"
	"os"
	"time"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"skilllink/controller"
	"skilllink/model"
	"skilllink/platform"
	"skilllink/repository"
	"skilllink/service"
)

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

func main() {
	fmt.Println("Server started...")

	//Load the .env file
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("failed to load the env file")
	}

	platform.InitFile("./log", "gin")

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	//init database
	db, err := platform.NewDB(platform.ConfigFromEnv())
	if err != nil {
		logrus.Fatalf("failed to connect database: %s", err)
	}
	if err := model.Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %s", err)
	}

	registerRoutes(r, db)

	reconcile := service.NewReconcileService(
		repository.NewReviewRepository(db),
		repository.NewUserRepository(db),
		repository.NewConversationRepository(db),
		repository.NewMessageRepository(db),
	)
	c := cron.New()
	c.AddFunc("0 3 * * *", reconcile.Run)
	c.Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	r.Run(":" + port)
}

func registerRoutes(r *gin.Engine, db *gorm.DB) {
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	posts := repository.NewPostRepository(db)
	responses := repository.NewResponseRepository(db)
	reviews := repository.NewReviewRepository(db)
	notifications := repository.NewNotificationRepository(db)
	conversations := repository.NewConversationRepository(db)
	messages := repository.NewMessageRepository(db)

	tokenService := new(service.TokenService)
	userService := service.NewUserService(users, tokenService)
	// 接口里装了有类型的 nil 指针依然非 nil，这里单独判一次
	var pusher service.Pusher
	if p := service.NewFCMPusherFromEnv(); p != nil {
		pusher = p
	}
	notificationService := service.NewNotificationService(notifications, users, pusher, service.NewMailerFromEnv())
	postService := service.NewPostService(posts, categories)
	responseService := service.NewResponseService(responses, posts, notificationService)
	reviewService := service.NewReviewService(reviews, posts, users)
	messageService := service.NewMessageService(db, conversations, messages, users, notificationService)
	uploadService := service.NewUploadServiceFromEnv()

	auth := controller.NewAuthController(tokenService, users)
	user := controller.NewUserController(userService)
	category := controller.NewCategoryController(categories)
	post := controller.NewPostController(postService)
	response := controller.NewResponseController(responseService)
	review := controller.NewReviewController(reviewService)
	message := controller.NewMessageController(messageService)
	notification := controller.NewNotificationController(notificationService)
	upload := controller.NewUploadController(uploadService)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(503, gin.H{"status": "error", "message": "Database unavailable"})
			return
		}
		c.JSON(200, gin.H{"status": "success", "message": "OK"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/register", user.Register)
		api.POST("/auth/login", user.Login)
		api.GET("/auth/profile", auth.RequireAuth(), user.Profile)
		api.PUT("/auth/profile", auth.RequireAuth(), user.UpdateProfile)
		api.PUT("/auth/fcm-token", auth.RequireAuth(), user.UpdateFcmToken)
		api.POST("/auth/refresh-token", auth.RequireAuth(), user.RefreshToken)

		api.GET("/categories", category.List)
		api.GET("/categories/:id", category.Get)

		api.POST("/posts", auth.RequireAuth(), post.Create)
		api.GET("/posts", auth.OptionalAuth(), post.List)
		api.GET("/posts/my/posts", auth.RequireAuth(), post.ListMine)
		api.GET("/posts/:id", auth.OptionalAuth(), post.Get)
		api.PUT("/posts/:id", auth.RequireAuth(), post.Update)
		api.DELETE("/posts/:id", auth.RequireAuth(), post.Delete)

		api.POST("/responses", auth.RequireAuth(), response.Create)
		api.GET("/responses/post/:postId", response.ListByPost)
		api.GET("/responses/my/responses", auth.RequireAuth(), response.ListMine)
		api.GET("/responses/my-posts/responses", auth.RequireAuth(), response.ListForMyPosts)
		api.PUT("/responses/:id/accept", auth.RequireAuth(), response.Accept)
		api.PUT("/responses/:id", auth.RequireAuth(), response.Update)
		api.DELETE("/responses/:id", auth.RequireAuth(), response.Withdraw)

		api.POST("/reviews", auth.RequireAuth(), review.Create)
		api.GET("/reviews/user/:userId", review.ListForUser)

		api.GET("/conversations", auth.RequireAuth(), message.ListConversations)
		api.POST("/conversations", auth.RequireAuth(), message.GetOrCreateConversation)
		api.GET("/conversations/:id/messages", auth.RequireAuth(), message.ListMessages)
		api.POST("/messages", auth.RequireAuth(), message.Send)
		api.GET("/messages/unread/count", auth.RequireAuth(), message.UnreadCount)

		api.GET("/notifications", auth.RequireAuth(), notification.List)
		api.PUT("/notifications/mark-all-read", auth.RequireAuth(), notification.MarkAllRead)
		api.PUT("/notifications/:id/read", auth.RequireAuth(), notification.MarkRead)
		api.DELETE("/notifications/:id", auth.RequireAuth(), notification.Delete)

		api.POST("/upload/image", auth.RequireAuth(), upload.UploadImage)
	}
}
