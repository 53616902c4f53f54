package router

import (
	"Muze_Link/internal/handler"
	"Muze_Link/internal/middleware"
	"Muze_Link/internal/pkg"
	"Muze_Link/internal/repository/mysql"
	"Muze_Link/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRouter(cfg pkg.Config, resolver pkg.MediaResolver) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	emailSvc := service.NewEmailService(cfg.SMTP)
	userSvc := service.NewUserService(mysql.DB, emailSvc, resolver)

	user := handler.NewUserHandler(userSvc)
	email := handler.NewEmailHandler(emailSvc)
	profile := handler.NewProfileHandler(userSvc, resolver)
	post := handler.NewPostHandler(service.NewPostService(mysql.DB, resolver), resolver)
	follow := handler.NewFollowHandler(service.NewFollowService(mysql.DB))
	showcase := handler.NewShowcaseHandler(service.NewShowcaseService(mysql.DB, resolver), resolver)
	conversation := handler.NewConversationHandler(service.NewConversationService(mysql.DB))
	message := handler.NewMessageHandler(service.NewMessageService(mysql.DB))
	media := handler.NewMediaHandler(resolver)

	// 媒体：对象存储签名跳转；本地落盘直接走静态目录
	r.GET("/media/*key", media.Fetch)
	if !cfg.Media.ObjectStoreEnabled() {
		r.Static("/"+cfg.Media.LocalDir, cfg.Media.LocalDir)
	}

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/user/logout", user.Logout)
		authGroup.POST("/auth/change-password", user.ChangePassword)
		authGroup.POST("/account/delete", user.DeleteAccount)

		authGroup.GET("/profile", profile.Me)
		authGroup.POST("/profile/update", profile.Update)
		authGroup.GET("/users/:id", profile.ByID)
		authGroup.GET("/user_search", user.Search)

		authGroup.POST("/showcase/update", showcase.Update)
		authGroup.GET("/users/:id/showcase", showcase.ListByUser)

		authGroup.GET("/feed", post.Feed)
		authGroup.POST("/posts", post.Create)
		authGroup.POST("/posts/:id/edit", post.Edit)
		authGroup.POST("/posts/:id/delete", post.Delete)

		authGroup.POST("/follow/toggle", follow.Toggle)
		authGroup.GET("/users/:id/followers", follow.ListFollowers)
		authGroup.GET("/users/:id/following", follow.ListFollowing)

		authGroup.POST("/conversations/start", conversation.Start)
		authGroup.GET("/conversations", conversation.List)
		authGroup.POST("/conversations/delete", conversation.Delete)
		authGroup.GET("/conversations/:id/messages", message.List)
		authGroup.POST("/messages", message.Send)
		authGroup.POST("/messages/:id/delete", message.Delete)
	}

	return r
}
