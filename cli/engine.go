package main

import (
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/identity"
	"github.com/Imran-2020331101/evalia/jobs"
	"github.com/Imran-2020331101/evalia/proxy"
)

// GetMainEngine wires every route the gateway serves. Everything except
// registration, login and email verification sits behind the bearer-token
// middleware.
func GetMainEngine(auth *gateway.JWTAuth, identitySvc *identity.Service, proxySvc *proxy.Service, jobsSvc *jobs.Service) *gin.Engine {
	route := gin.New()
	route.HandleMethodNotAllowed = true
	route.Use(gin.Recovery())
	route.Use(gateway.RequestID())
	route.Use(gateway.RequestLogger(logrusLogger, logSampling))
	route.Use(gateway.Instrumentation())
	route.Use(gateway.OptionsMiddleware)

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(route)

	authRoutes := route.Group("/api/auth")
	{
		authRoutes.POST("/register", identitySvc.Register)
		authRoutes.POST("/login", identitySvc.Login)
		authRoutes.POST("/verify-email", identitySvc.VerifyEmail)
		authRoutes.POST("/resend-verification", identitySvc.ResendVerification)
		authRoutes.PUT("/role", auth.AuthMiddleware(), identitySvc.UpdateRole)
	}

	user := route.Group("/api/user", auth.AuthMiddleware())
	{
		user.GET("/profile", identitySvc.Profile)
		user.PATCH("/profile", identitySvc.PatchProfile)
		user.GET("/:userId", identitySvc.UserByID)
		user.GET("/candidate/:candidateEmail", identitySvc.CandidateProfile)
	}

	organization := route.Group("/api/organization", auth.AuthMiddleware())
	{
		organization.POST("", identitySvc.CreateOrganization)
		organization.GET("", identitySvc.MyOrganizations)
		organization.GET("/:organizationId", identitySvc.OrganizationByID)
		organization.PATCH("/:organizationId", identitySvc.PatchOrganization)
		organization.DELETE("/:organizationId", identitySvc.DeleteOrganization)
	}

	job := route.Group("/api/job", auth.AuthMiddleware())
	{
		job.GET("", jobsSvc.ActiveJobs)
		job.GET("/suggestions", jobsSvc.JobSuggestions)
		job.GET("/applied", jobsSvc.AppliedJobs)
		job.GET("/saved", jobsSvc.SavedJobs)
		job.GET("/organization/:organizationId", jobsSvc.OrganizationJobs)
		job.POST("/organization/:organizationId", jobsSvc.CreateJob)
		job.GET("/:jobId", jobsSvc.JobByID)
		job.DELETE("/:jobId", jobsSvc.DeleteJob)
		job.POST("/:jobId/apply", jobsSvc.Apply)
		job.DELETE("/:jobId/apply", jobsSvc.Withdraw)
		job.POST("/:jobId/save", jobsSvc.Save)
		job.DELETE("/:jobId/save", jobsSvc.Unsave)
		job.POST("/:jobId/shortlist", jobsSvc.Shortlist)
		job.POST("/:jobId/finalist", jobsSvc.Finalist)
		job.POST("/:jobId/interview-questions", jobsSvc.GenerateInterviewQuestions)
		job.GET("/:jobId/interview-questions", jobsSvc.InterviewQuestionsOfJob)
	}

	resume := route.Group("/api/resume", auth.AuthMiddleware())
	{
		resume.POST("/extract", proxySvc.ExtractResume)
		resume.POST("/save", proxySvc.SaveResume)
		resume.POST("/search", proxySvc.SearchResumes)
	}

	interview := route.Group("/api/interview", auth.AuthMiddleware())
	{
		interview.GET("", proxySvc.AllInterviews)
		interview.GET("/user", proxySvc.UserInterviews)
		interview.GET("/:interviewId", proxySvc.InterviewByID)
		interview.PUT("/:interviewId/transcript", proxySvc.AddTranscript)
		interview.GET("/:interviewId/evaluation", proxySvc.InterviewEvaluation)
	}

	route.GET("/api/compatibility/:reviewId", auth.AuthMiddleware(), proxySvc.CompatibilityReview)

	notifications := route.Group("/api/notifications", auth.AuthMiddleware())
	{
		notifications.GET("", proxySvc.UserNotifications)
		notifications.PATCH("/read-all", proxySvc.MarkAllNotificationsRead)
		notifications.PATCH("/:notificationId/read", proxySvc.MarkNotificationRead)
		notifications.DELETE("/:notificationId", proxySvc.DeleteNotification)
	}

	course := route.Group("/api/course", auth.AuthMiddleware())
	{
		course.GET("/suggestions", proxySvc.CourseSuggestions)
		course.POST("/save", proxySvc.SaveCourse)
		course.GET("/saved", proxySvc.SavedCourses)
		course.DELETE("/:videoId", proxySvc.DeleteCourse)
	}

	return route
}
