package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/middleware"
	"github.com/noah-isme/scholarsync-api/internal/models"
)

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Session       *SessionHandler
	Schedule      *ScheduleHandler
	Announcements *AnnouncementHandler
	Courses       *CourseHandler
	Performance   *PerformanceHandler
	Dashboard     *DashboardHandler
	Settings      *SettingsHandler
}

// Register mounts every route on api. roleContext must run before any handler;
// throttle guards session minting and the endpoints that call the text
// generation API.
func (h Handlers) Register(api *gin.RouterGroup, roleContext, throttle gin.HandlerFunc) {
	teacher := middleware.RequireRoles(models.RoleTeacher)
	student := middleware.RequireRoles(models.RoleStudent)

	// download links are bearer capabilities of their own
	api.GET("/materials/download/:token", h.Courses.Download)

	api.POST("/session", throttle, h.Session.Create)

	secured := api.Group("")
	secured.Use(roleContext)

	secured.GET("/session", h.Session.Current)
	secured.GET("/navigation", h.Session.Navigation)
	secured.GET("/navigation/title", h.Session.Title)

	secured.GET("/dashboard", throttle, h.Dashboard.Get)

	schedule := secured.Group("/schedule")
	schedule.GET("/week", h.Schedule.Week)
	schedule.GET("/events", h.Schedule.Events)
	schedule.POST("/events", h.Schedule.CreateEvent)
	schedule.GET("/day", h.Schedule.Day)
	schedule.GET("/sync", h.Schedule.SyncStatus)
	schedule.POST("/sync", h.Schedule.StartSync)
	schedule.GET("/export", h.Schedule.Export)

	announcements := secured.Group("/announcements")
	announcements.GET("", h.Announcements.List)
	announcements.POST("", teacher, h.Announcements.Create)
	announcements.GET("/:id", h.Announcements.Get)
	announcements.POST("/:id/toggle", h.Announcements.Toggle)
	announcements.POST("/:id/read", h.Announcements.MarkRead)
	announcements.POST("/:id/summary", throttle, h.Announcements.Summarize)

	courses := secured.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.GET("/:code/materials", h.Courses.Materials)
	courses.POST("/:code/materials", teacher, h.Courses.AddMaterial)
	courses.POST("/:code/feedback", student, h.Courses.SubmitFeedback)
	courses.GET("/:code/feedback", teacher, h.Courses.Feedback)
	courses.POST("/:code/insights", teacher, throttle, h.Courses.Insights)

	performance := secured.Group("/performance")
	performance.GET("", h.Performance.View)
	students := performance.Group("/students", teacher)
	students.GET("", h.Performance.Roster)
	students.GET("/export", h.Performance.Export)
	students.GET("/:id", h.Performance.Student)
	students.POST("/:id/analysis", throttle, h.Performance.Analysis)
	students.PATCH("/:id/grade", h.Performance.UpdateGrade)

	settings := secured.Group("/settings")
	settings.GET("/portals", h.Settings.Portals)
	settings.POST("/portals/:id/toggle", h.Settings.TogglePortal)
	settings.GET("/preferences", h.Settings.Preferences)
	settings.PUT("/preferences", h.Settings.UpdatePreferences)
}
