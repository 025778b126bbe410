package main

import (
	"net/http"

	"sautiai-dashboard/internal/credits"
	"sautiai-dashboard/internal/httpapi"
	"sautiai-dashboard/internal/rbac"
	"sautiai-dashboard/internal/upstream"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc, webhook upstream.CallStatusWebhookHandler) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Core-API callbacks (public, HMAC-verified by the handler).
	r.POST("/webhooks/calls/status", webhook.HandleStatusEvent)

	v1 := r.Group("/v1")

	// Token issuance has no token yet.
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/refresh", h.Refresh)
	}

	protected := v1.Group("")
	protected.Use(authMW)
	{
		protected.GET("/me", h.Me)

		// CONTACTS
		contacts := protected.Group("/contacts")
		contacts.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleAgent, rbac.RoleAnalyst, rbac.RoleSuperAdmin)...)
		{
			contacts.GET("", h.ListContacts)
			contacts.POST("", h.CreateContact)
			contacts.GET("/:contact_id", h.GetContact)
			contacts.PUT("/:contact_id", h.UpdateContact)
			contacts.DELETE("/:contact_id", h.DeleteContact)
		}

		// AGENTS and VOICES
		agents := protected.Group("/agents")
		agents.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleSuperAdmin)...)
		{
			agents.GET("", h.ListAgents)
			agents.POST("", h.CreateAgent)
			agents.GET("/:agent_id", h.GetAgent)
			agents.PUT("/:agent_id", h.UpdateAgent)
			agents.DELETE("/:agent_id", h.DeleteAgent)
		}
		protected.GET("/voices", append(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleSuperAdmin), h.ListVoices)...)

		// CALLS (history, transcripts, live watch)
		calls := protected.Group("/calls")
		calls.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleAgent, rbac.RoleAnalyst, rbac.RoleSuperAdmin)...)
		{
			calls.GET("", h.ListCalls)
			calls.GET("/:call_id", h.GetCall)
			calls.GET("/:call_id/status", h.GetCall)
			calls.GET("/:call_id/transcript", h.GetCallTranscript)
			calls.POST("/:call_id/summarize", h.SummarizeCall)
			calls.GET("/:call_id/live", h.WatchCall)
		}

		// CAMPAIGNS
		campaigns := protected.Group("/campaigns")
		campaigns.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleSuperAdmin)...)
		{
			campaigns.POST("", credits.RequireCredits(h.Credits), h.StartCampaign)
			campaigns.GET("/active", h.CampaignStatus)
			campaigns.GET("/active/summary", h.CampaignSummary)
			campaigns.POST("/active/pause", h.PauseCampaign)
			campaigns.POST("/active/resume", h.ResumeCampaign)
			campaigns.POST("/active/stop", h.StopCampaign)
		}

		// SCHEDULE
		schedule := protected.Group("/schedule")
		schedule.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleAgent, rbac.RoleSuperAdmin)...)
		{
			schedule.POST("", h.CreateScheduledCall)
			schedule.GET("", h.ListScheduledCalls)
			schedule.PUT("/:schedule_id", h.UpdateScheduledCall)
			schedule.DELETE("/:schedule_id", h.DeleteScheduledCall)
			schedule.POST("/:schedule_id/cancel", h.CancelScheduledCall)
			schedule.POST("/:schedule_id/complete", h.CompleteScheduledCall)
		}

		// PREFS
		prefsGroup := protected.Group("/prefs")
		prefsGroup.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleSuperAdmin)...)
		{
			prefsGroup.GET("/default-agent", h.GetDefaultAgent)
			prefsGroup.PUT("/default-agent", h.SetDefaultAgent)
			prefsGroup.DELETE("/default-agent", h.ClearDefaultAgent)
		}

		// CREDITS
		creditsGroup := protected.Group("/credits")
		creditsGroup.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleFinance, rbac.RoleSuperAdmin)...)
		{
			creditsGroup.GET("/balance", h.GetCreditBalance)
			creditsGroup.GET("/ledger", h.GetCreditLedger)
			creditsGroup.POST("/topup", h.TopUpCredits)
		}

		// REPORTS
		reports := protected.Group("/reports")
		reports.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleAnalyst, rbac.RoleFinance, rbac.RoleSuperAdmin)...)
		{
			reports.GET("/calls", h.CallsReport)
			reports.GET("/credit-spend", h.CreditSpendReport)
			reports.GET("/recovery", h.RecoveryReport)
		}

		// DASHBOARD
		dashboard := protected.Group("/dashboard")
		dashboard.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleAgent, rbac.RoleAnalyst, rbac.RoleSuperAdmin)...)
		{
			dashboard.GET("/summary", h.DashboardSummary)
			dashboard.GET("/active-calls", h.ActiveCalls)
		}

		// PLAYGROUND
		protected.GET("/playground", append(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleAgent, rbac.RoleSuperAdmin), h.PlaygroundSocket)...)

		// ADMIN
		// Only owner/super_admin can access admin endpoints by default.
		// Hidden support_operator is intentionally NOT included unless explicitly desired.
		admin := protected.Group("/admin")
		admin.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.RoleOwner, rbac.RoleSuperAdmin)...)
		{
			admin.POST("/credits/manual-credit", h.AdminManualCredit)
		}
	}
}
