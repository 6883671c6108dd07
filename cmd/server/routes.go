package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/handlers"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/middleware"
)

type routeDeps struct {
	walletHandler     *handlers.WalletHandler
	paymentHandler    *handlers.PaymentHandler
	callbackHandler   *handlers.CallbackHandler
	bonusHandler      *handlers.BonusHandler
	settlementHandler *handlers.SettlementHandler
	authMiddleware    gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("/balance", d.walletHandler.GetBalance)
			wallet.GET("/transactions", d.walletHandler.GetHistory)
		}

		// Payment routes (protected, idempotent)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("/deposit", middleware.IdempotencyMiddleware(), d.paymentHandler.Deposit)
			payments.POST("/withdraw", middleware.IdempotencyMiddleware(), d.paymentHandler.Withdraw)
		}

		// Provider callbacks (no user auth; providers authenticate out of band)
		callbacks := v1.Group("/callbacks")
		{
			callbacks.POST("/:provider", d.callbackHandler.HandleProviderCallback)
		}

		// Bonus routes
		bonuses := v1.Group("/bonuses")
		{
			bonuses.GET("", d.bonusHandler.ListBonuses)
			bonuses.GET("/mine", d.authMiddleware, d.bonusHandler.ListUserBonuses)
			bonuses.POST("/:id/claim", d.authMiddleware, d.bonusHandler.Claim)
			bonuses.POST("/claims/:id/withdraw", d.authMiddleware, d.bonusHandler.Withdraw)
		}
	}

	// Internal settlement contract for the betting engine (service role)
	internal := r.Group("/internal/v1/settlement")
	internal.Use(d.authMiddleware, middleware.RequireService())
	{
		internal.POST("/stake", d.settlementHandler.DebitStake)
		internal.POST("/win", d.settlementHandler.CreditWin)
		internal.POST("/cashout", d.settlementHandler.CreditCashout)
	}
}
