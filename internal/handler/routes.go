package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/config"
	"github.com/kleberrossi/procman/internal/entity"
	"github.com/kleberrossi/procman/internal/middleware"
)

// RegisterRoutes monta a árvore de rotas da API v1. Todas as rotas fora
// de /auth exigem JWT; as escritas respeitam o papel do usuário.
func RegisterRoutes(r *gin.Engine, h *Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))

		pcpWrite := middleware.RequireRoles(entity.RolePCP)
		orderWrite := middleware.RequireRoles(entity.RolePCP, entity.RoleOperator)
		qcWrite := middleware.RequireRoles(entity.RolePCP, entity.RoleQuality)
		adminOnly := middleware.RequireRoles()
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/register", adminOnly, h.Auth.Register)

			clients := authorized.Group("/clientes")
			{
				clients.GET("", h.Client.List)
				clients.GET("/:id", h.Client.Get)
				clients.POST("", pcpWrite, h.Client.Create)
				clients.PUT("/:id", pcpWrite, h.Client.Update)
				clients.DELETE("/:id", adminOnly, h.Client.Delete)
				clients.POST("/backfill-codigos", adminOnly, h.Client.BackfillCodes)
			}

			partners := authorized.Group("/parceiros")
			{
				partners.GET("", h.Partner.List)
				partners.GET("/:id", h.Partner.Get)
				partners.POST("", pcpWrite, h.Partner.Create)
				partners.PUT("/:id", pcpWrite, h.Partner.Update)
				partners.DELETE("/:id", adminOnly, h.Partner.Delete)
				partners.POST("/backfill-codigos", adminOnly, h.Partner.BackfillCodes)
			}

			employees := authorized.Group("/colaboradores")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.POST("", pcpWrite, h.Employee.Create)
				employees.PUT("/:id", pcpWrite, h.Employee.Update)
				employees.DELETE("/:id", adminOnly, h.Employee.Delete)
			}

			roles := authorized.Group("/funcoes")
			{
				roles.GET("", h.Employee.ListRoles)
				roles.POST("", pcpWrite, h.Employee.CreateRole)
			}

			packaging := authorized.Group("/embalagens")
			{
				packaging.GET("", h.Packaging.List)
				packaging.GET("/:id", h.Packaging.Get)
				packaging.GET("/code/:code/revisoes", h.Packaging.Revisions)
				packaging.POST("", pcpWrite, h.Packaging.Create)
				packaging.PUT("/:id", pcpWrite, h.Packaging.Update)
				packaging.DELETE("/:id", adminOnly, h.Packaging.Delete)
			}

			orders := authorized.Group("/pedidos")
			{
				orders.GET("", h.Order.List)
				orders.GET("/:id", h.Order.Get)
				orders.GET("/:id/logs", h.Order.Logs)
				orders.GET("/:id/metricas", h.Order.Metrics)
				orders.POST("", orderWrite, h.Order.Create)
				orders.PATCH("/:id", orderWrite, h.Order.Update)
				orders.POST("/:id/status", pcpWrite, h.Order.ChangeStatus)

				orders.POST("/:id/itens", orderWrite, h.Order.AddItem)
				orders.PATCH("/:id/itens/:itemId", orderWrite, h.Order.UpdateItem)
				orders.DELETE("/:id/itens/:itemId", orderWrite, h.Order.DeleteItem)

				orders.GET("/:id/ordens-impressao", h.Printing.ListByOrder)
				orders.POST("/:id/ordens-impressao", pcpWrite, h.Printing.Create)

				orders.GET("/:id/ordens-producao", h.Production.ListByOrder)
				orders.POST("/:id/ordens-producao", pcpWrite, h.Production.Create)

				orders.GET("/:id/qc", h.QC.ListForOrder)
				orders.POST("/:id/qc", qcWrite, h.QC.AddForOrder)

				orders.GET("/:id/expedicoes", h.Shipment.ListByOrder)
				orders.POST("/:id/expedicoes", orderWrite, h.Shipment.Create)
			}

			printing := authorized.Group("/ordens-impressao")
			{
				printing.GET("/:id", h.Printing.Get)
				printing.POST("/:id/status", pcpWrite, h.Printing.SetStatus)
				printing.GET("/:id/bobinas", h.Printing.ListRolls)
				printing.POST("/:id/bobinas", orderWrite, h.Printing.ReceiveRoll)
				printing.GET("/:id/elegibilidade-corte-solda", h.Printing.CutSealEligibility)
			}

			rolls := authorized.Group("/bobinas")
			{
				rolls.GET("/:rollId/saldo", h.Printing.RollBalance)
				rolls.GET("/:rollId/movimentos", h.Printing.ListMoves)
				rolls.POST("/:rollId/qc", qcWrite, h.Printing.SetRollQC)
			}

			production := authorized.Group("/ordens-producao")
			{
				production.GET("/:id", h.Production.Get)
				production.POST("/:id/status", pcpWrite, h.Production.SetStatus)
				production.GET("/:id/apontamentos", h.Production.ListReadings)
				production.POST("/:id/apontamentos", orderWrite, h.Production.AddReading)
			}

			qc := authorized.Group("/qc")
			{
				qc.GET("", h.QC.List)
				qc.GET("/:id", h.QC.Get)
			}

			shipments := authorized.Group("/expedicoes")
			{
				shipments.GET("", h.Shipment.List)
				shipments.GET("/:id", h.Shipment.Get)
				shipments.POST("/:id/liberar", pcpWrite, h.Shipment.Release)
			}

			calcGroup := authorized.Group("/calc")
			{
				calcGroup.POST("/massa-unidade", h.Calc.MassPerUnit)
				calcGroup.POST("/estimativa-unidades", h.Calc.UnitsEstimate)
				calcGroup.POST("/unidades-minimas", h.Calc.MinUnits)
			}
		}
	}
}
