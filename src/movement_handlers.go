package main

import (
	"mrs/src/common"
	"mrs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func movementHandlers(g *gin.RouterGroup, svc *common.Service) *gin.RouterGroup {
	g.
		GET("/movements", func(ctx *gin.Context) {
			movements, err := svc.ListMovements()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": movements, "count": len(movements)})
		}).
		POST("/movements", func(ctx *gin.Context) {
			var body types.CreateMovementRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			movedBy := ctx.GetString("username")
			movement, err := svc.RecordMovement(&body, movedBy)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": movement})
		})
	return g
}
