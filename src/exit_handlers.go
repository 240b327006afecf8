package main

import (
	"mrs/src/common"
	"mrs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func exitHandlers(g *gin.RouterGroup, svc *common.Service) *gin.RouterGroup {
	g.
		GET("/exits", func(ctx *gin.Context) {
			exits, err := svc.ListExits()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": exits, "count": len(exits)})
		}).
		POST("/exits/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ProcessExitRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			processedBy := ctx.GetString("username")
			exit, err := svc.ProcessBodyExit(params.ID, &body, processedBy)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": exit})
		})
	return g
}
