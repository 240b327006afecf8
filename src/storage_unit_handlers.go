package main

import (
	"mrs/src/common"
	"mrs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func storageUnitHandlers(g *gin.RouterGroup, svc *common.Service) *gin.RouterGroup {
	g.
		GET("/units", func(ctx *gin.Context) {
			units, err := svc.ListStorageUnits()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": units, "count": len(units)})
		}).
		POST("/units", func(ctx *gin.Context) {
			var body types.CreateStorageUnitRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			unit, err := svc.CreateStorageUnit(&body)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": unit})
		}).
		PUT("/units/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body struct {
				Status string `json:"status" binding:"required,oneof=operational maintenance offline"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			unit, err := svc.SetUnitStatus(params.ID, types.UnitStatus(body.Status))
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": unit})
		})
	return g
}
