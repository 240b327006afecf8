package main

import (
	"mrs/src/common"
	"mrs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func reportHandlers(g *gin.RouterGroup, svc *common.Service) *gin.RouterGroup {
	g.
		GET("/reports/admissions", func(ctx *gin.Context) {
			var filters types.ReportQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			report, err := svc.Admissions(&filters)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/releases", func(ctx *gin.Context) {
			var filters types.ReportQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			report, err := svc.Releases(&filters)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/average-duration", func(ctx *gin.Context) {
			report, err := svc.AverageDuration()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/capacity-usage", func(ctx *gin.Context) {
			report, err := svc.CapacityUsage()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/occupancy", func(ctx *gin.Context) {
			report, err := svc.Occupancy()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/trends", func(ctx *gin.Context) {
			var filters types.ReportQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			report, err := svc.Trends(&filters)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/movements", func(ctx *gin.Context) {
			var filters types.ReportQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			report, err := svc.Movements(&filters)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/pending-exits", func(ctx *gin.Context) {
			report, err := svc.PendingExits()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		}).
		GET("/reports/departments", func(ctx *gin.Context) {
			report, err := svc.Departments()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": report})
		})
	return g
}
