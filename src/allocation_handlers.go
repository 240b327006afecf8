package main

import (
	"io"
	"log"
	"mrs/src/common"
	"mrs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

func allocationHandlers(g *gin.RouterGroup, svc *common.Service) *gin.RouterGroup {
	g.
		GET("/allocations", func(ctx *gin.Context) {
			var filters types.AllocationQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			allocations, err := svc.ListAllocations(&filters)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocations, "count": len(allocations)})
		}).
		GET("/allocations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			allocation, err := svc.GetAllocation(params.ID)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocation, "effective_status": allocation.EffectiveStatus()})
		}).
		POST("/allocations", func(ctx *gin.Context) {
			var body types.CreateAllocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			allocatedBy := ctx.GetString("username")
			allocation, err := svc.CreateAllocation(&body, allocatedBy)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": allocation})
		}).
		PUT("/allocations/:id/release", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			releasedBy := ctx.GetString("username")
			allocation, err := svc.ReleaseAllocation(params.ID, releasedBy)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocation})
		}).
		PUT("/allocations/:id/priority", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ChangePriorityRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			allocation, err := svc.ChangeAllocationPriority(params.ID, types.PriorityLevel(body.PriorityLevel))
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocation})
		}).
		PUT("/allocations/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.SetAllocationStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			allocation, err := svc.SetAllocationStatus(params.ID, types.AllocationStatus(body.Status))
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocation})
		})
	return g
}

// temperatureWebhookHandler accepts sensor callbacks. Payloads arrive from
// third-party monitoring hardware, so the body is inspected before binding.
func temperatureWebhookHandler(g *gin.RouterGroup, svc *common.Service) *gin.RouterGroup {
	g.POST("/webhooks/temperature", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !gjson.ValidBytes(payload) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		allocationId := gjson.GetBytes(payload, "allocation_id")
		temperature := gjson.GetBytes(payload, "temperature")
		if !allocationId.Exists() || !temperature.Exists() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "allocation_id and temperature are required"})
			return
		}
		allocation, err := svc.UpdateAllocationTemperature(uint(allocationId.Uint()), temperature.Float())
		if err != nil {
			log.Printf("Temperature update failed for allocation %d: %s\n", allocationId.Uint(), err.Error())
			requestFailed(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": allocation})
	})
	return g
}
