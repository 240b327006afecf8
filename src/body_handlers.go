package main

import (
	"fmt"
	"io"
	"log"
	"mrs/src/common"
	"mrs/src/lib"
	"mrs/src/types"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

func bodyHandlers(g *gin.RouterGroup, svc *common.Service) *gin.RouterGroup {
	g.
		GET("/bodies", func(ctx *gin.Context) {
			if tag := ctx.Query("tag"); tag != "" {
				body, err := svc.Store().GetBodyByTag(tag)
				if err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "no body matches this tag"})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": []any{body}, "count": 1})
				return
			}
			bodies, err := svc.ListBodies()
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bodies, "count": len(bodies)})
		}).
		GET("/bodies/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			body, err := svc.GetBody(params.ID)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": body})
		}).
		POST("/bodies", func(ctx *gin.Context) {
			var body types.RegisterBodyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			created, err := svc.RegisterBody(&body)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": created})
		}).
		POST("/bodies/:id/verify", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.VerifyBodyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			verified, err := svc.VerifyBody(params.ID, body.VerifiedBy)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": verified})
		}).
		PATCH("/bodies/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBodyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updated, err := svc.UpdateBody(params.ID, &body)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": updated})
		}).
		DELETE("/bodies/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := svc.DeleteBody(params.ID); err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/bodies/:id/documents", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			docs, err := svc.ListDocuments(params.ID)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": docs, "count": len(docs)})
		}).
		GET("/bodies/:id/documents/:doc", func(ctx *gin.Context) {
			var params struct {
				ID         uint `uri:"id" binding:"required"`
				DocumentID uint `uri:"doc" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			docs, err := svc.ListDocuments(params.ID)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			for _, doc := range docs {
				if doc.ID != params.DocumentID {
					continue
				}
				contents, err := lib.S3DownloadDocument(ctx, doc.ObjectKey)
				if err != nil {
					log.Printf("Could not download document %s: %s\n", doc.ObjectKey, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
					return
				}
				if contents == nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "document object not found"})
					return
				}
				ctx.Data(http.StatusOK, doc.ContentType, contents)
				return
			}
			ctx.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		}).
		POST("/bodies/:id/documents", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			fileHeader, err := ctx.FormFile("file")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer file.Close()
			contents, err := io.ReadAll(file)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			contentType := fileHeader.Header.Get("Content-Type")
			key := fmt.Sprintf("bodies/%d/%s", params.ID, filepath.Base(fileHeader.Filename))
			if err := lib.S3UploadDocument(ctx, key, contentType, contents); err != nil {
				log.Printf("Could not upload document %s: %s\n", key, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			uploadedBy := ctx.GetString("username")
			doc, err := svc.AttachDocument(params.ID, fileHeader.Filename, contentType, key, uploadedBy)
			if err != nil {
				requestFailed(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": doc})
		})
	return g
}
