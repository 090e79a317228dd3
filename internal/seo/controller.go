package seo

import (
	"encoding/xml"
	"net/http"

	"school-cms-api/internal/jsonapi"

	"github.com/gin-gonic/gin"
)

type SEOController struct {
	Service SEOServiceAPI
}

func (sc *SEOController) Sitemap(c *gin.Context) {
	set, err := sc.Service.Sitemap(c.Request.Context())
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

func (sc *SEOController) Robots(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.String(http.StatusOK, sc.Service.Robots())
}

func (sc *SEOController) Manifest(c *gin.Context) {
	c.Header("Content-Type", "application/manifest+json")
	c.JSON(http.StatusOK, sc.Service.Manifest(c.Request.Context()))
}

func RegisterRoutes(r *gin.Engine, svc SEOServiceAPI) {
	sc := &SEOController{Service: svc}

	r.GET("/sitemap.xml", sc.Sitemap)
	r.GET("/robots.txt", sc.Robots)
	r.GET("/manifest.webmanifest", sc.Manifest)
}
