package httpapi

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/chat"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/config"
	"github.com/hrswatirai-debug/Streamlit-Powered-Conversational-Chatbot-using-OpenAI/internal/httpapi/handlers"
)

//go:embed web
var webFS embed.FS

func NewRouter(svc *chat.Service, cfg config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(template.Must(template.ParseFS(webFS, "web/*.html")))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(svc, cfg, log)

	r.GET("/ping", h.Ping)
	r.GET("/", h.Index)

	r.POST("/api/sessions", h.CreateSession)
	r.POST("/api/messages", h.SendMessage)
	r.GET("/api/sessions/:session_id/messages", h.ListMessages)

	return r
}
