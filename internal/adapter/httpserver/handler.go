package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "github.com/lycosidae/orchestrator/internal/domain/errors"
	"github.com/lycosidae/orchestrator/internal/impls"
	"github.com/lycosidae/orchestrator/internal/usecase/lifecycle"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type startRequest struct {
	ImageLink    string `json:"image_link"`
	TimeAlive    int    `json:"time_alive"`
	ExerciseName string `json:"exercise_name"`
	CallbackURL  string `json:"callback_url"`
}

type containerRequest struct {
	ContainerID string `json:"container_id" binding:"required"`
}

type startResponse struct {
	Status      string `json:"status"`
	ContainerID string `json:"container_id"`
	TimeAlive   int    `json:"time_alive"`
	HostPort    int    `json:"host_port"`
	ServiceURL  string `json:"service_url"`
}

type shutdownResponse struct {
	Status      string `json:"status"`
	ContainerID string `json:"container_id"`
}

type deleteResponse struct {
	Status            string `json:"status"`
	ContainerID       string `json:"container_id"`
	ImageID           string `json:"image_id"`
	ImageRemovalError string `json:"image_removal_error,omitempty"`
}

type statusResponse struct {
	Status      string `json:"status"`
	ContainerID string `json:"container_id"`
	Running     bool   `json:"running"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type API struct {
	lifecycle *lifecycle.Service
	logger    impls.Logger
}

func NewAPI(lifecycle *lifecycle.Service, logger impls.Logger) *API {
	return &API{lifecycle: lifecycle, logger: logger}
}

func (a *API) RegisterRoutes(router *gin.Engine) {
	router.GET("/ping", a.ping)

	orch := router.Group("/orchestrator")
	orch.POST("/start", a.start)
	orch.POST("/shutdown", a.shutdown)
	orch.POST("/delete", a.delete)
	orch.GET("/status/:container_id", a.status)
}

func (a *API) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess})
}

func (a *API) start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.logger.Warn("start: invalid payload: %v", err)
		c.JSON(http.StatusBadRequest, errorResponse{Status: statusError, Error: err.Error()})
		return
	}

	result, err := a.lifecycle.Start(c.Request.Context(), lifecycle.StartInput{
		Image:        req.ImageLink,
		ExerciseName: req.ExerciseName,
		TimeAlive:    req.TimeAlive,
		CallbackURL:  req.CallbackURL,
	})
	if err != nil {
		a.fail(c, "start", err)
		return
	}

	c.JSON(http.StatusOK, startResponse{
		Status:      statusSuccess,
		ContainerID: result.ContainerID,
		TimeAlive:   result.TimeAlive,
		HostPort:    result.HostPort,
		ServiceURL:  result.ServiceURL,
	})
}

func (a *API) shutdown(c *gin.Context) {
	var req containerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.logger.Warn("shutdown: invalid payload: %v", err)
		c.JSON(http.StatusBadRequest, errorResponse{Status: statusError, Error: err.Error()})
		return
	}

	if err := a.lifecycle.Shutdown(c.Request.Context(), req.ContainerID); err != nil {
		a.fail(c, "shutdown", err)
		return
	}

	c.JSON(http.StatusOK, shutdownResponse{Status: statusSuccess, ContainerID: req.ContainerID})
}

func (a *API) delete(c *gin.Context) {
	var req containerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.logger.Warn("delete: invalid payload: %v", err)
		c.JSON(http.StatusBadRequest, errorResponse{Status: statusError, Error: err.Error()})
		return
	}

	result, err := a.lifecycle.Delete(c.Request.Context(), req.ContainerID)
	if err != nil {
		a.fail(c, "delete", err)
		return
	}

	resp := deleteResponse{
		Status:      statusSuccess,
		ContainerID: result.ContainerID,
		ImageID:     result.ImageID,
	}
	if result.ImageRemovalErr != nil {
		resp.ImageRemovalError = result.ImageRemovalErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (a *API) status(c *gin.Context) {
	containerID := c.Param("container_id")

	running, err := a.lifecycle.Status(c.Request.Context(), containerID)
	if err != nil {
		a.fail(c, "status", err)
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		Status:      statusSuccess,
		ContainerID: containerID,
		Running:     running,
	})
}

// fail maps the error taxonomy onto HTTP statuses: caller mistakes are 400,
// missing images 404, an exhausted port range 503, engine failures 500.
func (a *API) fail(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError

	var validationErr domainerrors.ValidationError
	var imageErr domainerrors.ImageNotFoundError
	var portsErr domainerrors.PortsExhaustedError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &imageErr):
		status = http.StatusNotFound
	case errors.As(err, &portsErr):
		status = http.StatusServiceUnavailable
	}

	a.logger.Error("%s failed: %v", op, err)
	c.JSON(status, errorResponse{Status: statusError, Error: err.Error()})
}
