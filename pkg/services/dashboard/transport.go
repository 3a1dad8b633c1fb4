package dashboard

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NewHandler returns a new dashboard.Handler
func NewHandler(config *api.APIConfig, dashboardService Service, sessionStore *SessionStore) Handler {
	return Handler{
		config:           config,
		dashboardService: dashboardService,
		sessionStore:     sessionStore,
	}
}

type Handler struct {
	config           *api.APIConfig
	dashboardService Service
	sessionStore     *SessionStore
}

type statusResponse struct {
	Live    livestate.LiveStatus `json:"live"`
	Loading bool                 `json:"loading"`
	View    livestate.View       `json:"view"`
}

type createBuildRequest struct {
	Branch string `json:"branch" binding:"required"`
	Commit string `json:"commit"`
}

func (h *Handler) CreateSession(c *gin.Context) {

	session, err := h.sessionStore.Create()
	if err != nil {
		h.handleError(c, err, "Failed creating session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": session.ID, "live": session.LiveStatus()})
}

func (h *Handler) DeleteSession(c *gin.Context) {

	err := h.sessionStore.Remove(c.Param("session"))
	if err != nil {
		h.handleError(c, err, "Failed removing session")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetStatus(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		Live:    session.LiveStatus(),
		Loading: session.IsLoading(),
		View:    session.View(),
	})
}

func (h *Handler) GetRepos(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	repoBuilds, err := h.dashboardService.OpenRepoList(c.Request.Context(), session)
	if err != nil {
		h.handleError(c, err, "Failed retrieving repositories")
		return
	}

	c.JSON(http.StatusOK, repoBuilds)
}

func (h *Handler) GetRepo(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	repoBuilds, err := h.dashboardService.OpenRepo(c.Request.Context(), session, c.Param("repo"))
	if err != nil {
		h.handleError(c, err, "Failed retrieving repository")
		return
	}

	c.JSON(http.StatusOK, repoBuilds)
}

func (h *Handler) GetBuild(c *gin.Context) {

	session, buildID, ok := h.getSessionAndBuildID(c)
	if !ok {
		return
	}

	buildResult, err := h.dashboardService.OpenBuild(c.Request.Context(), session, c.Param("repo"), buildID)
	if err != nil {
		h.handleError(c, err, "Failed retrieving build")
		return
	}

	c.JSON(http.StatusOK, buildResult)
}

func (h *Handler) GetRelease(c *gin.Context) {

	session, buildID, ok := h.getSessionAndBuildID(c)
	if !ok {
		return
	}

	buildResult, err := h.dashboardService.OpenRelease(c.Request.Context(), session, c.Param("repo"), buildID)
	if err != nil {
		h.handleError(c, err, "Failed retrieving release")
		return
	}

	c.JSON(http.StatusOK, buildResult)
}

func (h *Handler) CloseView(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	h.dashboardService.CloseView(c.Request.Context(), session)

	c.Status(http.StatusNoContent)
}

func (h *Handler) PostRepo(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	var repo contracts.Repo
	err := c.BindJSON(&repo)
	if err != nil {
		log.Debug().Err(err).Msg("Binding repository failed")
		return
	}
	if repo.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": "Repository name is required"})
		return
	}

	created, err := h.dashboardService.CreateRepo(c.Request.Context(), session, repo)
	if err != nil {
		h.handleError(c, err, "Failed creating repository")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) PutRepo(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	var repo contracts.Repo
	err := c.BindJSON(&repo)
	if err != nil {
		log.Debug().Err(err).Msg("Binding repository failed")
		return
	}
	if repo.Name != c.Param("repo") {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": "Repository name does not match path"})
		return
	}

	saved, err := h.dashboardService.SaveRepo(c.Request.Context(), session, repo)
	if err != nil {
		h.handleError(c, err, "Failed saving repository")
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *Handler) DeleteRepo(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	err := h.dashboardService.RemoveRepo(c.Request.Context(), session, c.Param("repo"))
	if err != nil {
		h.handleError(c, err, "Failed removing repository")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) PostBuild(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	var request createBuildRequest
	err := c.BindJSON(&request)
	if err != nil {
		log.Debug().Err(err).Msg("Binding build request failed")
		return
	}

	build, err := h.dashboardService.CreateBuild(c.Request.Context(), session, c.Param("repo"), request.Branch, request.Commit)
	if err != nil {
		h.handleError(c, err, "Failed creating build")
		return
	}

	c.JSON(http.StatusCreated, build)
}

func (h *Handler) PostRelease(c *gin.Context) {

	session, buildID, ok := h.getSessionAndBuildID(c)
	if !ok {
		return
	}

	build, err := h.dashboardService.CreateRelease(c.Request.Context(), session, c.Param("repo"), buildID)
	if err != nil {
		h.handleError(c, err, "Failed creating release")
		return
	}

	c.JSON(http.StatusCreated, build)
}

func (h *Handler) DeleteBuild(c *gin.Context) {

	session, buildID, ok := h.getSessionAndBuildID(c)
	if !ok {
		return
	}

	err := h.dashboardService.RemoveBuild(c.Request.Context(), session, buildID)
	if err != nil {
		h.handleError(c, err, "Failed removing build")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) PostCleanupBuilddir(c *gin.Context) {

	session, buildID, ok := h.getSessionAndBuildID(c)
	if !ok {
		return
	}

	build, err := h.dashboardService.CleanupBuilddir(c.Request.Context(), session, c.Param("repo"), buildID)
	if err != nil {
		h.handleError(c, err, "Failed cleaning up build directory")
		return
	}

	c.JSON(http.StatusOK, build)
}

// StreamEvents pushes the session's state to the client whenever it changes. Changes arriving faster
// than they can be sent are coalesced; every message carries a full snapshot.
func (h *Handler) StreamEvents(c *gin.Context) {

	session, ok := h.getSession(c)
	if !ok {
		return
	}

	reposChanged := make(chan struct{}, 1)
	buildChanged := make(chan struct{}, 1)
	statusChanged := make(chan struct{}, 1)
	viewChanged := make(chan struct{}, 1)

	name := "stream-" + uuid.New().String()
	session.RepoBuilds.Subscribe(name, func(entries []contracts.RepoBuilds) { signal(reposChanged) })
	session.Detail.Subscribe(name, func(detail *contracts.BuildResult) { signal(buildChanged) })
	session.SubscribeStatus(name, func(status livestate.LiveStatus) { signal(statusChanged) })
	session.SubscribeView(name, func(view livestate.View) { signal(viewChanged) })
	defer func() {
		session.RepoBuilds.Unsubscribe(name)
		session.Detail.Unsubscribe(name)
		session.UnsubscribeStatus(name)
		session.UnsubscribeView(name)
	}()

	// send the current state first
	signal(statusChanged)
	signal(viewChanged)
	if session.RepoBuilds.IsInitialized() {
		signal(reposChanged)
	}
	if session.Detail.IsOpen() {
		signal(buildChanged)
	}

	ticker := time.NewTicker(h.config.APIServer.PingInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()

	// ensure openresty doesn't buffer this response but sends the chunks rightaway
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-statusChanged:
			c.SSEvent("status", statusResponse{Live: session.LiveStatus(), Loading: session.IsLoading(), View: session.View()})
		case <-viewChanged:
			c.SSEvent("view", session.View())
		case <-reposChanged:
			c.SSEvent("repos", session.RepoBuilds.Snapshot())
		case <-buildChanged:
			c.SSEvent("build", session.Detail.Snapshot())
		case <-ticker.C:
			session.Touch()
			c.SSEvent("ping", true)
		}
		return true
	})
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (h *Handler) getSession(c *gin.Context) (*livestate.Session, bool) {
	session, err := h.sessionStore.Get(c.Param("session"))
	if err != nil {
		h.handleError(c, err, "Session not found")
		return nil, false
	}
	return session, true
}

func (h *Handler) getSessionAndBuildID(c *gin.Context) (*livestate.Session, int, bool) {
	session, ok := h.getSession(c)
	if !ok {
		return nil, 0, false
	}

	buildID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusText(http.StatusBadRequest), "message": "Build id is not a number"})
		return nil, 0, false
	}

	return session, buildID, true
}

// handleError maps errors to a status code: unknown entities 404, rejected requests 400, failures of the
// ci server 502
func (h *Handler) handleError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError

	if appErr, ok := api.AsApplicationError(err); ok {
		switch {
		case appErr.IsNotFound():
			status = http.StatusNotFound
		case appErr.IsUserError():
			status = http.StatusBadRequest
		default:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"code": http.StatusText(status), "message": appErr.Message})
		return
	}

	switch {
	case errors.Is(err, api.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, api.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	case errors.Is(err, api.ErrNoViewOpen):
		status = http.StatusConflict
	case errors.Is(err, api.ErrTransport):
		status = http.StatusBadGateway
	default:
		log.Error().Err(err).Msg(message)
	}

	c.JSON(status, gin.H{"code": http.StatusText(status), "message": message})
}
