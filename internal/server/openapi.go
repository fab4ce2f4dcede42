package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "GeoGuess API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the photo geography guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/images
	listImages, _ := r.NewOperationContext(http.MethodGet, "/api/images")
	listImages.SetSummary("List images")
	listImages.SetDescription("Returns the photo catalog. Coordinates are never included.")
	listImages.AddRespStructure([]ImageResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listImages)

	// GET /api/image/{imageID}
	getImage, _ := r.NewOperationContext(http.MethodGet, "/api/image/{imageID}")
	getImage.SetSummary("Get image")
	getImage.SetDescription("Returns one catalog image without coordinates.")
	getImage.AddRespStructure(ImageResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getImage)

	// POST /api/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/guess")
	postGuess.SetSummary("Standalone guess")
	postGuess.SetDescription("Practice mode: score a guess against one image and reveal the solution immediately.")
	postGuess.AddReqStructure(GuessRequest{})
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postGuess)

	// POST /api/session
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/session")
	postSession.SetSummary("Start session")
	postSession.SetDescription("Starts a new guessing session with a fresh random image order.")
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postSession)

	// POST /api/session/{sessionID}/guess
	postSessionGuess, _ := r.NewOperationContext(http.MethodPost, "/api/session/{sessionID}/guess")
	postSessionGuess.SetSummary("Submit session guess")
	postSessionGuess.SetDescription("Plays the current round. Returns the round result, running totals, and the next image.")
	postSessionGuess.AddReqStructure(SessionGuessRequest{})
	postSessionGuess.AddRespStructure(SessionGuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSessionGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSessionGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postSessionGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postSessionGuess)

	// GET /api/session/{sessionID}/summary
	getSummary, _ := r.NewOperationContext(http.MethodGet, "/api/session/{sessionID}/summary")
	getSummary.SetSummary("Session summary")
	getSummary.SetDescription("Returns the session totals and full round history.")
	getSummary.AddRespStructure(SessionHistoryResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSummary.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSummary)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("List leaderboard")
	getLeaderboard.SetDescription("Returns the top 25 entries, best score first.")
	getLeaderboard.AddRespStructure([]LeaderboardItem{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLeaderboard)

	// POST /api/leaderboard
	postLeaderboard, _ := r.NewOperationContext(http.MethodPost, "/api/leaderboard")
	postLeaderboard.SetSummary("Submit leaderboard entry")
	postLeaderboard.SetDescription("Records a finished session's total under a player name and returns the top 25.")
	postLeaderboard.AddReqStructure(LeaderboardRequest{})
	postLeaderboard.AddRespStructure([]LeaderboardItem{}, openapi.WithHTTPStatus(http.StatusOK))
	postLeaderboard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postLeaderboard)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/images
	adminListImages, _ := r.NewOperationContext(http.MethodGet, "/api/admin/images")
	adminListImages.SetSummary("List images (admin)")
	adminListImages.SetDescription("Returns the full catalog including coordinates. Requires admin_session cookie.")
	adminListImages.AddRespStructure([]AdminImageRequest{}, openapi.WithHTTPStatus(http.StatusOK))
	adminListImages.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(adminListImages)

	// POST /api/admin/images
	adminCreateImage, _ := r.NewOperationContext(http.MethodPost, "/api/admin/images")
	adminCreateImage.SetSummary("Create image")
	adminCreateImage.SetDescription("Adds a photo to the catalog. Requires admin_session cookie.")
	adminCreateImage.AddReqStructure(AdminImageRequest{})
	adminCreateImage.AddRespStructure(AdminImageRequest{}, openapi.WithHTTPStatus(http.StatusCreated))
	adminCreateImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	adminCreateImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	adminCreateImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(adminCreateImage)

	// PUT /api/admin/images/{imageID}
	adminUpdateImage, _ := r.NewOperationContext(http.MethodPut, "/api/admin/images/{imageID}")
	adminUpdateImage.SetSummary("Update image")
	adminUpdateImage.SetDescription("Updates a catalog photo. Requires admin_session cookie.")
	adminUpdateImage.AddReqStructure(AdminImageRequest{})
	adminUpdateImage.AddRespStructure(AdminImageRequest{}, openapi.WithHTTPStatus(http.StatusOK))
	adminUpdateImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	adminUpdateImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	adminUpdateImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(adminUpdateImage)

	// DELETE /api/admin/images/{imageID}
	adminDeleteImage, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/images/{imageID}")
	adminDeleteImage.SetSummary("Delete image")
	adminDeleteImage.SetDescription("Removes a photo from the catalog. Requires admin_session cookie.")
	adminDeleteImage.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	adminDeleteImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	adminDeleteImage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(adminDeleteImage)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
