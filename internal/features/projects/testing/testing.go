package projects_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"huddle/internal/features/audit_logs"
	projects_dto "huddle/internal/features/projects/dto"
	users_middleware "huddle/internal/features/users/middleware"
	users_services "huddle/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	audit_logs.SetupDependencies()

	return router
}

func CreateTestProject(title string, ownerToken string, router *gin.Engine) *projects_dto.ProjectResponseDTO {
	request := projects_dto.CreateProjectRequestDTO{
		Title: title,
	}

	w := MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+ownerToken, request)
	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response projects_dto.ProjectResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func AddMemberToProject(
	projectID uuid.UUID,
	email string,
	flags projects_dto.CapabilityFlagsDTO,
	adderToken string,
	router *gin.Engine,
) {
	request := projects_dto.AddMemberRequestDTO{
		Email: email,
		Flags: flags,
	}

	w := MakeAPIRequest(
		router,
		"POST",
		"/api/v1/projects/memberships/"+projectID.String()+"/members",
		"Bearer "+adderToken,
		request,
	)

	if w.Code != http.StatusOK {
		panic("Failed to add member to project via API: " + w.Body.String())
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
