package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"commenthub/internal/microservices/http-api/dto"
	"commenthub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Submit(ctx context.Context, input *service.SubmitCommentInput) (*service.SubmissionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionResult), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID int64, userID string) (int64, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) GetNodeComments(ctx context.Context, model string, foreignKey int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	args := m.Called(ctx, model, foreignKey, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCommentResponse), args.Error(1)
}

func (m *MockCommentService) GetFeed(ctx context.Context) ([]dto.CommentResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CommentResponse), args.Error(1)
}

func setupCommentRouter(svc service.CommentService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewCommentHandler(svc)

	identity := func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}

	router.GET("/nodes/:model/:id/comments", handler.ListByNode)
	router.GET("/nodes/:model/:id/comments/check", handler.Precheck)
	router.POST("/nodes/:model/:id/comments", identity, handler.Submit)
	router.GET("/comments", handler.Feed)
	router.DELETE("/comments/:id", identity, handler.Delete)
	return router
}

func submitBody() []byte {
	body, _ := json.Marshal(dto.CreateCommentDTO{
		Name:  "Tester",
		Email: "tester@example.com",
		Body:  "nice post",
	})
	return body
}

func postComment(router *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitComment_Pending(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	mockService.On("Submit", mock.Anything, mock.AnythingOfType("*service.SubmitCommentInput")).
		Return(&service.SubmissionResult{
			Created:     true,
			CommentID:   42,
			Status:      "pending",
			RedirectURL: "https://example.com/blog/hello#comment-42",
		}, nil)

	w := postComment(router, "/nodes/blog/7/comments", submitBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.SubmitCommentResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(42), response.ID)
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, "https://example.com/blog/hello#comment-42", response.RedirectURL)
	assert.Equal(t, "Your comment will appear after moderation.", response.Message)

	input := mockService.Calls[0].Arguments.Get(1).(*service.SubmitCommentInput)
	assert.Equal(t, "blog", input.Model)
	assert.Equal(t, int64(7), input.ForeignKey)
	assert.Empty(t, input.UserID)

	mockService.AssertExpectations(t)
}

func TestSubmitComment_Approved(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "user-123")

	mockService.On("Submit", mock.Anything, mock.Anything).
		Return(&service.SubmissionResult{Created: true, CommentID: 1, Status: "approved", RedirectURL: "/p#comment-1"}, nil)

	w := postComment(router, "/nodes/blog/7/comments", submitBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.SubmitCommentResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Your comment has been added successfully.", response.Message)

	input := mockService.Calls[0].Arguments.Get(1).(*service.SubmitCommentInput)
	assert.Equal(t, "user-123", input.UserID)
}

func TestSubmitComment_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"UnknownModel", service.ErrUnknownModel, http.StatusNotFound},
		{"InvalidTarget", service.ErrInvalidTarget, http.StatusNotFound},
		{"CommentsClosed", service.ErrCommentsNotAllowed, http.StatusUnprocessableEntity},
		{"MaxLevel", service.ErrMaxLevelReached, http.StatusUnprocessableEntity},
		{"Spam", service.ErrLikelySpam, http.StatusUnprocessableEntity},
		{"BadCaptcha", service.ErrInvalidCaptcha, http.StatusUnprocessableEntity},
		{"ProtectionDown", service.ErrProtectionUnavailable, http.StatusServiceUnavailable},
		{"Storage", service.ErrStorage, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockCommentService)
			router := setupCommentRouter(mockService, "")

			mockService.On("Submit", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := postComment(router, "/nodes/blog/7/comments", submitBody())
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestSubmitComment_InvalidBody(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	// Missing required name/email/body fields
	w := postComment(router, "/nodes/blog/7/comments", []byte(`{"body":""}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmitComment_InvalidNodeID(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	w := postComment(router, "/nodes/blog/abc/comments", submitBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestPrecheck_Commentable(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	mockService.On("Submit", mock.Anything, mock.AnythingOfType("*service.SubmitCommentInput")).
		Return(&service.SubmissionResult{Created: false, RedirectURL: "/blog/hello"}, nil)

	req, _ := http.NewRequest("GET", "/nodes/blog/7/comments/check?parent_id=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PrecheckCommentResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Commentable)
	assert.Equal(t, "/blog/hello", response.RedirectURL)

	// No submitted fields on a display-only check, parent carried through
	input := mockService.Calls[0].Arguments.Get(1).(*service.SubmitCommentInput)
	assert.Nil(t, input.Fields)
	if assert.NotNil(t, input.ParentID) {
		assert.Equal(t, int64(10), *input.ParentID)
	}
}

func TestPrecheck_Closed(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	mockService.On("Submit", mock.Anything, mock.Anything).Return(nil, service.ErrCommentsNotAllowed)

	req, _ := http.NewRequest("GET", "/nodes/blog/7/comments/check", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteComment_Owned(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "user-123")

	mockService.On("DeleteComment", mock.Anything, int64(42), "user-123").Return(int64(1), nil)

	req, _ := http.NewRequest("DELETE", "/comments/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.DeleteCommentResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(1), response.Affected)
}

func TestDeleteComment_NotOwned(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "user-123")

	mockService.On("DeleteComment", mock.Anything, int64(42), "user-123").Return(int64(0), nil)

	req, _ := http.NewRequest("DELETE", "/comments/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.DeleteCommentResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(0), response.Affected)
}

func TestDeleteComment_Unauthenticated(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	req, _ := http.NewRequest("DELETE", "/comments/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "DeleteComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByNode(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	page := dto.NewPaginatedCommentResponse([]dto.CommentResponse{
		{ID: 1, Name: "A", Body: "first"},
		{ID: 2, Name: "B", Body: "second"},
	}, 2, 1, 20)
	mockService.On("GetNodeComments", mock.Anything, "blog", int64(7), 1, 20).Return(page, nil)

	req, _ := http.NewRequest("GET", "/nodes/blog/7/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PaginatedCommentResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, 2, response.Total)
}

func TestListByNode_UnknownModel(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	mockService.On("GetNodeComments", mock.Anything, "gallery", int64(7), 1, 20).
		Return(nil, service.ErrUnknownModel)

	req, _ := http.NewRequest("GET", "/nodes/gallery/7/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeed(t *testing.T) {
	mockService := new(MockCommentService)
	router := setupCommentRouter(mockService, "")

	mockService.On("GetFeed", mock.Anything).Return([]dto.CommentResponse{
		{ID: 3, Name: "C", Body: "newest"},
		{ID: 2, Name: "B", Body: "older"},
	}, nil)

	req, _ := http.NewRequest("GET", "/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []dto.CommentResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, int64(3), response.Data[0].ID)
}
