package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCourseService mocks the CourseService interface
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) List(caller service.Caller, search string, page int) (*dto.PaginatedCourseResponse, error) {
	args := m.Called(caller, search, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCourseResponse), args.Error(1)
}

func (m *MockCourseService) Get(caller service.Caller, courseID int64) (*dto.CourseResponse, error) {
	args := m.Called(caller, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CourseResponse), args.Error(1)
}

func (m *MockCourseService) Create(caller service.Caller, req dto.CourseRequest) (*dto.CourseResponse, error) {
	args := m.Called(caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CourseResponse), args.Error(1)
}

func (m *MockCourseService) Update(caller service.Caller, courseID int64, req dto.CourseRequest) (*dto.CourseResponse, error) {
	args := m.Called(caller, courseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CourseResponse), args.Error(1)
}

func (m *MockCourseService) Delete(caller service.Caller, courseID int64) error {
	args := m.Called(caller, courseID)
	return args.Error(0)
}

func (m *MockCourseService) AddStudent(courseID int64, studentID string) (*dto.CourseResponse, error) {
	args := m.Called(courseID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CourseResponse), args.Error(1)
}

func (m *MockCourseService) RemoveStudent(courseID int64, studentID string) (*dto.CourseResponse, error) {
	args := m.Called(courseID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CourseResponse), args.Error(1)
}

func setupCourseRouter(mockCourseService *MockCourseService, userID string, isStaff bool) *gin.Engine {
	router := setupRouter()
	courseHandler := NewCourseHandler(mockCourseService, nil)

	api := router.Group("/api", authAs(userID, isStaff))
	courseHandler.RegisterRoutes(api)
	return router
}

func TestListCourses_OK(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "admin-1", true)

	expectedCaller := service.Caller{ID: "admin-1", Email: "admin-1@example.com", IsStaff: true}
	paginated := dto.NewPaginatedCourseResponse([]dto.CourseResponse{{ID: 1, Title: "Go"}}, 1, 1, 100)
	mockCourseService.On("List", expectedCaller, "", 1).Return(paginated, nil)

	req, _ := http.NewRequest("GET", "/api/courses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PaginatedCourseResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "Go", response.Data[0].Title)
	mockCourseService.AssertExpectations(t)
}

func TestListCourses_SearchAndPageForwarded(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "admin-1", true)

	expectedCaller := service.Caller{ID: "admin-1", Email: "admin-1@example.com", IsStaff: true}
	paginated := dto.NewPaginatedCourseResponse([]dto.CourseResponse{}, 0, 3, 100)
	mockCourseService.On("List", expectedCaller, "algorithms", 3).Return(paginated, nil)

	req, _ := http.NewRequest("GET", "/api/courses?search=algorithms&page=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCourseService.AssertExpectations(t)
}

func TestGetCourse_NotFound(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "student-1", false)

	expectedCaller := service.Caller{ID: "student-1", Email: "student-1@example.com", IsStaff: false}
	mockCourseService.On("Get", expectedCaller, int64(42)).Return(nil, service.ErrNotFound)

	req, _ := http.NewRequest("GET", "/api/courses/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockCourseService.AssertExpectations(t)
}

func TestCreateCourse_NonStaffForbidden(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "student-1", false)

	expectedCaller := service.Caller{ID: "student-1", Email: "student-1@example.com", IsStaff: false}
	courseReq := dto.CourseRequest{Title: "Go", Description: "basics"}
	mockCourseService.On("Create", expectedCaller, courseReq).Return(nil, service.ErrPermissionDenied)

	req := jsonRequest("POST", "/api/courses", courseReq)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockCourseService.AssertExpectations(t)
}

func TestAddStudent_NonAdminBlockedByMiddleware(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "student-1", false)

	req := jsonRequest("POST", "/api/courses/1/add-student", dto.StudentIDRequest{StudentID: "student-2"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockCourseService.AssertNotCalled(t, "AddStudent", mock.Anything, mock.Anything)
}

func TestAddStudent_AlreadyEnrolled(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "admin-1", true)

	mockCourseService.On("AddStudent", int64(1), "student-1").Return(nil, service.ErrAlreadyEnrolled)

	req := jsonRequest("POST", "/api/courses/1/add-student", dto.StudentIDRequest{StudentID: "student-1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockCourseService.AssertExpectations(t)
}

func TestRemoveStudent_Success(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "admin-1", true)

	response := &dto.CourseResponse{ID: 1, Title: "Go", Students: []dto.UserSummary{}}
	mockCourseService.On("RemoveStudent", int64(1), "student-1").Return(response, nil)

	req := jsonRequest("POST", "/api/courses/1/remove-student", dto.StudentIDRequest{StudentID: "student-1"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCourseService.AssertExpectations(t)
}

func TestDeleteCourse_NoContent(t *testing.T) {
	mockCourseService := new(MockCourseService)
	router := setupCourseRouter(mockCourseService, "admin-1", true)

	expectedCaller := service.Caller{ID: "admin-1", Email: "admin-1@example.com", IsStaff: true}
	mockCourseService.On("Delete", expectedCaller, int64(5)).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/courses/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockCourseService.AssertExpectations(t)
}
