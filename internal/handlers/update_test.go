package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/user-directory/internal/models"
	"github.com/sbilibin2017/user-directory/internal/services"
)

func TestUpdateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	body := `{"first_name":"Ann","last_name":"Lee","email":"b@x.com","password":"p"}`
	payload := models.UserPayload{FirstName: "Ann", LastName: "Lee", Email: "b@x.com", Password: "p"}

	tests := []struct {
		name          string
		userID        string
		body          string
		mockSetup     func(m *MockUserUpdater)
		expectedCode  int
		expectedError string
	}{
		{
			name:   "success",
			userID: "1",
			body:   body,
			mockSetup: func(m *MockUserUpdater) {
				view := sampleView()
				view.Email = "b@x.com"
				m.EXPECT().Update(gomock.Any(), int64(1), payload).Return(view, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid id",
			userID:       "abc",
			body:         body,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:          "invalid json",
			userID:        "1",
			body:          `{invalid`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid JSON format or Missing value.",
		},
		{
			name:   "missing field",
			userID: "1",
			body:   `{"first_name":"Ann"}`,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(nil, services.ErrInvalidPayload)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid JSON format or Missing value.",
		},
		{
			name:   "not found",
			userID: "42",
			body:   body,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(42), payload).Return(nil, services.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "User hasn't been found.",
		},
		{
			name:   "email conflict",
			userID: "1",
			body:   body,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(1), payload).Return(nil, services.ErrEmailAlreadyRegistered)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "Email already registered.",
		},
		{
			name:   "internal error",
			userID: "1",
			body:   body,
			mockSetup: func(m *MockUserUpdater) {
				m.EXPECT().Update(gomock.Any(), int64(1), payload).Return(nil, errors.New("db failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewUpdateUserHandler(mockSvc)

			req := newRequestWithUserID(http.MethodPut, tt.userID, bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp UpdateUserErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestUpdateUserHandler_SuccessBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	view := sampleView()
	view.Email = "b@x.com"

	mockSvc := NewMockUserUpdater(ctrl)
	mockSvc.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(view, nil)

	handler := NewUpdateUserHandler(mockSvc)

	body := `{"first_name":"Ann","last_name":"Lee","email":"b@x.com","password":"p"}`
	req := newRequestWithUserID(http.MethodPut, "1", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler(rr, req)

	var resp UpdateUserResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "User data updated.", resp.Message)
	assert.Equal(t, "b@x.com", resp.User.Email)
}

func TestUpdateUserHandler_ConflictCarriesIDAndEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockUserUpdater(ctrl)
	mockSvc.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(nil, services.ErrEmailAlreadyRegistered)

	handler := NewUpdateUserHandler(mockSvc)

	body := `{"first_name":"Ann","last_name":"Lee","email":"b@x.com","password":"p"}`
	req := newRequestWithUserID(http.MethodPut, "1", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp UpdateUserErrorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "b@x.com", resp.Email)
}
