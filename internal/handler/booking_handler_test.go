package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Prince-singh-1619/ticket-booking/internal/domain"
	"github.com/Prince-singh-1619/ticket-booking/internal/dto"
)

const (
	testShowID    = "5f2b9c1e-8a14-4f6f-9c3d-2e7b1a0d4c58"
	testBookingID = "a3d81f72-6c55-4b09-8df1-90e4b72c61aa"
)

// MockBookingService is a mock implementation of BookingService for testing
type MockBookingService struct {
	BookSeatsFunc       func(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error)
	CancelBookingFunc   func(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)
	GetUserBookingsFunc func(ctx context.Context, userName string) ([]*dto.UserBookingResponse, error)
}

func (m *MockBookingService) BookSeats(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error) {
	if m.BookSeatsFunc != nil {
		return m.BookSeatsFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	if m.CancelBookingFunc != nil {
		return m.CancelBookingFunc(ctx, bookingID, req)
	}
	return nil, nil
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userName string) ([]*dto.UserBookingResponse, error) {
	if m.GetUserBookingsFunc != nil {
		return m.GetUserBookingsFunc(ctx, userName)
	}
	return []*dto.UserBookingResponse{}, nil
}

func setupBookingRouter(svc *MockBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewBookingHandler(svc)
	api := router.Group("/api")
	{
		api.POST("/book", handler.BookSeats)
		api.DELETE("/bookings/:bookingId", handler.CancelBooking)
		api.GET("/bookings/user/:userName", handler.GetUserBookings)
	}

	return router
}

func TestBookingHandler_BookSeats(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		mockFunc       func(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error)
		expectedStatus int
	}{
		{
			name: "all seats booked returns 201",
			body: &dto.BookSeatsRequest{
				ShowID:      testShowID,
				UserName:    "alice",
				SeatNumbers: []int{1, 2},
			},
			mockFunc: func(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error) {
				return &dto.BookSeatsResponse{Outcome: dto.OutcomeAllSuccess}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "partial booking returns 207",
			body: &dto.BookSeatsRequest{
				ShowID:      testShowID,
				UserName:    "alice",
				SeatNumbers: []int{1, 2},
			},
			mockFunc: func(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error) {
				return &dto.BookSeatsResponse{Outcome: dto.OutcomePartial}, nil
			},
			expectedStatus: http.StatusMultiStatus,
		},
		{
			name: "all seats failing returns 400",
			body: &dto.BookSeatsRequest{
				ShowID:      testShowID,
				UserName:    "alice",
				SeatNumbers: []int{1, 2},
			},
			mockFunc: func(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error) {
				return &dto.BookSeatsResponse{Outcome: dto.OutcomeAllFailure}, nil
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation error returns 400",
			body: &dto.BookSeatsRequest{
				ShowID:      testShowID,
				UserName:    "alice",
				SeatNumbers: []int{1},
			},
			mockFunc: func(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error) {
				return nil, domain.ErrInvalidSeatCount
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown show returns 404",
			body: &dto.BookSeatsRequest{
				ShowID:      testShowID,
				UserName:    "alice",
				SeatNumbers: []int{1},
			},
			mockFunc: func(ctx context.Context, req *dto.BookSeatsRequest) (*dto.BookSeatsResponse, error) {
				return nil, domain.ErrShowNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed body returns 400",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing seat numbers rejected by binding",
			body: map[string]interface{}{
				"show_id":   testShowID,
				"user_name": "alice",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{BookSeatsFunc: tt.mockFunc}
			router := setupBookingRouter(svc)

			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/book", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("BookSeats status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	tests := []struct {
		name           string
		bookingID      string
		body           interface{}
		mockFunc       func(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)
		expectedStatus int
	}{
		{
			name:      "successful cancellation returns 200",
			bookingID: testBookingID,
			body:      &dto.CancelBookingRequest{UserName: "alice"},
			mockFunc: func(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
				return &dto.BookingResponse{ID: bookingID, UserName: req.UserName}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "unknown booking returns 404",
			bookingID: testBookingID,
			body:      &dto.CancelBookingRequest{UserName: "mallory"},
			mockFunc: func(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
				return nil, domain.ErrBookingNotFoundOrUnauthorized
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:      "failed booking returns 409",
			bookingID: testBookingID,
			body:      &dto.CancelBookingRequest{UserName: "alice"},
			mockFunc: func(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
				return nil, domain.ErrBookingNotCancellable
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing user_name rejected by binding",
			bookingID:      testBookingID,
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{CancelBookingFunc: tt.mockFunc}
			router := setupBookingRouter(svc)

			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+tt.bookingID, bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("CancelBooking status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestBookingHandler_GetUserBookings(t *testing.T) {
	svc := &MockBookingService{
		GetUserBookingsFunc: func(ctx context.Context, userName string) ([]*dto.UserBookingResponse, error) {
			if userName != "alice" {
				t.Errorf("GetUserBookings called with userName %q, want alice", userName)
			}
			return []*dto.UserBookingResponse{
				{BookingResponse: dto.BookingResponse{ID: testBookingID, UserName: userName, SeatNumber: 4}},
			}, nil
		},
	}
	router := setupBookingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/user/alice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GetUserBookings status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Success bool                       `json:"success"`
		Data    []*dto.UserBookingResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("GetUserBookings success = false, want true")
	}
	if len(resp.Data) != 1 || resp.Data[0].SeatNumber != 4 {
		t.Errorf("GetUserBookings unexpected payload: %s", w.Body.String())
	}
}
