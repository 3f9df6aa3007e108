//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/handler/api"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"
	"tablebook/tests/common/builder"
	"tablebook/tests/common/httptest"
	"tablebook/tests/common/testutil"
	commandsmock "tablebook/tests/mock/commands"
	queriesmock "tablebook/tests/mock/queries"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	tenantID     uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.tenantID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("tenant_id", s.tenantID)
		c.Set("staff_id", uuid.New())
		c.Next()
	}

	group := s.router.Group("/reservations", authMiddleware)
	group.POST("", s.handler.CreateReservation)
	group.GET("", s.handler.ListReservations)
	group.GET("/summary", s.handler.GetDaySummary)
	group.GET("/:id", s.handler.GetReservation)
	group.PATCH("/:id", s.handler.UpdateReservation)
	group.POST("/:id/seat", s.handler.SeatReservation)
	group.POST("/:id/complete", s.handler.CompleteReservation)
	group.POST("/:id/no-show", s.handler.MarkNoShow)
	group.POST("/:id/reopen", s.handler.ReopenReservation)
	group.POST("/:id/cancel", s.handler.CancelReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
	returnEntity := builder.NewReservationBuilder().MustBuildDomain()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.tenantID, gomock.Any()).
			Return(returnEntity, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnEntity.ID(), response.ID)
		s.Equal(returnEntity.GuestName(), response.GuestName)
		s.Equal("confirmed", response.Status)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: guest_name (required)", mutate: testutil.Field("guest_name", nil)},
			{name: "missing field: guest_count (required)", mutate: testutil.Field("guest_count", nil)},
			{name: "missing field: date (required)", mutate: testutil.Field("date", nil)},
			{name: "missing field: start_time (required)", mutate: testutil.Field("start_time", nil)},
			{name: "guest_count below minimum", mutate: testutil.Field("guest_count", 0)},
			{name: "malformed email", mutate: testutil.Field("guest_email", "not-an-email")},
			{name: "malformed date", mutate: testutil.Field("date", "02-09-2026")},
			{name: "malformed start_time", mutate: testutil.Field("start_time", "6pm")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		heldWindow, err := reservation.NewTimeWindow(reservation.TimeOfDay(18*60), 90)
		s.Require().NoError(err)

		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown table",
				commandsError:  commands.ErrUnknownTable,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Table not found",
			},
			{
				name: "table conflict",
				commandsError: &commands.TableConflictError{
					TableID:       uuid.New(),
					ReservationID: uuid.New(),
					GuestName:     "Miguel Ortega",
					Window:        heldWindow,
				},
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already booked by Miguel Ortega from 18:00-19:30",
			},
			{
				name:           "table too small",
				commandsError:  commands.ErrTableTooSmall,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "cannot seat",
			},
			{
				name:           "booking disabled",
				commandsError:  reservation.ErrBookingDisabled,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Reservations are disabled",
			},
			{
				name:           "online booking disabled",
				commandsError:  reservation.ErrOnlineBookingDisabled,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Online booking is disabled",
			},
			{
				name:           "outside operating hours",
				commandsError:  reservation.ErrOutsideOperatingHours,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "",
			},
			{
				name:           "lead time too short",
				commandsError:  reservation.ErrLeadTimeTooShort,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), s.tenantID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String()

	returnView := builder.NewReservationBuilder().BuildView()
	returnView.ID = reservationID

	s.Run("success: returns 200 OK with ReservationResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, reservationID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reservationID, response.ID)
		s.Equal(returnView.GuestName, response.GuestName)
		s.Equal("18:00", response.StartTime)
		s.Equal("19:30", response.EndTime)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		invalidURL := "/reservations/invalid-uuid"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, invalidURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: 404 Not Found for missing reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, reservationID).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	baseURL := "/reservations"

	page := &queries.ReservationPage{
		Items: []*queries.ReservationView{
			builder.NewReservationBuilder().BuildView(),
			builder.NewReservationBuilder().BuildView(),
		},
		Total: 2,
		Page:  1,
		Limit: 50,
	}

	s.Run("success: returns reservation page", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, queries.ListFilter{}).
			Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")

		var response resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 2)
		s.Equal(int64(2), response.Total)
	})

	s.Run("success: filters are passed through", func() {
		from := reservation.Date{Year: 2026, Month: 9, Day: 1}
		to := reservation.Date{Year: 2026, Month: 9, Day: 7}
		status := reservation.StatusConfirmed
		expected := queries.ListFilter{
			From:   &from,
			To:     &to,
			Status: &status,
			Search: "dana",
			Page:   2,
			Limit:  10,
		}
		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, expected).
			Return(page, nil).Times(1)

		url := baseURL + "?from=2026-09-01&to=2026-09-07&status=confirmed&search=dana&page=2&limit=10"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for bad filter values", func() {
		testCases := []struct {
			name   string
			params string
		}{
			{name: "malformed from date", params: "?from=yesterday"},
			{name: "malformed to date", params: "?to=2026-13-40"},
			{name: "unknown status", params: "?status=waiting"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+tc.params, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

// ================================================================================
// TestDaySummary
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDaySummary() {
	date := reservation.Date{Year: 2026, Month: 9, Day: 2}
	url := "/reservations/summary?date=2026-09-02"

	summary := &queries.DaySummary{
		Date:           date,
		Confirmed:      5,
		Seated:         2,
		NoShow:         1,
		ExpectedGuests: 24,
	}

	s.Run("success: returns 200 OK with DaySummaryResponse", func() {
		s.mockQueries.EXPECT().DaySummary(gomock.Any(), s.tenantID, date).
			Return(summary, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.DaySummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2026-09-02", response.Date)
		s.Equal(5, response.Confirmed)
		s.Equal(24, response.ExpectedGuests)
	})

	s.Run("error: 400 Bad Request when date is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/summary", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "date is required")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String()

	returnEntity := builder.NewReservationBuilder().MustBuildDomain()

	s.Run("success: returns 200 OK with updated reservation", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.tenantID, reservationID, gomock.Any()).
			Return(returnEntity, nil).Times(1)

		body := map[string]any{"guest_count": 6}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnEntity.ID(), response.ID)
	})

	s.Run("success: explicit null table_id reaches the command layer", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.tenantID, reservationID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, _ uuid.UUID, input commands.UpdateReservationInput) (*reservation.Reservation, error) {
				s.True(input.TableID.IsNull())
				return returnEntity, nil
			}).Times(1)

		body := map[string]any{"table_id": nil}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict when reservation is locked", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.tenantID, reservationID, gomock.Any()).
			Return(nil, reservation.ErrEditLocked).Times(1)

		body := map[string]any{"guest_count": 6}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer be edited")
	})

	s.Run("error: 404 Not Found for missing reservation", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.tenantID, reservationID, gomock.Any()).
			Return(nil, commands.ErrReservationNotFound).Times(1)

		body := map[string]any{"guest_count": 6}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *ReservationHandlerTestSuite) TestTransitions() {
	reservationID := uuid.New()
	returnEntity := builder.NewReservationBuilder().MustBuildDomain()

	s.Run("success: each transition endpoint returns 200 OK", func() {
		base := "/reservations/" + reservationID.String()

		s.mockCommands.EXPECT().Seat(gomock.Any(), s.tenantID, reservationID).Return(returnEntity, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/seat", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.mockCommands.EXPECT().Complete(gomock.Any(), s.tenantID, reservationID).Return(returnEntity, nil).Times(1)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/complete", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.mockCommands.EXPECT().MarkNoShow(gomock.Any(), s.tenantID, reservationID).Return(returnEntity, nil).Times(1)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/no-show", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.mockCommands.EXPECT().Reopen(gomock.Any(), s.tenantID, reservationID).Return(returnEntity, nil).Times(1)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/reopen", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict with transition detail", func() {
		url := "/reservations/" + reservationID.String() + "/complete"
		transitionErr := &reservation.InvalidTransitionError{
			From: reservation.StatusConfirmed,
			To:   reservation.StatusCompleted,
		}
		s.mockCommands.EXPECT().Complete(gomock.Any(), s.tenantID, reservationID).
			Return(nil, transitionErr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid status transition")

		var body struct {
			Detail struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"detail"`
		}
		httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal("confirmed", body.Detail.From)
		s.Equal("completed", body.Detail.To)
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancel() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String() + "/cancel"

	returnEntity := builder.NewReservationBuilder().MustBuildDomain()

	s.Run("success: cancel with reason", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.tenantID, reservationID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, _ uuid.UUID, input commands.CancelReservationInput) (*reservation.Reservation, error) {
				s.Require().NotNil(input.Reason)
				s.Equal("guest called", *input.Reason)
				return returnEntity, nil
			}).Times(1)

		body := map[string]any{"reason": "guest called"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: cancel without body", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.tenantID, reservationID, commands.CancelReservationInput{}).
			Return(returnEntity, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
