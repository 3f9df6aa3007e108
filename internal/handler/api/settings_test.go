//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/settings"
	"tablebook/internal/handler/api"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"
	"tablebook/tests/common/httptest"
	commandsmock "tablebook/tests/mock/commands"
	queriesmock "tablebook/tests/mock/queries"
)

type SettingsHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSettingsCommands
	mockQueries  *queriesmock.MockSettingsQueries
	handler      *api.SettingsHandler
	tenantID     uuid.UUID
}

func (s *SettingsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSettingsCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSettingsQueries(s.mockCtrl)
	s.handler = api.NewSettingsHandler(s.mockCommands, s.mockQueries)
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

	group := s.router.Group("/settings", authMiddleware)
	group.GET("", s.handler.GetSettings)
	group.PATCH("", s.handler.UpdateSettings)
}

func (s *SettingsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSettingsHandlerSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlerTestSuite))
}

// ============================================================================
// GET /settings
// ============================================================================

func (s *SettingsHandlerTestSuite) TestGetSettings() {
	s.Run("returns the current settings", func() {
		view := queries.ToSettingsView(settings.Defaults())
		s.mockQueries.EXPECT().
			Get(gomock.Any(), s.tenantID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, "GET", "/settings", nil, "token")

		var resp resdto.SettingsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("11:00", resp.OpeningTime)
		s.Equal("22:00", resp.ClosingTime)
		s.Equal(30, resp.SlotIntervalMinutes)
		s.Equal(90, resp.DefaultDurationMinutes)
		s.True(resp.AllowOnlineBooking)
		s.True(resp.IsEnabled)
	})

	s.Run("maps store failures to 500", func() {
		s.mockQueries.EXPECT().
			Get(gomock.Any(), s.tenantID).
			Return(nil, errors.New("connection reset"))

		w := httptest.PerformRequest(s.T(), s.router, "GET", "/settings", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("requires authentication", func() {
		w := httptest.PerformRequest(s.T(), s.router, "GET", "/settings", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})
}

// ============================================================================
// PATCH /settings
// ============================================================================

func (s *SettingsHandlerTestSuite) TestUpdateSettings() {
	s.Run("applies a partial update", func() {
		updated := settings.Defaults()
		updated.ClosingTime = reservation.TimeOfDay(23 * 60)
		updated.AllowOnlineBooking = false

		s.mockCommands.EXPECT().
			Update(gomock.Any(), s.tenantID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, input commands.UpdateSettingsInput) (settings.Operating, error) {
				s.True(input.ClosingTime.Present())
				closingTime, _ := input.ClosingTime.Value()
				s.Equal(reservation.TimeOfDay(23*60), closingTime)
				s.True(input.AllowOnlineBooking.Present())
				allowOnline, _ := input.AllowOnlineBooking.Value()
				s.False(allowOnline)
				s.False(input.OpeningTime.Present())
				return updated, nil
			})

		body := map[string]any{
			"closing_time":         "23:00",
			"allow_online_booking": false,
		}
		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/settings", body, "token")

		var resp resdto.SettingsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("23:00", resp.ClosingTime)
		s.False(resp.AllowOnlineBooking)
	})

	s.Run("rejects a malformed body", func() {
		body := map[string]any{"closing_time": "11pm"}
		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/settings", body, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("maps validation errors to 422", func() {
		cases := []struct {
			name string
			err  error
		}{
			{"closing before opening", settings.ErrClosingBeforeOpening},
			{"bad slot interval", settings.ErrInvalidSlotInterval},
			{"bad duration", settings.ErrInvalidDuration},
			{"bad party size", settings.ErrInvalidPartySize},
			{"bad advance window", settings.ErrInvalidAdvanceWindow},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					Update(gomock.Any(), s.tenantID, gomock.Any()).
					Return(settings.Operating{}, tc.err)

				body := map[string]any{"slot_interval_minutes": 0}
				w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/settings", body, "token")
				httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, tc.err.Error())
			})
		}
	})

	s.Run("maps unexpected errors to 500", func() {
		s.mockCommands.EXPECT().
			Update(gomock.Any(), s.tenantID, gomock.Any()).
			Return(settings.Operating{}, errors.New("connection reset"))

		body := map[string]any{"is_enabled": true}
		w := httptest.PerformRequest(s.T(), s.router, "PATCH", "/settings", body, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})
}
