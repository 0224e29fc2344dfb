package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/office-seat-booking/internal/api"
	"github.com/nekogravitycat/office-seat-booking/internal/db"
	employeeHttp "github.com/nekogravitycat/office-seat-booking/internal/employee/http"
	officeHttp "github.com/nekogravitycat/office-seat-booking/internal/office/http"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
	"github.com/nekogravitycat/office-seat-booking/internal/scheduled"
	scheduledHttp "github.com/nekogravitycat/office-seat-booking/internal/scheduled/http"
	seatHttp "github.com/nekogravitycat/office-seat-booking/internal/seat/http"
)

const adminEmail = "facilities@office.test"

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
)

func TestMain(m *testing.M) {
	// Attempt to load .env from the repository root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}
	os.Exit(run(m))
}

func run(m *testing.M) int {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		return m.Run()
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("Unable to migrate database: %v", err)
	}

	storageDir, err := os.MkdirTemp("", "seat-booking-files")
	if err != nil {
		log.Fatalf("Unable to create storage dir: %v", err)
	}
	defer os.RemoveAll(storageDir)

	gin.SetMode(gin.TestMode)
	container, err := NewContainer(Config{
		DBPool:            pool,
		JWTSecret:         "integration-secret",
		JWTTTL:            30 * time.Minute,
		BcryptCost:        4, // Lower cost for testing purposes
		AdminEmails:       []string{adminEmail},
		Location:          time.UTC,
		StoragePath:       storageDir,
		FloorPlanMaxBytes: 1 << 20,
	})
	if err != nil {
		log.Fatalf("Unable to build container: %v", err)
	}

	testPool = pool
	testRouter = container.Router
	return m.Run()
}

func executeRequest(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder, wantStatus int) T {
	t.Helper()
	require.Equal(t, wantStatus, w.Code, w.Body.String())
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// registerAndLogin creates an account for an existing employee and returns its token.
func registerAndLogin(t *testing.T, email, first, last string) string {
	t.Helper()
	const password = "correct horse battery"

	w := executeRequest(t, http.MethodPost, "/v1/auth/register", api.RegisterRequest{
		Email: email, Password: password, FirstName: first, LastName: last,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	login := decode[api.LoginResponse](t, executeRequest(t, http.MethodPost, "/v1/auth/login",
		api.LoginRequest{Email: email, Password: password}, ""), http.StatusOK)
	return login.AccessToken
}

func day(offset int) string {
	return scheduled.Today(scheduled.SystemClock, time.UTC).AddDate(0, 0, offset).Format(time.DateOnly)
}

func TestSeatBookingFlow(t *testing.T) {
	if testPool == nil {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	require.NoError(t, db.Truncate(ctx, testPool))

	// The first admin has to exist as an employee before it can register.
	_, err := testPool.Exec(ctx,
		`INSERT INTO public.employees (email, first_name, last_name) VALUES ($1, 'Fran', 'Ops')`, adminEmail)
	require.NoError(t, err)
	adminToken := registerAndLogin(t, adminEmail, "Fran", "Ops")

	var seat101, seat102 string
	var ann, ben employeeHttp.EmployeeResponse

	t.Run("Setup Office", func(t *testing.T) {
		office := decode[officeHttp.OfficeResponse](t, executeRequest(t, http.MethodPost, "/v1/offices",
			officeHttp.CreateOfficeBody{Number: 1, Name: "HQ"}, adminToken), http.StatusCreated)
		area := decode[officeHttp.AreaResponse](t, executeRequest(t, http.MethodPost, "/v1/areas",
			officeHttp.CreateAreaBody{OfficeID: office.ID, Number: 1, Description: "North wing"}, adminToken), http.StatusCreated)
		row := decode[officeHttp.RowResponse](t, executeRequest(t, http.MethodPost, "/v1/rows",
			officeHttp.CreateRowBody{AreaID: area.ID, Number: 1}, adminToken), http.StatusCreated)

		s := decode[seatHttp.SeatResponse](t, executeRequest(t, http.MethodPost, "/v1/seats",
			seatHttp.CreateSeatBody{RowID: row.ID, Number: 101, Description: "window"}, adminToken), http.StatusCreated)
		seat101 = s.ID
		s = decode[seatHttp.SeatResponse](t, executeRequest(t, http.MethodPost, "/v1/seats",
			seatHttp.CreateSeatBody{RowID: row.ID, Number: 102}, adminToken), http.StatusCreated)
		seat102 = s.ID

		ann = decode[employeeHttp.EmployeeResponse](t, executeRequest(t, http.MethodPost, "/v1/employees",
			employeeHttp.CreateEmployeeBody{Email: "ann@office.test", FirstName: "Ann", LastName: "Lee"}, adminToken), http.StatusCreated)
		ben = decode[employeeHttp.EmployeeResponse](t, executeRequest(t, http.MethodPost, "/v1/employees",
			employeeHttp.CreateEmployeeBody{Email: "ben@office.test", FirstName: "Ben", LastName: "Cho"}, adminToken), http.StatusCreated)

		layout := decode[officeHttp.LayoutResponse](t, executeRequest(t, http.MethodGet,
			"/v1/offices/"+office.ID+"/layout", nil, adminToken), http.StatusOK)
		require.Len(t, layout.Areas, 1)
		require.Len(t, layout.Areas[0].Rows, 1)
		assert.Len(t, layout.Areas[0].Rows[0].Seats, 2)
	})

	annToken := registerAndLogin(t, "ann@office.test", "Ann", "Lee")
	var annBooking scheduledHttp.ReservationResponse

	t.Run("Staff Cannot Manage Offices", func(t *testing.T) {
		w := executeRequest(t, http.MethodPost, "/v1/offices", officeHttp.CreateOfficeBody{Number: 2}, annToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Book Own Seat", func(t *testing.T) {
		annBooking = decode[scheduledHttp.ReservationResponse](t, executeRequest(t, http.MethodPost, "/v1/scheduled-seats",
			scheduledHttp.WriteScheduledBody{SeatNumber: 101, StartDate: day(10), EndDate: day(12)}, annToken), http.StatusCreated)
		assert.Equal(t, seat101, annBooking.Seat.ID)
		assert.Equal(t, ann.ID, annBooking.Employee.ID)
		assert.False(t, annBooking.ActiveToday)
	})

	t.Run("Shared Boundary Day Is Taken", func(t *testing.T) {
		w := executeRequest(t, http.MethodPost, "/v1/scheduled-seats",
			scheduledHttp.WriteScheduledBody{Seat: seat101, Employee: ben.ID, StartDate: day(12), EndDate: day(14)}, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.Equal(t, apperror.KindSeatTaken, decode[response.ErrorResponse](t, w, http.StatusConflict).Kind)

		decode[scheduledHttp.ReservationResponse](t, executeRequest(t, http.MethodPost, "/v1/scheduled-seats",
			scheduledHttp.WriteScheduledBody{Seat: seat101, Employee: ben.ID, StartDate: day(13), EndDate: day(14)}, adminToken), http.StatusCreated)
	})

	t.Run("Employee Double Booking Names The Seat", func(t *testing.T) {
		w := executeRequest(t, http.MethodPost, "/v1/scheduled-seats",
			scheduledHttp.WriteScheduledBody{Seat: seat102, StartDate: day(11), EndDate: day(11)}, annToken)
		body := decode[response.ErrorResponse](t, w, http.StatusConflict)
		assert.Equal(t, apperror.KindEmployeeDoubleBooked, body.Kind)
		assert.Equal(t, "Employee already has a seat for this time (101)", body.Error)
	})

	t.Run("Past Start Date", func(t *testing.T) {
		w := executeRequest(t, http.MethodPost, "/v1/scheduled-seats",
			scheduledHttp.WriteScheduledBody{Seat: seat102, StartDate: day(-1), EndDate: day(1)}, annToken)
		assert.Equal(t, apperror.KindPastDate, decode[response.ErrorResponse](t, w, http.StatusBadRequest).Kind)
	})

	t.Run("Update Keeps Own Range", func(t *testing.T) {
		updated := decode[scheduledHttp.ReservationResponse](t, executeRequest(t, http.MethodPut, "/v1/scheduled-seats/"+annBooking.ID,
			scheduledHttp.WriteScheduledBody{Seat: seat101, StartDate: day(10), EndDate: day(12)}, annToken), http.StatusOK)
		assert.Equal(t, annBooking.ID, updated.ID)

		moved := decode[scheduledHttp.ReservationResponse](t, executeRequest(t, http.MethodPut, "/v1/scheduled-seats/"+annBooking.ID,
			scheduledHttp.WriteScheduledBody{Seat: seat102, StartDate: day(10), EndDate: day(12)}, annToken), http.StatusOK)
		assert.Equal(t, seat102, moved.Seat.ID)
	})

	t.Run("Find Dispatch", func(t *testing.T) {
		all := decode[response.ListResponse[scheduledHttp.ReservationResponse]](t,
			executeRequest(t, http.MethodGet, "/v1/scheduled-seats", nil, annToken), http.StatusOK)
		assert.Equal(t, 2, all.Total)

		bySeat := decode[response.ListResponse[scheduledHttp.ReservationResponse]](t,
			executeRequest(t, http.MethodGet, "/v1/scheduled-seats?seat_number=101", nil, annToken), http.StatusOK)
		require.Equal(t, 1, bySeat.Total)
		assert.Equal(t, ben.ID, bySeat.Items[0].Employee.ID)

		byEmployee := decode[response.ListResponse[scheduledHttp.ReservationResponse]](t,
			executeRequest(t, http.MethodGet, "/v1/scheduled-seats?employee_email=ann@office.test", nil, annToken), http.StatusOK)
		require.Equal(t, 1, byEmployee.Total)
		assert.Equal(t, annBooking.ID, byEmployee.Items[0].ID)

		one := decode[scheduledHttp.ReservationResponse](t,
			executeRequest(t, http.MethodGet, "/v1/scheduled-seats?id="+annBooking.ID, nil, annToken), http.StatusOK)
		assert.Equal(t, seat102, one.Seat.ID)
	})

	t.Run("Delete", func(t *testing.T) {
		w := executeRequest(t, http.MethodDelete, "/v1/scheduled-seats/"+annBooking.ID, nil, annToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = executeRequest(t, http.MethodGet, "/v1/scheduled-seats/"+annBooking.ID, nil, annToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
