package activity

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestActivityHandlers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, route_id, name`).
		WithArgs("a1").
		WillReturnRows(activityRows().AddRow("a1", "r1", "活动", now, "recruiting", "", "", now, "2025-11", "", now))

	mock.ExpectQuery(`SELECT id, activity_id, vote_date, weather, vote_count, created_at`).
		WithArgs("a1").
		WillReturnRows(optionRows().AddRow(int64(1), "a1", "2025-11-01（周六）", "晴", 3, now))

	mock.ExpectQuery(`ORDER BY vote_count DESC, id ASC LIMIT 1`).
		WithArgs("a1").
		WillReturnRows(optionRows().AddRow(int64(1), "a1", "2025-11-01（周六）", "晴", 3, now))

	mock.ExpectExec(`UPDATE vote_options SET vote_count`).
		WithArgs(int64(1), 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/activities"), NewService(mock))

	req := httptest.NewRequest(http.MethodGet, "/activities/a1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/activities/a1/options", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("options status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/activities/a1/winner", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("winner status: %v", err)
	}

	req = httptest.NewRequest(http.MethodPut, "/activities/options/1/count", bytes.NewReader([]byte(`{"count":4}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("count status: %v", err)
	}
}

func TestActivityHandlersStatusConflict(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, route_id, name`).
		WithArgs("a1").
		WillReturnRows(activityRows().AddRow("a1", "r1", "活动", now, "confirmed", "", "", now, "", "", now))

	app := fiber.New()
	RegisterRoutes(app.Group("/activities"), NewService(mock))

	req := httptest.NewRequest(http.MethodPut, "/activities/a1/status", bytes.NewReader([]byte(`{"status":"recruiting"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", resp.StatusCode)
	}
}

func TestActivityHandlersBadCount(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/activities"), NewService(nil))

	req := httptest.NewRequest(http.MethodPut, "/activities/options/nan/count", bytes.NewReader([]byte(`{"count":1}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for non-numeric id")
	}

	req = httptest.NewRequest(http.MethodPut, "/activities/options/1/count", bytes.NewReader([]byte(`{"count":-2}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for negative count")
	}
}
